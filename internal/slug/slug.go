// Package slug derives URL-safe identifiers from human titles.
package slug

import "strings"

// latinFold maps the Latin-1 letters that commonly appear in titles to their
// ASCII equivalents. Characters outside the table that are not alphanumeric
// are treated as separators.
var latinFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "ae",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y",
	'ß': "ss", 'þ': "th", 'ð': "d",
}

// Make turns a title into a lower-cased, ASCII, hyphen-separated slug.
// Runs of non-alphanumeric characters collapse into a single separator and
// leading/trailing separators are trimmed. Deriving twice yields the same
// result. An empty title yields an empty slug; uniqueness is not enforced.
func Make(title string) string {
	lowered := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSep := false
	for _, r := range lowered {
		var chunk string
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			chunk = string(r)
		default:
			if folded, ok := latinFold[r]; ok {
				chunk = folded
			}
		}

		if chunk == "" {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteString(chunk)
	}

	return b.String()
}
