package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Annual Checkup", "annual-checkup"},
		{"uppercase folded", "DENTAL Cleaning", "dental-cleaning"},
		{"punctuation collapses", "Ear, Nose & Throat!!", "ear-nose-throat"},
		{"leading and trailing separators trimmed", "  --Follow Up--  ", "follow-up"},
		{"digits preserved", "Visit 2024", "visit-2024"},
		{"latin letters transliterated", "Café Crème", "cafe-creme"},
		{"sharp s expands", "Straße", "strasse"},
		{"empty title", "", ""},
		{"only separators", "!!! ???", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Make(tc.title); got != tc.want {
				t.Fatalf("Make(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	t.Parallel()

	titles := []string{"Annual Checkup", "Café Crème", "Visit 2024", "a--b"}
	for _, title := range titles {
		once := Make(title)
		twice := Make(once)
		if once != twice {
			t.Fatalf("Make not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestMakeProducesNoUppercaseOrWhitespace(t *testing.T) {
	t.Parallel()

	got := Make("  Mixed CASE  Title\twith\nspace ")
	for _, r := range got {
		if r >= 'A' && r <= 'Z' {
			t.Fatalf("slug %q contains uppercase rune %q", got, r)
		}
		if r == ' ' || r == '\t' || r == '\n' {
			t.Fatalf("slug %q contains whitespace", got)
		}
	}
}
