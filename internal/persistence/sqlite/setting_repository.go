package sqlite

import (
	"context"
	"database/sql"
	"sort"
)

// SettingRepository implements persistence.SettingRepository on SQLite.
type SettingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewSettingRepository creates a new SQLite setting repository.
func NewSettingRepository(pool *ConnectionPool) *SettingRepository {
	return &SettingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetAllSettings returns every settings row as a key/value mapping. An empty
// table yields an empty, non-nil map.
func (r *SettingRepository) GetAllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.helper.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, r.mapper.MapError(err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return settings, nil
}

// SetSettings upserts every entry of the mapping inside one transaction.
func (r *SettingRepository) SetSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	// Deterministic write order keeps transaction behavior reproducible.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			_, err := r.helper.ExecTx(tx, `
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, values[key])
			if err != nil {
				return r.mapper.MapError(err)
			}
		}
		return nil
	})

	return err
}
