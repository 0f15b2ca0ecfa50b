package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/appointment-admin/internal/persistence"
	"github.com/example/appointment-admin/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Appointments  persistence.AppointmentRepository
	Categories    persistence.CategoryRepository
	SubCategories persistence.SubCategoryRepository
	Users         persistence.UserRepository
	Settings      persistence.SettingRepository

	// Clients is the concrete repository so tests can seed client rows that
	// appointments reference.
	Clients *sqlite.ClientRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a harness over a temporary database file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "adminapi.db")

	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := pool.Migrate(context.Background()); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Appointments:  sqlite.NewAppointmentRepository(pool),
		Clients:       sqlite.NewClientRepository(pool),
		Categories:    sqlite.NewCategoryRepository(pool),
		SubCategories: sqlite.NewSubCategoryRepository(pool),
		Users:         sqlite.NewUserRepository(pool),
		Settings:      sqlite.NewSettingRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
