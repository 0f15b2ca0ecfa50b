package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/appointment-admin/internal/domain"
)

func newTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	dir := t.TempDir()
	dsn := filepath.Join(dir, "adminapi.db")
	pool, err := Open(dsn)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}

	t.Cleanup(func() {
		_ = pool.Close()
	})

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return pool
}

func seedClient(t *testing.T, pool *ConnectionPool, id string, created time.Time) domain.Client {
	t.Helper()

	client := domain.Client{
		ID:        id,
		FirstName: "First-" + id,
		LastName:  "Last-" + id,
		Email:     id + "@example.com",
		Phone:     "555-0000",
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := NewClientRepository(pool).CreateClient(context.Background(), client); err != nil {
		t.Fatalf("failed to seed client %s: %v", id, err)
	}
	return client
}

func TestTimestampRoundTrip(t *testing.T) {
	original := time.Date(2024, time.May, 2, 14, 30, 45, 0, time.FixedZone("JST", 9*60*60))

	parsed, err := parseTime(formatTime(original))
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if !parsed.Equal(original) {
		t.Fatalf("expected %v, got %v", original, parsed)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("stored timestamps should round trip as UTC, got %v", parsed.Location())
	}
}
