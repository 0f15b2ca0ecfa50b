package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

func seedUser(t *testing.T, repo *UserRepository, id, name, email string, created time.Time) {
	t.Helper()

	err := repo.CreateUser(context.Background(), domain.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: "hash-" + id,
		Role:         "staff",
		CreatedAt:    created,
		UpdatedAt:    created,
	})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	seedUser(t, repo, "user-1", "Alice", "Alice@Example.com", now)

	fetched, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if fetched.Email != "alice@example.com" {
		t.Fatalf("emails should be stored lower-cased, got %q", fetched.Email)
	}

	fetched.Name = "Alice Updated"
	fetched.Role = "admin"
	fetched.UpdatedAt = now.Add(time.Minute)
	if err := repo.UpdateUser(ctx, fetched); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	fetched, err = repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser after update failed: %v", err)
	}
	if fetched.Name != "Alice Updated" || fetched.Role != "admin" {
		t.Fatalf("unexpected user after update: %#v", fetched)
	}

	if err := repo.DeleteUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if err := repo.DeleteUser(ctx, "user-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	seedUser(t, repo, "user-1", "Alice", "alice@example.com", now)

	err := repo.CreateUser(ctx, domain.User{
		ID:           "user-2",
		Name:         "Impostor",
		Email:        "alice@example.com",
		PasswordHash: "hash-2",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_EmailInUse(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	now := time.Now().UTC().Truncate(time.Second)
	seedUser(t, repo, "user-1", "Alice", "alice@example.com", now)

	inUse, err := repo.EmailInUse(ctx, "alice@example.com", "")
	if err != nil {
		t.Fatalf("EmailInUse failed: %v", err)
	}
	if !inUse {
		t.Fatalf("expected the email to be in use")
	}

	inUse, err = repo.EmailInUse(ctx, "alice@example.com", "user-1")
	if err != nil {
		t.Fatalf("EmailInUse failed: %v", err)
	}
	if inUse {
		t.Fatalf("the owner's own row must not count")
	}

	inUse, err = repo.EmailInUse(ctx, "free@example.com", "")
	if err != nil {
		t.Fatalf("EmailInUse failed: %v", err)
	}
	if inUse {
		t.Fatalf("unused email reported as taken")
	}
}

func TestUserRepository_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	seedUser(t, repo, "user-1", "Alice Smith", "alice@example.com", base)
	seedUser(t, repo, "user-2", "Bob Smith", "bob@example.com", base.Add(time.Minute))
	seedUser(t, repo, "user-3", "Carol 100% Jones", "carol@example.com", base.Add(2*time.Minute))

	t.Run("lists newest first without a query", func(t *testing.T) {
		users, total, err := repo.ListUsers(ctx, "", 0, 10)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if total != 3 || len(users) != 3 {
			t.Fatalf("expected 3 users, got total=%d len=%d", total, len(users))
		}
		if users[0].ID != "user-3" {
			t.Fatalf("expected newest first, got %q", users[0].ID)
		}
	})

	t.Run("matches a name substring", func(t *testing.T) {
		users, total, err := repo.ListUsers(ctx, "Smith", 0, 10)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if total != 2 || len(users) != 2 {
			t.Fatalf("expected 2 matches, got total=%d len=%d", total, len(users))
		}
	})

	t.Run("treats LIKE metacharacters literally", func(t *testing.T) {
		users, total, err := repo.ListUsers(ctx, "100%", 0, 10)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if total != 1 || len(users) != 1 || users[0].ID != "user-3" {
			t.Fatalf("expected only the literal match, got %#v", users)
		}
	})
}

func TestUserRepository_DeleteUsers(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	seedUser(t, repo, "user-1", "Alice", "alice@example.com", base)
	seedUser(t, repo, "user-2", "Bob", "bob@example.com", base)
	seedUser(t, repo, "user-3", "Carol", "carol@example.com", base)

	if err := repo.DeleteUsers(ctx, []string{"user-1", "user-3", "ghost"}); err != nil {
		t.Fatalf("DeleteUsers failed: %v", err)
	}

	_, total, err := repo.ListUsers(ctx, "", 0, 10)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected one survivor, got %d", total)
	}

	if err := repo.DeleteUsers(ctx, nil); err != nil {
		t.Fatalf("an empty batch should be a no-op, got %v", err)
	}
}

func TestUserRepository_CountUsersCreatedBetween(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	repo := NewUserRepository(pool)

	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, repo, "user-1", "Alice", "alice@example.com", base.AddDate(0, 0, -40))
	seedUser(t, repo, "user-2", "Bob", "bob@example.com", base.AddDate(0, 0, -10))
	seedUser(t, repo, "user-3", "Carol", "carol@example.com", base)

	from := base.AddDate(0, 0, -30)
	to := base

	count, err := repo.CountUsersCreatedBetween(ctx, &from, &to)
	if err != nil {
		t.Fatalf("CountUsersCreatedBetween failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 inside the window, got %d", count)
	}

	count, err = repo.CountUsersCreatedBetween(ctx, nil, nil)
	if err != nil {
		t.Fatalf("CountUsersCreatedBetween failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected unrestricted count 3, got %d", count)
	}

	count, err = repo.CountUsersCreatedBetween(ctx, &to, nil)
	if err != nil {
		t.Fatalf("CountUsersCreatedBetween failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("the boundary instant itself should count, got %d", count)
	}
}
