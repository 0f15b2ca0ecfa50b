package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/appointment-admin/internal/domain"
	"github.com/example/appointment-admin/internal/persistence"
)

type userRepoStub struct {
	createErr error
	created   domain.User

	getUser domain.User
	getErr  error

	updateErr error
	updated   domain.User

	deletedID  string
	deletedIDs []string

	list      []domain.User
	listTotal int
	listQuery string

	emailInUse bool
	emailErr   error
	emailAsked string
	excludeID  string

	countFrom *time.Time
	countTo   *time.Time
	count     int
}

func (r *userRepoStub) CreateUser(ctx context.Context, user domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = user
	return nil
}

func (r *userRepoStub) GetUser(ctx context.Context, id string) (domain.User, error) {
	if r.getErr != nil {
		return domain.User{}, r.getErr
	}
	if r.getUser.ID == "" {
		return domain.User{}, persistence.ErrNotFound
	}
	return r.getUser, nil
}

func (r *userRepoStub) UpdateUser(ctx context.Context, user domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = user
	return nil
}

func (r *userRepoStub) DeleteUser(ctx context.Context, id string) error {
	r.deletedID = id
	return nil
}

func (r *userRepoStub) DeleteUsers(ctx context.Context, ids []string) error {
	r.deletedIDs = ids
	return nil
}

func (r *userRepoStub) ListUsers(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error) {
	r.listQuery = search
	return r.list, r.listTotal, nil
}

func (r *userRepoStub) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	if r.emailErr != nil {
		return false, r.emailErr
	}
	r.emailAsked = email
	r.excludeID = excludeID
	return r.emailInUse, nil
}

func (r *userRepoStub) CountUsersCreatedBetween(ctx context.Context, from, to *time.Time) (int, error) {
	r.countFrom = from
	r.countTo = to
	return r.count, nil
}

func staticHash(hash string) func(string) (string, error) {
	return func(string) (string, error) { return hash, nil }
}

func TestUserService_Create(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

	t.Run("hashes the password and normalizes the email", func(t *testing.T) {
		repo := &userRepoStub{}
		svc := NewUserService(repo, nil, func() string { return "user-1" }, fixedClock(now), staticHash("hashed"), nil)

		user, err := svc.Create(context.Background(), UserInput{
			Name:     "Ada",
			Email:    "  Ada@Example.COM ",
			Password: "secret-pass",
			Role:     "admin",
		})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}

		if user.Email != "ada@example.com" {
			t.Fatalf("email should be lowercased, got %q", user.Email)
		}
		if repo.created.PasswordHash != "hashed" {
			t.Fatalf("password should be hashed, got %q", repo.created.PasswordHash)
		}
		if repo.excludeID != "" {
			t.Fatalf("create should not exclude any id, got %q", repo.excludeID)
		}
	})

	t.Run("rejects a taken email without inserting", func(t *testing.T) {
		repo := &userRepoStub{emailInUse: true}
		svc := NewUserService(repo, nil, nil, nil, staticHash("hashed"), nil)

		_, err := svc.Create(context.Background(), UserInput{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "secret-pass",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.FieldErrors["email"]; got != "The email has already been taken." {
			t.Fatalf("unexpected message: %q", got)
		}
		if repo.created.ID != "" {
			t.Fatalf("no row should be inserted")
		}
	})

	t.Run("requires name, email and a long enough password", func(t *testing.T) {
		svc := NewUserService(&userRepoStub{}, nil, nil, nil, staticHash("hashed"), nil)

		_, err := svc.Create(context.Background(), UserInput{Password: "short"})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.FieldErrors["name"]; got != "The name field is required." {
			t.Fatalf("unexpected name message: %q", got)
		}
		if got := vErr.FieldErrors["email"]; got != "The email field is required." {
			t.Fatalf("unexpected email message: %q", got)
		}
		if got := vErr.FieldErrors["password"]; got != "The password must be at least 8 characters." {
			t.Fatalf("unexpected password message: %q", got)
		}
	})
}

func TestUserService_Update(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	existing := domain.User{
		ID:           "user-1",
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "original-hash",
		Role:         "staff",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("keeps the stored hash when the password is empty", func(t *testing.T) {
		repo := &userRepoStub{getUser: existing}
		svc := NewUserService(repo, nil, nil, fixedClock(now.Add(time.Hour)), staticHash("new-hash"), nil)

		updated, err := svc.Update(context.Background(), "user-1", UserInput{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		if updated.PasswordHash != "original-hash" {
			t.Fatalf("hash should be retained, got %q", updated.PasswordHash)
		}
		if repo.excludeID != "user-1" {
			t.Fatalf("uniqueness check should exclude the user itself, got %q", repo.excludeID)
		}
	})

	t.Run("replaces the hash when a password is supplied", func(t *testing.T) {
		repo := &userRepoStub{getUser: existing}
		svc := NewUserService(repo, nil, nil, nil, staticHash("new-hash"), nil)

		updated, err := svc.Update(context.Background(), "user-1", UserInput{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "fresh-password",
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.PasswordHash != "new-hash" {
			t.Fatalf("expected new hash, got %q", updated.PasswordHash)
		}
	})

	t.Run("maps a missing user to ErrNotFound", func(t *testing.T) {
		svc := NewUserService(&userRepoStub{}, nil, nil, nil, staticHash("x"), nil)

		_, err := svc.Update(context.Background(), "missing", UserInput{Name: "Ada", Email: "ada@example.com"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUserService_BulkDelete(t *testing.T) {
	repo := &userRepoStub{}
	svc := NewUserService(repo, nil, nil, nil, staticHash("x"), nil)

	if err := svc.BulkDelete(context.Background(), []string{"a", "b", "c"}); err != nil {
		t.Fatalf("BulkDelete returned error: %v", err)
	}
	if len(repo.deletedIDs) != 3 {
		t.Fatalf("expected three ids, got %v", repo.deletedIDs)
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	repo := &userRepoStub{getUser: domain.User{ID: "user-1", Name: "Ada", Email: "ada@example.com", Role: "staff", CreatedAt: now, UpdatedAt: now}}
	svc := NewUserService(repo, nil, nil, fixedClock(now.Add(time.Hour)), staticHash("x"), nil)

	updated, err := svc.ChangeRole(context.Background(), "user-1", "  admin ")
	if err != nil {
		t.Fatalf("ChangeRole returned error: %v", err)
	}
	if updated.Role != "admin" {
		t.Fatalf("expected trimmed role admin, got %q", updated.Role)
	}
	if repo.updated.Role != "admin" {
		t.Fatalf("role should persist, got %q", repo.updated.Role)
	}
}

func TestUserService_List(t *testing.T) {
	repo := &userRepoStub{list: []domain.User{{ID: "user-1"}}, listTotal: 1}
	svc := NewUserService(repo, paginationStub{limit: 15}, nil, nil, staticHash("x"), nil)

	page, err := svc.List(context.Background(), ListUsersParams{Query: " ada ", Page: 1})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.listQuery != "ada" {
		t.Fatalf("query should be trimmed, got %q", repo.listQuery)
	}
	if page.Meta.PerPage != 15 {
		t.Fatalf("expected configured page size, got %d", page.Meta.PerPage)
	}
}
