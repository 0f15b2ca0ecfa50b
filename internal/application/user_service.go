package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/appointment-admin/internal/domain"
)

// UserRepository captures the persistence operations needed by the user
// service.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, id string) error
	DeleteUsers(ctx context.Context, ids []string) error
	ListUsers(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error)
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
}

// UserService orchestrates validation, password hashing, and persistence for
// administrative accounts.
type UserService struct {
	users       UserRepository
	pagination  PaginationSettings
	idGenerator func() string
	now         func() time.Time
	hash        func(password string) (string, error)
	logger      *slog.Logger
}

// NewUserService wires dependencies for the user service. A nil hash function
// falls back to argon2id with the default parameters.
func NewUserService(users UserRepository, pagination PaginationSettings, idGenerator func() string, now func() time.Time, hash func(string) (string, error), logger *slog.Logger) *UserService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if hash == nil {
		hash = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:       users,
		pagination:  pagination,
		idGenerator: idGenerator,
		now:         now,
		hash:        hash,
		logger:      logger,
	}
}

// List returns one page of users, newest first, optionally filtered by a name
// search term.
func (s *UserService) List(ctx context.Context, params ListUsersParams) (UserPage, error) {
	if s == nil {
		return UserPage{}, fmt.Errorf("UserService is nil")
	}

	perPage := paginationLimitOrDefault(ctx, s.pagination)
	meta := domain.NewPageMeta(params.Page, perPage, 0)

	items, total, err := s.users.ListUsers(ctx, strings.TrimSpace(params.Query), meta.Offset(), perPage)
	if err != nil {
		return UserPage{}, err
	}

	return UserPage{
		Items: items,
		Meta:  domain.NewPageMeta(meta.CurrentPage, perPage, total),
	}, nil
}

// Create validates input, hashes the password, and persists a new user. A
// taken email fails validation and no row is inserted.
func (s *UserService) Create(ctx context.Context, input UserInput) (domain.User, error) {
	if s == nil {
		return domain.User{}, fmt.Errorf("UserService is nil")
	}

	normalized := normalizeUserInput(input)
	vErr := validateUserInput(normalized, true)
	if err := s.checkEmailUnique(ctx, normalized.Email, "", vErr); err != nil {
		return domain.User{}, err
	}
	if vErr.HasErrors() {
		return domain.User{}, vErr
	}

	hashed, err := s.hash(normalized.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           s.idGenerator(),
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: hashed,
		Role:         normalized.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	serviceLogger(ctx, s.logger, "UserService", "Create", "user_id", user.ID).InfoContext(ctx, "user created")
	return user, nil
}

// Update validates input and updates an existing user. The uniqueness check
// excludes the user's own record, and an empty password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (domain.User, error) {
	if s == nil {
		return domain.User{}, fmt.Errorf("UserService is nil")
	}

	existing, err := s.users.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, mapRepositoryError(err)
	}

	normalized := normalizeUserInput(input)
	vErr := validateUserInput(normalized, false)
	if err := s.checkEmailUnique(ctx, normalized.Email, id, vErr); err != nil {
		return domain.User{}, err
	}
	if vErr.HasErrors() {
		return domain.User{}, vErr
	}

	updated := existing
	updated.Name = normalized.Name
	updated.Email = normalized.Email
	updated.UpdatedAt = s.now()
	if normalized.Password != "" {
		hashed, err := s.hash(normalized.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = hashed
	}

	if err := s.users.UpdateUser(ctx, updated); err != nil {
		return domain.User{}, mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "UserService", "Update", "user_id", id).InfoContext(ctx, "user updated")
	return updated, nil
}

// Delete hard-deletes a single user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "UserService", "Delete", "user_id", id).InfoContext(ctx, "user deleted")
	return nil
}

// BulkDelete removes the given ids in one batch. Ids that do not resolve are
// no-ops; other rows are untouched.
func (s *UserService) BulkDelete(ctx context.Context, ids []string) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}

	if err := s.users.DeleteUsers(ctx, ids); err != nil {
		return err
	}

	serviceLogger(ctx, s.logger, "UserService", "BulkDelete", "count", len(ids)).InfoContext(ctx, "users deleted")
	return nil
}

// ChangeRole sets a user's role. Roles are free-form strings.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (domain.User, error) {
	if s == nil {
		return domain.User{}, fmt.Errorf("UserService is nil")
	}

	existing, err := s.users.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, mapRepositoryError(err)
	}

	existing.Role = strings.TrimSpace(role)
	existing.UpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, existing); err != nil {
		return domain.User{}, mapRepositoryError(err)
	}

	serviceLogger(ctx, s.logger, "UserService", "ChangeRole", "user_id", id, "role", existing.Role).InfoContext(ctx, "user role changed")
	return existing, nil
}

// checkEmailUnique records a field error when another user already holds the
// email. The check runs only when the email itself passed validation.
func (s *UserService) checkEmailUnique(ctx context.Context, email, excludeID string, vErr *ValidationError) error {
	if email == "" {
		return nil
	}
	if _, taken := vErr.FieldErrors["email"]; taken {
		return nil
	}

	inUse, err := s.users.EmailInUse(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		vErr.add("email", "The email has already been taken.")
	}
	return nil
}

func normalizeUserInput(input UserInput) UserInput {
	return UserInput{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
		Role:     strings.TrimSpace(input.Role),
	}
}

func validateUserInput(input UserInput, passwordRequired bool) *ValidationError {
	vErr := &ValidationError{}

	if input.Name == "" {
		vErr.add("name", "The name field is required.")
	}

	if input.Email == "" {
		vErr.add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		vErr.add("email", "The email must be a valid email address.")
	}

	if input.Password == "" {
		if passwordRequired {
			vErr.add("password", "The password field is required.")
		}
	} else if len(input.Password) < 8 {
		vErr.add("password", "The password must be at least 8 characters.")
	}

	return vErr
}
