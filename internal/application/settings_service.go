package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

// DefaultSettings is the static fallback used when the settings table has no
// row for a key.
var DefaultSettings = map[string]string{
	"app_name":         "Appointment Admin",
	"date_format":      "Y-m-d",
	"pagination_limit": "10",
}

const (
	defaultPaginationLimit = 10
	minPaginationLimit     = 1
	maxPaginationLimit     = 100
)

// SettingRepository captures the persistence operations needed by the
// settings service.
type SettingRepository interface {
	GetAllSettings(ctx context.Context) (map[string]string, error)
	SetSettings(ctx context.Context, values map[string]string) error
}

// PaginationSettings supplies the configured page size to listing services.
type PaginationSettings interface {
	PaginationLimit(ctx context.Context) int
}

// SettingsService reads and writes application settings. It owns a
// whole-table cache that is flushed after every write; no state is shared
// outside the instance.
type SettingsService struct {
	settings SettingRepository
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewSettingsService wires dependencies for the settings service.
func NewSettingsService(settings SettingRepository, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{settings: settings, logger: logger}
}

// GetAll returns the full settings mapping, falling back to the defaults
// table when the store holds no rows at all.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	if s == nil {
		return nil, fmt.Errorf("SettingsService is nil")
	}

	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()
	if cached != nil {
		return copySettings(cached), nil
	}

	stored, err := s.settings.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		stored = copySettings(DefaultSettings)
	}

	s.mu.Lock()
	s.cache = stored
	s.mu.Unlock()

	return copySettings(stored), nil
}

// Get returns the value for a key, falling back to the per-key default when
// the store has no row for it.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return "", err
	}
	if value, ok := all[key]; ok && value != "" {
		return value, nil
	}
	return DefaultSettings[key], nil
}

// Update validates and upserts the settings payload, then flushes the cache.
// A concurrent reader may observe the previous values between the write
// committing and the flush completing.
func (s *SettingsService) Update(ctx context.Context, input SettingsInput) error {
	if s == nil {
		return fmt.Errorf("SettingsService is nil")
	}

	vErr := validateSettingsInput(input)
	if vErr.HasErrors() {
		return vErr
	}

	values := map[string]string{
		"app_name":         input.AppName,
		"date_format":      input.DateFormat,
		"pagination_limit": strconv.Itoa(*input.PaginationLimit),
	}

	if err := s.settings.SetSettings(ctx, values); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()

	serviceLogger(ctx, s.logger, "SettingsService", "Update").InfoContext(ctx, "settings updated")
	return nil
}

// PaginationLimit returns the configured page size clamped to its valid
// range, defaulting when the stored value is absent or malformed.
func (s *SettingsService) PaginationLimit(ctx context.Context) int {
	value, err := s.Get(ctx, "pagination_limit")
	if err != nil {
		serviceLogger(ctx, s.logger, "SettingsService", "PaginationLimit").WarnContext(ctx, "failed to read pagination limit", "error", err)
		return defaultPaginationLimit
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < minPaginationLimit || limit > maxPaginationLimit {
		return defaultPaginationLimit
	}
	return limit
}

func validateSettingsInput(input SettingsInput) *ValidationError {
	vErr := &ValidationError{}

	if input.AppName == "" {
		vErr.add("app_name", "The app name field is required.")
	}
	if input.DateFormat == "" {
		vErr.add("date_format", "The date format field is required.")
	}
	if input.PaginationLimit == nil {
		vErr.add("pagination_limit", "The pagination limit field is required.")
	} else if *input.PaginationLimit < minPaginationLimit || *input.PaginationLimit > maxPaginationLimit {
		vErr.add("pagination_limit", "The pagination limit must be between 1 and 100.")
	}

	return vErr
}

func copySettings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
