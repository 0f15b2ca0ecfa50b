package application

import (
	"context"
	"errors"
	"testing"
)

type settingRepoStub struct {
	stored   map[string]string
	getCalls int
	getErr   error

	setValues map[string]string
	setErr    error
}

func (r *settingRepoStub) GetAllSettings(ctx context.Context) (map[string]string, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make(map[string]string, len(r.stored))
	for key, value := range r.stored {
		out[key] = value
	}
	return out, nil
}

func (r *settingRepoStub) SetSettings(ctx context.Context, values map[string]string) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.setValues = values
	if r.stored == nil {
		r.stored = make(map[string]string)
	}
	for key, value := range values {
		r.stored[key] = value
	}
	return nil
}

func intPtr(v int) *int { return &v }

func TestSettingsService_GetAll(t *testing.T) {
	t.Run("falls back to defaults when the store is empty", func(t *testing.T) {
		svc := NewSettingsService(&settingRepoStub{}, nil)

		all, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll returned error: %v", err)
		}

		if all["app_name"] != "Appointment Admin" {
			t.Fatalf("unexpected app_name: %q", all["app_name"])
		}
		if all["date_format"] != "Y-m-d" {
			t.Fatalf("unexpected date_format: %q", all["date_format"])
		}
		if all["pagination_limit"] != "10" {
			t.Fatalf("unexpected pagination_limit: %q", all["pagination_limit"])
		}
	})

	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		repo := &settingRepoStub{stored: map[string]string{"app_name": "Clinic"}}
		svc := NewSettingsService(repo, nil)

		for i := 0; i < 3; i++ {
			if _, err := svc.GetAll(context.Background()); err != nil {
				t.Fatalf("GetAll returned error: %v", err)
			}
		}

		if repo.getCalls != 1 {
			t.Fatalf("expected one repository read, got %d", repo.getCalls)
		}
	})

	t.Run("returned maps are copies", func(t *testing.T) {
		repo := &settingRepoStub{stored: map[string]string{"app_name": "Clinic"}}
		svc := NewSettingsService(repo, nil)

		first, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll returned error: %v", err)
		}
		first["app_name"] = "mutated"

		second, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll returned error: %v", err)
		}
		if second["app_name"] != "Clinic" {
			t.Fatalf("cache should be isolated from caller mutation, got %q", second["app_name"])
		}
	})
}

func TestSettingsService_Update(t *testing.T) {
	t.Run("persists and flushes the cache", func(t *testing.T) {
		repo := &settingRepoStub{stored: map[string]string{
			"app_name":         "Old Name",
			"date_format":      "Y-m-d",
			"pagination_limit": "10",
		}}
		svc := NewSettingsService(repo, nil)

		// warm the cache
		if _, err := svc.GetAll(context.Background()); err != nil {
			t.Fatalf("GetAll returned error: %v", err)
		}

		err := svc.Update(context.Background(), SettingsInput{
			AppName:         "New Name",
			DateFormat:      "d/m/Y",
			PaginationLimit: intPtr(25),
		})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}

		if repo.setValues["pagination_limit"] != "25" {
			t.Fatalf("unexpected persisted limit: %q", repo.setValues["pagination_limit"])
		}

		all, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll returned error: %v", err)
		}
		if all["app_name"] != "New Name" {
			t.Fatalf("cache should be flushed after the write, got %q", all["app_name"])
		}
		if repo.getCalls != 2 {
			t.Fatalf("expected a re-read after the flush, got %d calls", repo.getCalls)
		}
	})

	t.Run("rejects missing and out of range values", func(t *testing.T) {
		svc := NewSettingsService(&settingRepoStub{}, nil)

		err := svc.Update(context.Background(), SettingsInput{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.FieldErrors["app_name"]; got != "The app name field is required." {
			t.Fatalf("unexpected app_name message: %q", got)
		}
		if got := vErr.FieldErrors["pagination_limit"]; got != "The pagination limit field is required." {
			t.Fatalf("unexpected pagination_limit message: %q", got)
		}

		err = svc.Update(context.Background(), SettingsInput{
			AppName:         "Clinic",
			DateFormat:      "Y-m-d",
			PaginationLimit: intPtr(500),
		})
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if got := vErr.FieldErrors["pagination_limit"]; got != "The pagination limit must be between 1 and 100." {
			t.Fatalf("unexpected range message: %q", got)
		}
	})
}

func TestSettingsService_PaginationLimit(t *testing.T) {
	cases := []struct {
		name   string
		stored string
		want   int
	}{
		{name: "uses the stored value", stored: "25", want: 25},
		{name: "defaults when malformed", stored: "lots", want: 10},
		{name: "defaults when out of range", stored: "0", want: 10},
		{name: "defaults when empty", stored: "", want: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &settingRepoStub{}
			if tc.stored != "" {
				repo.stored = map[string]string{"pagination_limit": tc.stored}
			}
			svc := NewSettingsService(repo, nil)

			if got := svc.PaginationLimit(context.Background()); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
