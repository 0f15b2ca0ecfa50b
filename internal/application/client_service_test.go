package application

import (
	"context"
	"testing"

	"github.com/example/appointment-admin/internal/domain"
)

type clientRepoStub struct {
	latest     []domain.Client
	askedLimit int
}

func (r *clientRepoStub) ListLatestClients(ctx context.Context, limit int) ([]domain.Client, error) {
	r.askedLimit = limit
	return r.latest, nil
}

func TestClientService_List(t *testing.T) {
	repo := &clientRepoStub{latest: []domain.Client{{ID: "client-1"}, {ID: "client-2"}}}
	svc := NewClientService(repo, nil)

	clients, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if repo.askedLimit != 10 {
		t.Fatalf("expected the latest ten, asked for %d", repo.askedLimit)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
}
