package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/appointment-admin/internal/domain"
)

// Clients are listed without pagination; the admin picker only ever shows the
// most recent ten.
const latestClientsLimit = 10

// ClientRepository captures the persistence operations needed by the client
// service.
type ClientRepository interface {
	ListLatestClients(ctx context.Context, limit int) ([]domain.Client, error)
}

// ClientService reads client profiles. This back office never mutates them.
type ClientService struct {
	clients ClientRepository
	logger  *slog.Logger
}

// NewClientService wires dependencies for the client service.
func NewClientService(clients ClientRepository, logger *slog.Logger) *ClientService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientService{clients: clients, logger: logger}
}

// List returns the latest ten clients, newest first.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	if s == nil {
		return nil, fmt.Errorf("ClientService is nil")
	}

	clients, err := s.clients.ListLatestClients(ctx, latestClientsLimit)
	if err != nil {
		return nil, err
	}
	return clients, nil
}
