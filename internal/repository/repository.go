package repository

import (
	"context"

	"gasnet/internal/domain"
)

// Repository defines the interface for saved network access
type Repository interface {
	// Read operations
	ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error)
	GetNetwork(ctx context.Context, id int64) (*domain.SavedNetwork, error)

	// Write operations
	CreateNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error)
	DeleteNetwork(ctx context.Context, id int64) error

	// Close releases resources
	Close() error
}
