package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
	"gasnet/internal/repository"
)

// NetworkService provides business logic for saved networks
type NetworkService struct {
	repo     repository.Repository
	eventBus *EventBus
}

// NewNetworkService creates a new network service
func NewNetworkService(repo repository.Repository, eventBus *EventBus) *NetworkService {
	return &NetworkService{
		repo:     repo,
		eventBus: eventBus,
	}
}

// ListNetworks returns a summary of every saved network
func (s *NetworkService) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	return s.repo.ListNetworks(ctx)
}

// GetNetwork retrieves a saved network by id
func (s *NetworkService) GetNetwork(ctx context.Context, id int64) (*domain.SavedNetwork, error) {
	saved, err := s.repo.GetNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("network %d: %w", id, domain.ErrNotFound)
	}
	return saved, nil
}

// SaveNetwork validates and stores a network, returning its id
func (s *NetworkService) SaveNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error) {
	if err := s.validateSave(req); err != nil {
		return 0, err
	}

	id, err := s.repo.CreateNetwork(ctx, req)
	if err != nil {
		return 0, err
	}

	s.eventBus.Publish(Event{
		Type:    EventNetworkSaved,
		Payload: map[string]any{"id": id, "name": req.Name},
	})

	return id, nil
}

// DeleteNetwork removes a saved network
func (s *NetworkService) DeleteNetwork(ctx context.Context, id int64) error {
	if err := s.repo.DeleteNetwork(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventNetworkDeleted,
		Payload: map[string]any{"id": id},
	})

	return nil
}

// ImportNetwork parses a network in the given format and saves it. The
// name overrides the name inside the document when set.
func (s *NetworkService) ImportNetwork(ctx context.Context, format, name string, data []byte) (int64, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	network, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	if name == "" {
		name = network.Name
	}
	return s.SaveNetwork(ctx, &domain.SaveRequest{Name: name, Network: *network})
}

// ExportNetwork writes a saved network in the given format
func (s *NetworkService) ExportNetwork(ctx context.Context, id int64, format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}

	saved, err := s.GetNetwork(ctx, id)
	if err != nil {
		return err
	}

	return c.Export(&saved.Network, w)
}

// validateSave trims the name, fills the network name and checks the
// network structure
func (s *NetworkService) validateSave(req *domain.SaveRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("%w: network name required", domain.ErrInvalid)
	}
	if req.Network.Name == "" {
		req.Network.Name = req.Name
	}
	if req.Network.Nodes == nil {
		req.Network.Nodes = []domain.Node{}
	}
	if req.Network.Edges == nil {
		req.Network.Edges = []domain.Edge{}
	}
	return req.Network.Validate()
}
