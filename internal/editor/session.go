// Package editor drives one diagram editing session against a backend
// that stores networks and runs simulations.
//
// A Session is owned by a single caller. It is not safe for concurrent use;
// a result that arrives after the diagram was edited is applied by node id
// to whatever the diagram currently holds.
package editor

import (
	"context"
	"fmt"
	"strings"

	"gasnet/internal/diagram"
	"gasnet/internal/domain"
)

// Backend is the persistence and solver service a session talks to
type Backend interface {
	ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error)
	GetNetwork(ctx context.Context, id int64) (*domain.SavedNetwork, error)
	SaveNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error)
	DeleteNetwork(ctx context.Context, id int64) error
	Simulate(ctx context.Context, network domain.Network, fluid string) (*domain.SimulationResult, error)
}

// Session holds the diagram being edited and the saved network it came from
type Session struct {
	backend Backend
	model   *diagram.Model

	name    string
	savedID int64
}

// NewSession creates a session with an empty diagram
func NewSession(backend Backend) *Session {
	return &Session{
		backend: backend,
		model:   diagram.NewModel(nil),
	}
}

// Model returns the diagram for interactive edits
func (s *Session) Model() *diagram.Model {
	return s.model
}

// Name returns the name of the loaded or last saved network
func (s *Session) Name() string {
	return s.name
}

// SavedID returns the id of the loaded or last saved network, or 0
func (s *Session) SavedID() int64 {
	return s.savedID
}

// List returns the saved networks
func (s *Session) List(ctx context.Context) ([]domain.NetworkSummary, error) {
	list, err := s.backend.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	return list, nil
}

// Load fetches a saved network and expands it into the diagram. The diagram
// is left unchanged when the fetch fails.
func (s *Session) Load(ctx context.Context, id int64) error {
	saved, err := s.backend.GetNetwork(ctx, id)
	if err != nil {
		return fmt.Errorf("load network %d: %w", id, err)
	}

	if err := s.model.Load(saved.Network); err != nil {
		return fmt.Errorf("load network %d: %w", id, err)
	}
	s.name = saved.Name
	s.savedID = saved.ID
	return nil
}

// Project returns the network the diagram currently describes
func (s *Session) Project() domain.Network {
	name := s.name
	if name == "" {
		name = domain.DefaultNetworkName
	}
	return s.model.Project(name)
}

// Save projects the diagram and stores it under name. Every save creates a
// new saved network.
func (s *Session) Save(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: network name is required", domain.ErrInvalid)
	}

	req := &domain.SaveRequest{
		Name:        name,
		Description: description,
		Network:     s.model.Project(name),
	}
	id, err := s.backend.SaveNetwork(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("save network %q: %w", name, err)
	}

	s.name = name
	s.savedID = id
	return id, nil
}

// Delete removes a saved network. The diagram is not touched.
func (s *Session) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteNetwork(ctx, id); err != nil {
		return fmt.Errorf("delete network %d: %w", id, err)
	}
	if s.savedID == id {
		s.savedID = 0
	}
	return nil
}

// Run projects the diagram, simulates it and overlays the result. When the
// backend fails the overlay is left as it was and the error is returned. A
// result with success false clears the overlay and is returned without error.
func (s *Session) Run(ctx context.Context, fluid string) (*domain.SimulationResult, error) {
	result, err := s.backend.Simulate(ctx, s.Project(), fluid)
	if err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}

	s.model.ApplyResult(*result)
	return result, nil
}
