package service

import (
	"context"
	"log"

	"gasnet/internal/domain"
)

// Simulator runs a network through the solver
type Simulator interface {
	Simulate(ctx context.Context, network domain.Network, fluid string) (*domain.SimulationResult, error)
}

// SimulationService validates networks and forwards them to the solver
type SimulationService struct {
	solver       Simulator
	networks     *NetworkService
	eventBus     *EventBus
	defaultFluid string
}

// NewSimulationService creates a new simulation service
func NewSimulationService(solver Simulator, networks *NetworkService, eventBus *EventBus, defaultFluid string) *SimulationService {
	return &SimulationService{
		solver:       solver,
		networks:     networks,
		eventBus:     eventBus,
		defaultFluid: defaultFluid,
	}
}

// Simulate runs network with the given fluid. An empty fluid falls back to
// the network's own fluid, then to the service default. A result with
// success false is returned as a normal result, not an error.
func (s *SimulationService) Simulate(ctx context.Context, network domain.Network, fluid string) (*domain.SimulationResult, error) {
	if network.Name == "" {
		network.Name = domain.DefaultNetworkName
	}
	if err := network.Validate(); err != nil {
		return nil, err
	}

	fluid = s.resolveFluid(fluid, network.Fluid)

	result, err := s.solver.Simulate(ctx, network, fluid)
	if err != nil {
		log.Printf("Simulation of %q failed: %v", network.Name, err)
		s.eventBus.Publish(Event{
			Type:    EventSimulationFailed,
			Payload: map[string]any{"network": network.Name, "fluid": fluid, "error": err.Error()},
		})
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type: EventSimulationCompleted,
		Payload: map[string]any{
			"network": network.Name,
			"fluid":   fluid,
			"success": result.Success,
			"message": result.Message,
			"nodes":   len(result.Nodes),
		},
	})

	return result, nil
}

// SimulateStored runs a saved network
func (s *SimulationService) SimulateStored(ctx context.Context, id int64, fluid string) (*domain.SimulationResult, error) {
	saved, err := s.networks.GetNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Simulate(ctx, saved.Network, fluid)
}

// DefaultFluid returns the fluid used when neither request nor network name one
func (s *SimulationService) DefaultFluid() string {
	return s.defaultFluid
}

func (s *SimulationService) resolveFluid(requested, stored string) string {
	if requested != "" {
		return requested
	}
	if stored != "" {
		return stored
	}
	return s.defaultFluid
}
