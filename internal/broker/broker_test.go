package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/propagation"

	"gasnet/internal/service"
)

type fakeConn struct {
	mu   sync.Mutex
	msgs []*nats.Msg
	err  error
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func TestHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{}
	carrier := (*headerCarrier)(msg)

	carrier.Set("traceparent", "00-abc-def-01")
	if got := carrier.Get("traceparent"); got != "00-abc-def-01" {
		t.Fatalf("expected traceparent, got %q", got)
	}

	keys := carrier.Keys()
	if len(keys) != 1 {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestHeaderCarrierNilHeader(t *testing.T) {
	carrier := (*headerCarrier)(&nats.Msg{})

	if got := carrier.Get("missing"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if keys := carrier.Keys(); keys != nil {
		t.Fatalf("expected nil keys, got %v", keys)
	}
}

func TestSubject(t *testing.T) {
	if got := newPublisher(nil, "gasnet.events").Subject(service.EventNetworkSaved); got != "gasnet.events.network_saved" {
		t.Errorf("got %q", got)
	}
	if got := newPublisher(nil, "").Subject(service.EventNetworkSaved); got != "network_saved" {
		t.Errorf("got %q", got)
	}
}

func TestPublish(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn, "gasnet.events")

	err := p.Publish(context.Background(), service.Event{
		Type:    service.EventSimulationFailed,
		Payload: map[string]any{"error": "timeout"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conn.count() != 1 {
		t.Fatalf("expected one message, got %d", conn.count())
	}
	msg := conn.msgs[0]
	if msg.Subject != "gasnet.events.simulation_failed" {
		t.Errorf("got subject %q", msg.Subject)
	}

	var ev service.Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if ev.Type != service.EventSimulationFailed {
		t.Errorf("got type %q", ev.Type)
	}
}

func TestPublishInjectsPropagatedHeaders(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.Baggage{})
	defer otel.SetTextMapPropagator(prev)

	member, err := baggage.NewMember("tenant", "ops")
	if err != nil {
		t.Fatal(err)
	}
	bag, err := baggage.New(member)
	if err != nil {
		t.Fatal(err)
	}
	ctx := baggage.ContextWithBaggage(context.Background(), bag)

	conn := &fakeConn{}
	if err := newPublisher(conn, "x").Publish(ctx, service.Event{Type: service.EventNetworkSaved}); err != nil {
		t.Fatal(err)
	}
	if got := conn.msgs[0].Header.Get("baggage"); got != "tenant=ops" {
		t.Errorf("expected baggage header, got %q", got)
	}
}

func TestPublishError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	err := newPublisher(conn, "x").Publish(context.Background(), service.Event{Type: service.EventNetworkDeleted})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAttachForwardsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := &fakeConn{}
	bus := service.NewEventBus()
	newPublisher(conn, "gasnet.events").Attach(ctx, bus)

	bus.Publish(service.Event{Type: service.EventNetworkSaved})
	bus.Publish(service.Event{Type: service.EventNetworkDeleted})

	deadline := time.Now().Add(2 * time.Second)
	for conn.count() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 messages, got %d", conn.count())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
