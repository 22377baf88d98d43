// Package broker publishes service events to NATS subjects with trace
// context carried in message headers.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"gasnet/internal/service"
)

// headerCarrier adapts nats.Msg headers for the OTel TextMapCarrier
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// msgPublisher is the part of *nats.Conn the publisher needs
type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher sends events to <prefix>.<event type>
type Publisher struct {
	conn   msgPublisher
	close  func()
	prefix string
}

// Connect dials NATS and returns a publisher for the subject prefix
func Connect(url, prefix string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("gasnet-server"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	p := newPublisher(nc, prefix)
	p.close = nc.Close
	return p, nil
}

func newPublisher(conn msgPublisher, prefix string) *Publisher {
	return &Publisher{conn: conn, prefix: prefix}
}

// Subject returns the subject an event type is published on
func (p *Publisher) Subject(t service.EventType) string {
	if p.prefix == "" {
		return string(t)
	}
	return p.prefix + "." + string(t)
}

// Publish sends one event as JSON, injecting the trace context from ctx
func (p *Publisher) Publish(ctx context.Context, ev service.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.Subject(ev.Type),
		Data:    data,
	}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}

// Attach forwards every event from bus until ctx is done. Publish failures
// are logged and do not stop forwarding.
func (p *Publisher) Attach(ctx context.Context, bus *service.EventBus) {
	events := make(chan service.Event, 64)
	bus.Subscribe(events)

	go func() {
		for {
			select {
			case ev := <-events:
				if err := p.Publish(ctx, ev); err != nil {
					log.Printf("NATS publish failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close closes the underlying connection
func (p *Publisher) Close() {
	if p.close != nil {
		p.close()
	}
}
