package bus

import (
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
)

// Bus wraps a core NATS connection for fire-and-forget event publishing.
// Subjects are not backed by a stream on purpose: published events are
// observations for whoever is listening right now, never durable state.
type Bus struct {
	conn *nats.Conn
}

// New creates a Bus connected to the provided NATS endpoint.
func New(url string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	return &Bus{conn: nc}, nil
}

// Close flushes pending messages and shuts down the underlying connection.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Publish encodes v as JSON and publishes it to the given subject.
func (b *Bus) Publish(subj string, v any) error {
	if b == nil {
		return errors.New("nil bus")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.conn.Publish(subj, data)
}
