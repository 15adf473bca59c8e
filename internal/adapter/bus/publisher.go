package bus

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"fixmate/internal/config"
	"fixmate/internal/service/engine"
)

// Publisher mirrors the engine's event stream onto NATS subjects so other
// processes (relays, recorders, additional dashboard frontends) can follow
// the derived view without attaching to this process's WebSocket.
type Publisher struct {
	nc     *nats.Conn
	engine *engine.Engine
	cfg    config.NATSConfig
	subID  string
	done   chan struct{}
}

// Connect dials NATS with the reconnect behavior used across the project
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}
	return nc, nil
}

// NewPublisher attaches a publisher to the engine's event stream
func NewPublisher(nc *nats.Conn, eng *engine.Engine, cfg config.NATSConfig) *Publisher {
	return &Publisher{
		nc:     nc,
		engine: eng,
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

// Start begins relaying events. It returns immediately; relaying runs until
// Stop or until the engine closes the subscription.
func (p *Publisher) Start() {
	subID, events := p.engine.Subscribe()
	p.subID = subID

	go func() {
		defer close(p.done)
		for ev := range events {
			subject := p.cfg.ViewTopic
			if ev.Type != engine.EventView {
				subject = p.cfg.NotificationTopic
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Failed to marshal event for NATS: %v", err)
				continue
			}
			if err := p.nc.Publish(subject, payload); err != nil {
				log.Printf("Failed to publish to NATS subject %s: %v", subject, err)
			}
		}
	}()
}

// Stop detaches from the engine and waits for the relay goroutine
func (p *Publisher) Stop() {
	if p.subID != "" {
		p.engine.Unsubscribe(p.subID)
		<-p.done
	}
}
