package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/lixenwraith/gamesvc-samples/logging"
)

const (
	// SubjectPrefix prefixes request subjects: gamesvc.<op>
	SubjectPrefix = "gamesvc."
	// NotifySubject carries pushed notifications for every user
	NotifySubject = "gamesvc.notify.>"
)

// RequestSubject returns the subject a request for op is published on
func RequestSubject(op string) string {
	return SubjectPrefix + op
}

// NATSTransport carries envelopes over NATS request/reply
// Replies arrive on a private inbox; notifications on NotifySubject
type NATSTransport struct {
	nc       *nats.Conn
	inbox    string
	subs     []*nats.Subscription
	log      logging.Logger
	incoming chan Envelope

	mu     sync.Mutex
	closed bool
}

// DialNATS connects to url and subscribes to the reply inbox and notifications
func DialNATS(url string, log logging.Logger) (*NATSTransport, error) {
	if log == nil {
		log = logging.Nop()
	}
	nc, err := nats.Connect(url,
		nats.Name("gamesvc-sample"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.LogWarning("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Log("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("remote: connect nats %s: %w", url, err)
	}

	t := &NATSTransport{
		nc:       nc,
		inbox:    nats.NewInbox(),
		log:      log,
		incoming: make(chan Envelope, sendBuffer),
	}
	for _, subject := range []string{t.inbox, NotifySubject} {
		sub, err := nc.Subscribe(subject, t.deliver)
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("remote: subscribe %s: %w", subject, err)
		}
		t.subs = append(t.subs, sub)
	}
	log.Log("Connected to NATS at %s", nc.ConnectedUrl())
	return t, nil
}

func (t *NATSTransport) Incoming() <-chan Envelope { return t.incoming }

// Send publishes env on its request subject with the private inbox as reply
func (t *NATSTransport) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return ErrClosed
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return t.nc.PublishRequest(RequestSubject(env.Op), t.inbox, data)
}

func (t *NATSTransport) deliver(msg *nats.Msg) {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		t.log.LogError("Decode message on %s: %v", msg.Subject, err)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	select {
	case t.incoming <- env:
	default:
		t.log.LogWarning("Dropping %s envelope, reader is behind", env.Op)
	}
}

// Close unsubscribes, drains the connection and closes Incoming
func (t *NATSTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.incoming)
	t.mu.Unlock()

	for _, sub := range t.subs {
		sub.Unsubscribe()
	}
	t.nc.Close()
	return nil
}
