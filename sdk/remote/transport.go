package remote

import (
	"context"
	"errors"
)

// ErrClosed is returned by Send after Close
var ErrClosed = errors.New("remote: transport closed")

// Transport moves envelopes between the client and a backend
// Incoming is closed when the connection ends
type Transport interface {
	Send(ctx context.Context, env Envelope) error
	Incoming() <-chan Envelope
	Close() error
}
