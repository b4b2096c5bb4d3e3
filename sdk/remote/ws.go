package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/gamesvc-samples/logging"
)

const (
	// Time allowed to write a frame
	writeWait = 10 * time.Second

	// Time allowed between pongs from the backend
	pongWait = 60 * time.Second

	// Ping period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 64
)

// WSPath is the websocket endpoint path on a backend host
const WSPath = "/ws"

// WSTransport carries envelopes over a websocket connection
type WSTransport struct {
	conn     *websocket.Conn
	endpoint string
	log      logging.Logger

	send     chan Envelope
	incoming chan Envelope
	done     chan struct{}
	once     sync.Once
}

// EndpointURL turns "host:port" into a websocket URL; full ws:// or wss:// URLs pass through
func EndpointURL(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		return endpoint
	}
	u := url.URL{Scheme: "ws", Host: endpoint, Path: WSPath}
	return u.String()
}

// DialWS connects to the first reachable endpoint, in order
func DialWS(ctx context.Context, endpoints []string, log logging.Logger) (*WSTransport, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("remote: no websocket endpoints")
	}
	if log == nil {
		log = logging.Nop()
	}

	var errs []error
	for _, ep := range endpoints {
		u := EndpointURL(ep)
		log.Log("Connecting to %s", u)

		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
		if err == nil {
			log.Log("Connected to %s", u)
			return newWSTransport(conn, u, log), nil
		}
		if resp != nil {
			err = fmt.Errorf("%w (status %s)", err, resp.Status)
		}
		log.LogWarning("Failed to connect to %s: %v", u, err)
		errs = append(errs, fmt.Errorf("%s: %w", u, err))
	}
	return nil, fmt.Errorf("remote: no endpoint reachable: %w", errors.Join(errs...))
}

func newWSTransport(conn *websocket.Conn, endpoint string, log logging.Logger) *WSTransport {
	t := &WSTransport{
		conn:     conn,
		endpoint: endpoint,
		log:      log,
		send:     make(chan Envelope, sendBuffer),
		incoming: make(chan Envelope, sendBuffer),
		done:     make(chan struct{}),
	}
	conn.SetReadLimit(MaxMessageSize)
	go t.readLoop()
	go t.writeLoop()
	return t
}

// Endpoint returns the URL the transport is connected to
func (t *WSTransport) Endpoint() string { return t.endpoint }

func (t *WSTransport) Incoming() <-chan Envelope { return t.incoming }

// Send queues env for the write loop
func (t *WSTransport) Send(ctx context.Context, env Envelope) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}
	select {
	case t.send <- env:
		return nil
	case <-t.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops both loops and closes the connection
func (t *WSTransport) Close() error {
	t.once.Do(func() { close(t.done) })
	return nil
}

func (t *WSTransport) readLoop() {
	defer func() {
		t.Close()
		t.conn.Close()
		close(t.incoming)
	}()

	t.conn.SetReadDeadline(time.Now().Add(pongWait))
	t.conn.SetPongHandler(func(string) error {
		t.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := t.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.log.LogError("Connection to %s lost: %v", t.endpoint, err)
			}
			return
		}
		select {
		case t.incoming <- env:
		case <-t.done:
			return
		}
	}
}

func (t *WSTransport) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		t.conn.Close()
	}()

	for {
		select {
		case env := <-t.send:
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.conn.WriteJSON(env); err != nil {
				t.log.LogError("Write to %s: %v", t.endpoint, err)
				t.Close()
				return
			}
		case <-ticker.C:
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := t.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				t.Close()
				return
			}
		case <-t.done:
			t.conn.SetWriteDeadline(time.Now().Add(writeWait))
			t.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
