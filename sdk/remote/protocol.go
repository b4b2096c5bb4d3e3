// Package remote is a game-services backend reached over the network.
// Requests and pushed notifications travel as JSON envelopes over a Transport;
// websocket and NATS transports are provided.
package remote

import (
	"encoding/json"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// Envelope kinds
const (
	KindRequest  = "request"
	KindResponse = "response"
	KindNotify   = "notify"
)

// MaxMessageSize bounds a single envelope on the wire
const MaxMessageSize = 1024 * 1024

// Envelope is the wire frame for every message
// ID pairs a response with its request; Op routes requests and notifications
type Envelope struct {
	Kind    string          `json:"kind"`
	ID      string          `json:"id,omitempty"`
	Op      string          `json:"op"`
	Result  sdk.Result      `json:"result"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Args is the request payload; each op reads the fields it needs
type Args struct {
	User        sdk.AccountID    `json:"user,omitempty"`
	Target      sdk.AccountID    `json:"target,omitempty"`
	Credentials *sdk.Credentials `json:"credentials,omitempty"`
	OfferIDs    []string         `json:"offer_ids,omitempty"`
	LobbyID     string           `json:"lobby_id,omitempty"`
	SessionID   string           `json:"session_id,omitempty"`
	Name        string           `json:"name,omitempty"`
	Handle      sdk.Handle       `json:"handle,omitempty"`
	Max         int              `json:"max,omitempty"`
	Presence    bool             `json:"presence,omitempty"`
	Attributes  []sdk.Attribute  `json:"attributes,omitempty"`
}

// Reply payloads
type (
	loginReply struct {
		User sdk.AccountID `json:"user"`
	}
	checkoutReply struct {
		TransactionID string `json:"transaction_id"`
	}
	ticketReply struct {
		Ticket []byte `json:"ticket"`
	}
)

// NewRequest builds a request envelope
func NewRequest(id, op string, args Args) (Envelope, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: KindRequest, ID: id, Op: op, Payload: payload}, nil
}

// NewResponse builds a response envelope for req
func NewResponse(req Envelope, r sdk.Result, reply any) (Envelope, error) {
	env := Envelope{Kind: KindResponse, ID: req.ID, Op: req.Op, Result: r}
	if reply != nil {
		payload, err := json.Marshal(reply)
		if err != nil {
			return Envelope{}, err
		}
		env.Payload = payload
	}
	return env, nil
}

// NewNotify builds a pushed notification envelope
func NewNotify(op string, v any) (Envelope, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Kind: KindNotify, Op: op, Payload: payload}, nil
}
