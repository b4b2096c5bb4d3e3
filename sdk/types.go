// Package sdk declares the game-services collaborator the samples are built on:
// the records it returns, its result codes and the narrow request/callback
// interfaces for auth, store, lobbies and sessions.
//
// Every request returns immediately. Its callback runs later, on the loop
// thread, from inside Platform.Tick.
package sdk

import "strings"

// AccountID identifies a logged-in user
type AccountID string

// Handle identifies an outstanding request, a ticket or a received invite
type Handle string

// Offer is a catalog entry in the store
// Prices are in the smallest currency unit
type Offer struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Currency      string `json:"currency"`
	CurrentPrice  int64  `json:"current_price"`
	OriginalPrice int64  `json:"original_price"`
	PriceValid    bool   `json:"price_valid"`
	PurchaseLimit int    `json:"purchase_limit"`
}

// Entitlement is an item owned by a user
type Entitlement struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CatalogItemID string `json:"catalog_item_id"`
	Redeemed      bool   `json:"redeemed"`
}

// Attribute is a key/value pair attached to a lobby or session
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Lobby is a snapshot of a lobby
type Lobby struct {
	ID         string      `json:"id"`
	Owner      AccountID   `json:"owner"`
	MaxMembers int         `json:"max_members"`
	Members    []AccountID `json:"members"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// SessionState is the lifecycle stage of a session
type SessionState int

const (
	SessionPending SessionState = iota
	SessionStarting
	SessionInProgress
	SessionEnding
	SessionEnded
	SessionDestroying
)

func (s SessionState) String() string {
	switch s {
	case SessionPending:
		return "Pending"
	case SessionStarting:
		return "Starting"
	case SessionInProgress:
		return "InProgress"
	case SessionEnding:
		return "Ending"
	case SessionEnded:
		return "Ended"
	case SessionDestroying:
		return "Destroying"
	}
	return "Unknown"
}

// Session is a snapshot of a matchmaking session
// Name is the local name the session is known by on this client
type Session struct {
	Name       string       `json:"name"`
	ID         string       `json:"id"`
	Handle     Handle       `json:"handle"`
	Owner      AccountID    `json:"owner"`
	State      SessionState `json:"state"`
	MaxPlayers int          `json:"max_players"`
	NumPlayers int          `json:"num_players"`
	Presence   bool         `json:"presence"`
	Attributes []Attribute  `json:"attributes,omitempty"`
}

// Attribute returns the value for key, matched case-insensitively
func (s Session) Attribute(key string) (string, bool) {
	return findAttribute(s.Attributes, key)
}

// Attribute returns the value for key, matched case-insensitively
func (l Lobby) Attribute(key string) (string, bool) {
	return findAttribute(l.Attributes, key)
}

// UserInfo describes an account
type UserInfo struct {
	UserID              AccountID `json:"user_id"`
	DisplayName         string    `json:"display_name"`
	ExternalDisplayName string    `json:"external_display_name,omitempty"`
}

// LobbyInvite is pushed when another user invites a local user to a lobby
type LobbyInvite struct {
	InviteID Handle    `json:"invite_id"`
	LobbyID  string    `json:"lobby_id"`
	From     AccountID `json:"from"`
	To       AccountID `json:"to"`
}

// SessionInvite is pushed when another user invites a local user to a session
type SessionInvite struct {
	InviteID Handle    `json:"invite_id"`
	From     AccountID `json:"from"`
	FromName string    `json:"from_name"`
	To       AccountID `json:"to"`
	Session  Session   `json:"session"`
}

// CredentialType selects the login flow
type CredentialType int

const (
	CredentialPassword CredentialType = iota
	CredentialDevToken
	CredentialExternal
)

// ExternalType names the provider behind an external credential
type ExternalType int

const (
	ExternalNone ExternalType = iota
	ExternalSteam
)

func (e ExternalType) String() string {
	switch e {
	case ExternalSteam:
		return "Steam"
	}
	return "None"
}

// Credentials for Auth.Login
// Token carries the password, dev token or hex-encoded external ticket
type Credentials struct {
	Type     CredentialType `json:"type"`
	ID       string         `json:"id,omitempty"`
	Token    string         `json:"token"`
	External ExternalType   `json:"external,omitempty"`
	MFACode  string         `json:"mfa_code,omitempty"`
}

// TicketResponse completes a TicketSource.RequestTicket
// Responses are delivered to every subscriber, matching is the subscriber's job
type TicketResponse struct {
	Handle Handle
	Result Result
	Ticket []byte
}

func findAttribute(attrs []Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}
