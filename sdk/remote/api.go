package remote

import (
	"encoding/json"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

type authAPI struct{ c *Client }

func (a authAPI) Login(cred sdk.Credentials, cb func(sdk.Result, sdk.AccountID)) {
	a.c.call(sdk.OpLogin, Args{Credentials: &cred}, func(r sdk.Result, p json.RawMessage) {
		var out loginReply
		r = a.c.reply(sdk.OpLogin, r, p, &out)
		cb(r, out.User)
	})
}

func (a authAPI) Logout(user sdk.AccountID, cb func(sdk.Result)) {
	a.c.call(sdk.OpLogout, Args{User: user}, func(r sdk.Result, _ json.RawMessage) { cb(r) })
}

func (a authAPI) QueryUserInfo(local, target sdk.AccountID, cb func(sdk.Result, sdk.UserInfo)) {
	a.c.call(sdk.OpUserInfo, Args{User: local, Target: target}, func(r sdk.Result, p json.RawMessage) {
		var out sdk.UserInfo
		r = a.c.reply(sdk.OpUserInfo, r, p, &out)
		cb(r, out)
	})
}

type ecomAPI struct{ c *Client }

func (e ecomAPI) QueryOffers(user sdk.AccountID, cb func(sdk.Result, []sdk.Offer)) {
	e.c.call(sdk.OpOffers, Args{User: user}, func(r sdk.Result, p json.RawMessage) {
		var out []sdk.Offer
		r = e.c.reply(sdk.OpOffers, r, p, &out)
		cb(r, out)
	})
}

func (e ecomAPI) QueryEntitlements(user sdk.AccountID, cb func(sdk.Result, []sdk.Entitlement)) {
	e.c.call(sdk.OpEntitlements, Args{User: user}, func(r sdk.Result, p json.RawMessage) {
		var out []sdk.Entitlement
		r = e.c.reply(sdk.OpEntitlements, r, p, &out)
		cb(r, out)
	})
}

func (e ecomAPI) Checkout(user sdk.AccountID, offerIDs []string, cb func(sdk.Result, string)) {
	e.c.call(sdk.OpCheckout, Args{User: user, OfferIDs: offerIDs}, func(r sdk.Result, p json.RawMessage) {
		var out checkoutReply
		r = e.c.reply(sdk.OpCheckout, r, p, &out)
		cb(r, out.TransactionID)
	})
}

type lobbyAPI struct{ c *Client }

func (l lobbyAPI) lobby(op string, args Args, cb func(sdk.Result, sdk.Lobby)) {
	l.c.call(op, args, func(r sdk.Result, p json.RawMessage) {
		var out sdk.Lobby
		r = l.c.reply(op, r, p, &out)
		cb(r, out)
	})
}

func (l lobbyAPI) CreateLobby(user sdk.AccountID, maxMembers int, cb func(sdk.Result, sdk.Lobby)) {
	l.lobby(sdk.OpLobbyCreate, Args{User: user, Max: maxMembers}, cb)
}

func (l lobbyAPI) JoinLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result, sdk.Lobby)) {
	l.lobby(sdk.OpLobbyJoin, Args{User: user, LobbyID: lobbyID}, cb)
}

func (l lobbyAPI) CopyLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result, sdk.Lobby)) {
	l.lobby(sdk.OpLobbyCopy, Args{User: user, LobbyID: lobbyID}, cb)
}

func (l lobbyAPI) LeaveLobby(user sdk.AccountID, lobbyID string, cb func(sdk.Result)) {
	l.c.call(sdk.OpLobbyLeave, Args{User: user, LobbyID: lobbyID}, func(r sdk.Result, _ json.RawMessage) { cb(r) })
}

func (l lobbyAPI) Search(user sdk.AccountID, lobbyID string, maxResults int, cb func(sdk.Result, []sdk.Lobby)) {
	l.c.call(sdk.OpLobbySearch, Args{User: user, LobbyID: lobbyID, Max: maxResults}, func(r sdk.Result, p json.RawMessage) {
		var out []sdk.Lobby
		r = l.c.reply(sdk.OpLobbySearch, r, p, &out)
		cb(r, out)
	})
}

func (l lobbyAPI) SubscribeInvites(fn func(sdk.LobbyInvite)) func() {
	return l.c.lobbyInvites.Add(fn)
}

func (l lobbyAPI) SubscribeUpdates(fn func(sdk.Lobby)) func() {
	return l.c.lobbyUpdates.Add(fn)
}

type sessionAPI struct{ c *Client }

func (s sessionAPI) sessions(op string, args Args, cb func(sdk.Result, []sdk.Session)) {
	s.c.call(op, args, func(r sdk.Result, p json.RawMessage) {
		var out []sdk.Session
		r = s.c.reply(op, r, p, &out)
		cb(r, out)
	})
}

func (s sessionAPI) session(op string, args Args, cb func(sdk.Result, sdk.Session)) {
	s.c.call(op, args, func(r sdk.Result, p json.RawMessage) {
		var out sdk.Session
		r = s.c.reply(op, r, p, &out)
		cb(r, out)
	})
}

func (s sessionAPI) CreateSession(user sdk.AccountID, name string, maxPlayers int, presence bool, attrs []sdk.Attribute, cb func(sdk.Result, sdk.Session)) {
	s.session(sdk.OpSessionCreate, Args{User: user, Name: name, Max: maxPlayers, Presence: presence, Attributes: attrs}, cb)
}

func (s sessionAPI) QuerySessions(user sdk.AccountID, cb func(sdk.Result, []sdk.Session)) {
	s.sessions(sdk.OpSessionQuery, Args{User: user}, cb)
}

func (s sessionAPI) Search(user sdk.AccountID, sessionID string, maxResults int, cb func(sdk.Result, []sdk.Session)) {
	s.sessions(sdk.OpSessionSearch, Args{User: user, SessionID: sessionID, Max: maxResults}, cb)
}

func (s sessionAPI) JoinSession(user sdk.AccountID, name string, handle sdk.Handle, presence bool, cb func(sdk.Result, sdk.Session)) {
	s.session(sdk.OpSessionJoin, Args{User: user, Name: name, Handle: handle, Presence: presence}, cb)
}

func (s sessionAPI) DestroySession(user sdk.AccountID, name string, cb func(sdk.Result)) {
	s.c.call(sdk.OpSessionDestroy, Args{User: user, Name: name}, func(r sdk.Result, _ json.RawMessage) { cb(r) })
}

func (s sessionAPI) SubscribeInvites(fn func(sdk.SessionInvite)) func() {
	return s.c.sessionInvites.Add(fn)
}

type ticketAPI struct{ c *Client }

// RequestTicket asks the backend to mint a ticket; the handle is the request id
func (t ticketAPI) RequestTicket() (sdk.Handle, error) {
	if !t.c.IsInitialized() {
		return "", ErrClosed
	}
	var h sdk.Handle
	id := t.c.call(sdk.OpTicket, Args{}, func(r sdk.Result, p json.RawMessage) {
		var out ticketReply
		r = t.c.reply(sdk.OpTicket, r, p, &out)
		t.c.ticketSubs.Notify(sdk.TicketResponse{Handle: h, Result: r, Ticket: out.Ticket})
	})
	h = sdk.Handle(id)
	return h, nil
}

// CancelTicket is local only; the backend expires tickets on its own
func (t ticketAPI) CancelTicket(sdk.Handle) {}

func (t ticketAPI) OnTicketResponse(fn func(sdk.TicketResponse)) func() {
	return t.c.ticketSubs.Add(fn)
}
