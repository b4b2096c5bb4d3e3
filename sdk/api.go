package sdk

// Platform is the SDK root: lifecycle plus access to the subsystems
// A subsystem accessor returns nil when the backend does not provide it
type Platform interface {
	IsInitialized() bool
	// Tick runs every completed callback; the loop calls it once per frame
	// before updating the domain caches
	Tick()
	Release()

	Auth() Auth
	Ecom() Ecom
	Lobbies() Lobbies
	Sessions() Sessions
	Tickets() TicketSource
}

// Auth logs users in and out
type Auth interface {
	Login(cred Credentials, cb func(Result, AccountID))
	Logout(user AccountID, cb func(Result))
	QueryUserInfo(local, target AccountID, cb func(Result, UserInfo))
}

// Ecom is the store backend
type Ecom interface {
	QueryOffers(user AccountID, cb func(Result, []Offer))
	QueryEntitlements(user AccountID, cb func(Result, []Entitlement))
	Checkout(user AccountID, offerIDs []string, cb func(r Result, transactionID string))
}

// Lobbies is the lobby backend
type Lobbies interface {
	CreateLobby(user AccountID, maxMembers int, cb func(Result, Lobby))
	JoinLobby(user AccountID, lobbyID string, cb func(Result, Lobby))
	LeaveLobby(user AccountID, lobbyID string, cb func(Result))
	// CopyLobby fetches the current snapshot of a joined lobby
	CopyLobby(user AccountID, lobbyID string, cb func(Result, Lobby))
	Search(user AccountID, lobbyID string, maxResults int, cb func(Result, []Lobby))
	SubscribeInvites(fn func(LobbyInvite)) (cancel func())
	SubscribeUpdates(fn func(Lobby)) (cancel func())
}

// Sessions is the session matchmaking backend
type Sessions interface {
	CreateSession(user AccountID, name string, maxPlayers int, presence bool, attrs []Attribute, cb func(Result, Session))
	// QuerySessions fetches every session user holds locally, keyed by local name
	QuerySessions(user AccountID, cb func(Result, []Session))
	Search(user AccountID, sessionID string, maxResults int, cb func(Result, []Session))
	JoinSession(user AccountID, name string, handle Handle, presence bool, cb func(Result, Session))
	DestroySession(user AccountID, name string, cb func(Result))
	SubscribeInvites(fn func(SessionInvite)) (cancel func())
}

// TicketSource issues auth tickets from an external platform
type TicketSource interface {
	RequestTicket() (Handle, error)
	CancelTicket(h Handle)
	// OnTicketResponse subscribes to every ticket response, including those
	// for tickets requested by someone else
	OnTicketResponse(fn func(TicketResponse)) (cancel func())
}
