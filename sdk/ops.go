package sdk

// Operation names shared by the backends, the wire protocol and failure injection
const (
	OpLogin           = "auth.login"
	OpLogout          = "auth.logout"
	OpUserInfo        = "auth.userinfo"
	OpOffers          = "ecom.offers"
	OpEntitlements    = "ecom.entitlements"
	OpCheckout        = "ecom.checkout"
	OpLobbyCreate     = "lobby.create"
	OpLobbyJoin       = "lobby.join"
	OpLobbyLeave      = "lobby.leave"
	OpLobbyCopy       = "lobby.copy"
	OpLobbySearch     = "lobby.search"
	OpSessionCreate   = "session.create"
	OpSessionQuery    = "session.query"
	OpSessionSearch   = "session.search"
	OpSessionJoin     = "session.join"
	OpSessionDestroy  = "session.destroy"
	OpTicket          = "ticket.request"
	NotifyLobbyInvite = "lobby.invite"
	NotifyLobbyUpdate = "lobby.update"
	NotifySessInvite  = "session.invite"
)
