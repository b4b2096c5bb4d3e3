package event

// Type tags a game event
type Type int

const (
	// EventNone is the zero value and never emitted
	EventNone Type = iota

	// === Account ===

	// EventStartUserLogin asks authentication to log a user in
	// Trigger: LOGIN console command, ExternalAuth ticket ready
	// Consumer: Authentication | Text: credential token, Int0: login mode, Int1: external type
	EventStartUserLogin

	// EventUserLoggedIn signals a completed login
	// Trigger: Authentication | Consumer: Players, Store, dialogs | User: account id
	EventUserLoggedIn

	// EventUserLoginFailed signals a rejected login
	// Trigger: Authentication | Consumer: ExternalAuth, PopupDialog | Text: reason
	EventUserLoginFailed

	// EventUserLoginRequiresMFA signals the backend wants a second factor
	// Trigger: Authentication | Consumer: StoreDialog, ConsoleDialog | User: pending account id
	EventUserLoginRequiresMFA

	// EventUserLoginEnteredMFA signals a second factor was supplied
	// Trigger: MFA console command | Consumer: Authentication, StoreDialog | Text: code
	EventUserLoginEnteredMFA

	// EventUserLogOutTriggered asks authentication to log a user out
	// Trigger: LOGOUT console command | Consumer: Authentication | User: account id
	EventUserLogOutTriggered

	// EventUserLoggedOut signals a completed logout
	// Trigger: Authentication | Consumer: Players, Store, Lobbies, Sessions, dialogs | User: account id
	EventUserLoggedOut

	// EventUserInfoRetrieved signals display data for a user is available
	// Trigger: Authentication | Consumer: ExternalAuth, Players | User: account id, Text: display name
	EventUserInfoRetrieved

	// EventNewUserLogin signals the player opened the login flow for another user
	// Trigger: NEWUSER console command | Consumer: StoreDialog
	EventNewUserLogin

	// EventCancelLogin aborts a pending login flow
	// Trigger: console | Consumer: Menu, StoreDialog
	EventCancelLogin

	// EventShowPrevUser switches the current user backwards
	// Trigger: PREVUSER console command | Consumer: Players, Store, Menu
	EventShowPrevUser

	// EventShowNextUser switches the current user forwards
	// Trigger: NEXTUSER console command | Consumer: Players, Store, Menu
	EventShowNextUser

	// === UI ===

	// EventToggleNotification shows or hides the notification dialog
	// Trigger: F2 key, NOTIFY command | Consumer: Menu
	EventToggleNotification

	// EventShowPopup shows a modal text popup
	// Trigger: any component reporting to the player | Consumer: Menu | Text: message
	EventShowPopup

	// EventExitRequested starts the exit confirmation or, with Int0 = 1, exits directly
	// Trigger: QUIT command, Escape, SIGTERM | Consumer: Menu, Game
	EventExitRequested

	// === Store ===

	// EventCatalogUpdated signals the offer cache was replaced
	// Trigger: Store | Consumer: StoreDialog | User: account id, Int0: offer count
	EventCatalogUpdated

	// EventEntitlementsUpdated signals the entitlement cache was replaced
	// Trigger: Store | Consumer: StoreDialog | User: account id, Int0: entitlement count
	EventEntitlementsUpdated

	// EventCheckoutRequested asks the store to buy an offer
	// Trigger: OfferInfoWidget Checkout button, CHECKOUT command | Consumer: Store | Text: offer id
	EventCheckoutRequested

	// EventCheckoutComplete signals a finished purchase
	// Trigger: Store | Consumer: NotificationDialog, audio | Text: transaction id
	EventCheckoutComplete

	// EventCheckoutFailed signals a rejected purchase
	// Trigger: Store | Consumer: PopupDialog, audio | Text: offer id
	EventCheckoutFailed

	// === Lobbies ===

	// EventLobbyJoined signals the local user is now in a lobby
	// Trigger: Lobbies | Consumer: LobbyDialog | Text: lobby id
	EventLobbyJoined

	// EventLobbyLeft signals the local user left the current lobby
	// Trigger: Lobbies | Consumer: LobbyDialog | Text: lobby id
	EventLobbyLeft

	// EventLobbyUpdated signals the current lobby details changed
	// Trigger: Lobbies (refresh or pushed update) | Consumer: LobbyDialog | Text: lobby id
	EventLobbyUpdated

	// EventLobbySearchFinished signals search results were replaced
	// Trigger: Lobbies | Consumer: LobbyDialog | Int0: result count
	EventLobbySearchFinished

	// EventLobbyInviteReceived signals an incoming lobby invite
	// Trigger: Lobbies | Consumer: NotificationDialog, audio | User: sender, Text: lobby id
	EventLobbyInviteReceived

	// === Sessions ===

	// EventSessionsUpdated signals the local session list changed
	// Trigger: SessionMatchmaking | Consumer: SessionsDialog | Int0: session count
	EventSessionsUpdated

	// EventSessionSearchFinished signals session search results were replaced
	// Trigger: SessionMatchmaking | Consumer: SessionsDialog | Int0: result count
	EventSessionSearchFinished

	// EventSessionJoined signals the local user joined a session
	// Trigger: SessionMatchmaking | Consumer: SessionsDialog | Text: session name
	EventSessionJoined

	// EventSessionInviteReceived signals an incoming session invite
	// Trigger: SessionMatchmaking | Consumer: SessionInviteReceivedDialog, audio | User: sender, Text: sender display name
	EventSessionInviteReceived

	// EventSessionInviteAccepted signals the player accepted the pending invite
	// Trigger: SessionInviteReceivedDialog Accept | Consumer: SessionMatchmaking | Int0: 1 when joining with presence
	EventSessionInviteAccepted

	typeCount
)

// LoginMode is carried in Int0 of EventStartUserLogin
type LoginMode int

const (
	LoginPassword LoginMode = iota
	LoginDevToken
	LoginExternalAuth
)

// ExternalType is carried in Int1 of EventStartUserLogin for LoginExternalAuth
type ExternalType int

const (
	ExternalNone ExternalType = iota
	ExternalSteam
)
