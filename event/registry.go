package event

import (
	"strconv"
	"strings"
)

var (
	nameToType = make(map[string]Type)
	typeToName = make(map[Type]string)
)

// register maps a name to a Type; lookups by name are case-insensitive
func register(name string, t Type) {
	nameToType[strings.ToUpper(name)] = t
	typeToName[t] = name
}

func init() {
	register("UserLoggedIn", EventUserLoggedIn)
	register("UserLoginFailed", EventUserLoginFailed)
	register("UserLoginRequiresMFA", EventUserLoginRequiresMFA)
	register("UserLoginEnteredMFA", EventUserLoginEnteredMFA)
	register("StartUserLogin", EventStartUserLogin)
	register("UserLogOutTriggered", EventUserLogOutTriggered)
	register("UserLoggedOut", EventUserLoggedOut)
	register("UserInfoRetrieved", EventUserInfoRetrieved)
	register("NewUserLogin", EventNewUserLogin)
	register("CancelLogin", EventCancelLogin)
	register("ShowPrevUser", EventShowPrevUser)
	register("ShowNextUser", EventShowNextUser)

	register("ToggleNotification", EventToggleNotification)
	register("ShowPopup", EventShowPopup)
	register("ExitRequested", EventExitRequested)

	register("CatalogUpdated", EventCatalogUpdated)
	register("EntitlementsUpdated", EventEntitlementsUpdated)
	register("CheckoutRequested", EventCheckoutRequested)
	register("CheckoutComplete", EventCheckoutComplete)
	register("CheckoutFailed", EventCheckoutFailed)

	register("LobbyJoined", EventLobbyJoined)
	register("LobbyLeft", EventLobbyLeft)
	register("LobbyUpdated", EventLobbyUpdated)
	register("LobbySearchFinished", EventLobbySearchFinished)
	register("LobbyInviteReceived", EventLobbyInviteReceived)

	register("SessionsUpdated", EventSessionsUpdated)
	register("SessionSearchFinished", EventSessionSearchFinished)
	register("SessionJoined", EventSessionJoined)
	register("SessionInviteReceived", EventSessionInviteReceived)
	register("SessionInviteAccepted", EventSessionInviteAccepted)
}

// Parse returns the Type registered under name, ignoring case
func Parse(name string) (Type, bool) {
	t, ok := nameToType[strings.ToUpper(name)]
	return t, ok
}

// Names returns every registered name in Type order
func Names() []string {
	names := make([]string, 0, len(typeToName))
	for t := EventNone + 1; t < typeCount; t++ {
		if n, ok := typeToName[t]; ok {
			names = append(names, n)
		}
	}
	return names
}

func (t Type) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return "Event(" + strconv.Itoa(int(t)) + ")"
}
