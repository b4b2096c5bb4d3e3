package account

import (
	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// Authentication turns login and logout events into SDK requests
type Authentication struct {
	auth    sdk.Auth
	bus     event.Emitter
	log     logging.Logger
	current func() sdk.AccountID

	pending  *sdk.Credentials
	inFlight bool
	infos    map[sdk.AccountID]sdk.UserInfo
}

// NewAuthentication creates the login driver; current supplies the default logout target
func NewAuthentication(auth sdk.Auth, bus event.Emitter, current func() sdk.AccountID, log logging.Logger) *Authentication {
	if log == nil {
		log = logging.Nop()
	}
	return &Authentication{auth: auth, bus: bus, log: log, current: current, infos: make(map[sdk.AccountID]sdk.UserInfo)}
}

// OnGameEvent handles StartUserLogin, UserLoginEnteredMFA, UserLogOutTriggered and CancelLogin
func (a *Authentication) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventStartUserLogin:
		a.Login(credentialsFrom(ev))
	case event.EventUserLoginEnteredMFA:
		if a.pending == nil {
			a.log.LogError("No login is waiting for an MFA code.")
			return
		}
		cred := *a.pending
		cred.MFACode = ev.Text()
		a.Login(cred)
	case event.EventUserLogOutTriggered:
		user := sdk.AccountID(ev.UserID())
		if user == "" && a.current != nil {
			user = a.current()
		}
		a.Logout(user)
	case event.EventCancelLogin:
		a.pending = nil
	}
}

func credentialsFrom(ev event.Event) sdk.Credentials {
	cred := sdk.Credentials{ID: ev.UserID(), Token: ev.Text()}
	switch event.LoginMode(ev.IntOr(0, int(event.LoginPassword))) {
	case event.LoginDevToken:
		cred.Type = sdk.CredentialDevToken
	case event.LoginExternalAuth:
		cred.Type = sdk.CredentialExternal
		if event.ExternalType(ev.IntOr(1, 0)) == event.ExternalSteam {
			cred.External = sdk.ExternalSteam
		}
	default:
		cred.Type = sdk.CredentialPassword
	}
	return cred
}

// Login starts a login; returns false while another login is in flight
func (a *Authentication) Login(cred sdk.Credentials) bool {
	if a.inFlight {
		a.log.LogWarning("Login already in progress")
		return false
	}
	a.inFlight = true
	a.auth.Login(cred, func(r sdk.Result, user sdk.AccountID) {
		a.inFlight = false
		switch r {
		case sdk.Success:
			a.pending = nil
			a.log.Log("User logged in: %s", user)
			a.bus.Emit(event.NewUser(event.EventUserLoggedIn, string(user)))
			a.queryUserInfo(user)
		case sdk.AuthMFARequired:
			c := cred
			a.pending = &c
			a.log.Log("MFA code required for %s", cred.ID)
			a.bus.Emit(event.NewUser(event.EventUserLoginRequiresMFA, cred.ID))
		default:
			a.pending = nil
			a.log.LogError("Login failed: %s", r)
			a.bus.Emit(event.NewText(event.EventUserLoginFailed, cred.ID, r.String(), int(r)))
		}
	})
	return true
}

func (a *Authentication) queryUserInfo(user sdk.AccountID) {
	a.auth.QueryUserInfo(user, user, func(r sdk.Result, info sdk.UserInfo) {
		if r != sdk.Success {
			a.log.LogWarning("User info for %s: %s", user, r)
			return
		}
		a.infos[user] = info
		a.bus.Emit(event.NewText(event.EventUserInfoRetrieved, string(user), info.DisplayName))
	})
}

// Logout logs user out
func (a *Authentication) Logout(user sdk.AccountID) bool {
	if user == "" {
		a.log.LogError("Logout: no user logged in")
		return false
	}
	a.auth.Logout(user, func(r sdk.Result) {
		if r != sdk.Success {
			a.log.LogError("Logout of %s failed: %s", user, r)
			return
		}
		delete(a.infos, user)
		a.log.Log("User logged out: %s", user)
		a.bus.Emit(event.NewUser(event.EventUserLoggedOut, string(user)))
	})
	return true
}

// AwaitingMFA reports whether a login waits for an MFA code
func (a *Authentication) AwaitingMFA() bool { return a.pending != nil }

// InFlight reports whether a login request is outstanding
func (a *Authentication) InFlight() bool { return a.inFlight }

// UserInfo returns the retrieved info for user
func (a *Authentication) UserInfo(user sdk.AccountID) (sdk.UserInfo, bool) {
	info, ok := a.infos[user]
	return info, ok
}
