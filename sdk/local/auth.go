package local

import (
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

type authAPI struct{ b *Backend }

func (a *authAPI) Login(cred sdk.Credentials, cb func(sdk.Result, sdk.AccountID)) {
	b := a.b
	login := cred.ID
	if cred.Type == sdk.CredentialExternal {
		login = externalLogin(cred)
	}
	b.request(sdk.OpLogin, "", []string{login}, func(r sdk.Result) {
		b.mu.Lock()
		var id sdk.AccountID
		if r == sdk.Success {
			r, id = b.login(cred, login)
		}
		b.mu.Unlock()
		cb(r, id)
	})
}

// login validates cred; b.mu must be held
func (b *Backend) login(cred sdk.Credentials, login string) (sdk.Result, sdk.AccountID) {
	if login == "" || cred.Token == "" {
		return sdk.InvalidAuth, ""
	}
	if code, ok := b.mfa[cred.ID]; ok && cred.Type != sdk.CredentialExternal {
		switch cred.MFACode {
		case "":
			return sdk.AuthMFARequired, ""
		case code:
		default:
			return sdk.InvalidAuth, ""
		}
	}
	id := AccountFor(login)
	b.accounts[id] = account{id: id, login: login, external: cred.External, loggedIn: true}
	return sdk.Success, id
}

func (a *authAPI) Logout(user sdk.AccountID, cb func(sdk.Result)) {
	b := a.b
	b.request(sdk.OpLogout, user, nil, func(r sdk.Result) {
		b.mu.Lock()
		if r == sdk.Success {
			if acc, ok := b.accounts[user]; ok && acc.loggedIn {
				acc.loggedIn = false
				b.accounts[user] = acc
			} else {
				r = sdk.InvalidUser
			}
		}
		b.mu.Unlock()
		cb(r)
	})
}

func (a *authAPI) QueryUserInfo(local, target sdk.AccountID, cb func(sdk.Result, sdk.UserInfo)) {
	b := a.b
	b.request(sdk.OpUserInfo, local, []string{string(target)}, func(r sdk.Result) {
		b.mu.Lock()
		var info sdk.UserInfo
		if r == sdk.Success {
			acc, ok := b.accounts[target]
			switch {
			case !b.loggedIn(local):
				r = sdk.InvalidUser
			case !ok:
				r = sdk.NotFound
			default:
				info = sdk.UserInfo{UserID: acc.id, DisplayName: acc.login}
				if acc.external != sdk.ExternalNone {
					info.ExternalDisplayName = acc.external.String() + " " + acc.login
				}
			}
		}
		b.mu.Unlock()
		cb(r, info)
	})
}

// externalLogin derives a login id from the first bytes of the ticket
func externalLogin(cred sdk.Credentials) string {
	if cred.Token == "" {
		return ""
	}
	prefix := cred.Token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "ext-" + prefix
}
