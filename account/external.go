package account

import (
	"encoding/hex"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/logging"
	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// ExternalAuth logs in through an auth ticket issued by an external platform
//
// Flow: StartLogin requests a ticket; the matching response is hex-encoded and
// emitted as StartUserLogin; the ticket is cancelled once the login completes
type ExternalAuth struct {
	tickets  sdk.TicketSource
	bus      event.Emitter
	log      logging.Logger
	userInfo func(sdk.AccountID) (sdk.UserInfo, bool)

	handle sdk.Handle
	cancel func()
}

// NewExternalAuth creates the flow; userInfo may be nil
func NewExternalAuth(tickets sdk.TicketSource, bus event.Emitter, userInfo func(sdk.AccountID) (sdk.UserInfo, bool), log logging.Logger) *ExternalAuth {
	if log == nil {
		log = logging.Nop()
	}
	return &ExternalAuth{tickets: tickets, bus: bus, log: log, userInfo: userInfo}
}

// Init subscribes to ticket responses
func (x *ExternalAuth) Init() {
	if x.tickets != nil && x.cancel == nil {
		x.cancel = x.tickets.OnTicketResponse(x.onTicket)
	}
}

// StartLogin requests a ticket; the login starts when it arrives
func (x *ExternalAuth) StartLogin() bool {
	if x.tickets == nil {
		x.log.LogError("External auth is not available.")
		return false
	}
	if x.handle != "" {
		x.log.LogWarning("External auth ticket already requested")
		return false
	}
	h, err := x.tickets.RequestTicket()
	if err != nil {
		x.log.LogError("External auth ticket request failed: %v", err)
		return false
	}
	x.handle = h
	x.log.Log("External auth ticket requested")
	return true
}

func (x *ExternalAuth) onTicket(resp sdk.TicketResponse) {
	if x.handle == "" || resp.Handle != x.handle {
		x.log.LogWarning("Ignoring unexpected session ticket callback (handle %s)", resp.Handle)
		return
	}
	if resp.Result != sdk.Success {
		x.log.LogError("Session ticket request failed: %s", resp.Result)
		x.cleanup()
		return
	}
	token := hex.EncodeToString(resp.Ticket)
	x.log.Log("Session ticket received, %d bytes", len(resp.Ticket))
	x.bus.Emit(event.NewText(event.EventStartUserLogin, "", token, int(event.LoginExternalAuth), int(event.ExternalSteam)))
}

// OnGameEvent releases the ticket once the login resolves
func (x *ExternalAuth) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoggedIn, event.EventUserLoginFailed:
		x.cleanup()
	case event.EventUserInfoRetrieved:
		if x.userInfo == nil {
			return
		}
		if info, ok := x.userInfo(sdk.AccountID(ev.UserID())); ok && info.ExternalDisplayName != "" {
			x.log.Log("External display name: %s", info.ExternalDisplayName)
		}
	}
}

func (x *ExternalAuth) cleanup() {
	if x.handle == "" {
		return
	}
	x.tickets.CancelTicket(x.handle)
	x.handle = ""
}

// Pending reports whether a ticket is outstanding
func (x *ExternalAuth) Pending() bool { return x.handle != "" }

// Shutdown cancels the subscription and any outstanding ticket
func (x *ExternalAuth) Shutdown() {
	x.cleanup()
	if x.cancel != nil {
		x.cancel()
		x.cancel = nil
	}
}
