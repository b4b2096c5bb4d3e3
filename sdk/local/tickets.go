package local

import (
	"crypto/sha256"
	"errors"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

// TicketSize is the byte length of issued tickets
const TicketSize = 32

// ErrNotInitialized is returned by synchronous calls on a released backend
var ErrNotInitialized = errors.New("local: platform not initialized")

type ticketAPI struct{ b *Backend }

func (t *ticketAPI) RequestTicket() (sdk.Handle, error) {
	b := t.b
	if !b.IsInitialized() {
		return "", ErrNotInitialized
	}
	h := sdk.Handle(uuid.NewString())
	b.mu.Lock()
	b.tickets[h] = true
	b.mu.Unlock()

	b.request(sdk.OpTicket, "", []string{string(h)}, func(r sdk.Result) {
		resp := sdk.TicketResponse{Handle: h, Result: r}
		if r == sdk.Success {
			sum := sha256.Sum256([]byte(h))
			resp.Ticket = sum[:TicketSize]
		}
		b.ticketSubs.Notify(resp)
	})
	return h, nil
}

func (t *ticketAPI) CancelTicket(h sdk.Handle) {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()
	delete(t.b.tickets, h)
}

func (t *ticketAPI) OnTicketResponse(fn func(sdk.TicketResponse)) func() {
	return t.b.ticketSubs.Add(fn)
}

// ActiveTickets returns how many issued tickets have not been cancelled
func (b *Backend) ActiveTickets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tickets)
}

// PushTicketResponse delivers resp to every ticket subscriber on the next Tick
func (b *Backend) PushTicketResponse(resp sdk.TicketResponse) {
	b.completions.Defer(func() { b.ticketSubs.Notify(resp) })
}
