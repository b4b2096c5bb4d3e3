package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/gamesvc-samples/event"
	"github.com/lixenwraith/gamesvc-samples/sdk"
	"github.com/lixenwraith/gamesvc-samples/ui"
	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// CheckoutButtonWidth is the width of the per-offer Checkout button
const CheckoutButtonWidth = 10

// FormatPrice renders a price in minor units, e.g. 299 USD as "2.99 USD"
func FormatPrice(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, currency)
}

// OfferInfoWidget is one catalog row: offer title and price plus a Checkout button
type OfferInfoWidget struct {
	*ui.Dialog
	offer  sdk.Offer
	owned  int
	name   *ui.Label
	button *ui.Button
	bus    event.Emitter
}

// NewOfferInfoWidget creates a row for offer; Checkout posts a checkout request on bus
func NewOfferInfoWidget(offer sdk.Offer, owned int, bus event.Emitter) *OfferInfoWidget {
	w := &OfferInfoWidget{
		Dialog: ui.NewDialog(vmath.Vec2{}, vmath.V2(40, 1), SampleLayer-2, ""),
		bus:    bus,
	}
	w.Background = false

	w.name = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, SampleLayer-3, "")
	w.button = ui.NewButton(vmath.Vec2{}, vmath.Vec2{}, SampleLayer-3, "Checkout")
	w.button.SetOnPressed(func() {
		if w.bus != nil {
			w.bus.Emit(event.NewText(event.EventCheckoutRequested, "", w.offer.ID))
		}
	})
	w.AddWidget(w.name)
	w.AddWidget(w.button)
	w.SetOnLayout(w.layout)
	w.SetOfferData(offer, owned)
	return w
}

func (w *OfferInfoWidget) layout() {
	pos, size := w.Position(), w.Size()
	bw := min(float64(CheckoutButtonWidth), size.X)
	w.name.SetPosition(pos)
	w.name.SetSize(vmath.V2(max(size.X-bw-1, 0), 1))
	w.button.SetPosition(vmath.V2(pos.X+size.X-bw, pos.Y))
	w.button.SetSize(vmath.V2(bw, 1))
}

// SetOfferData replaces the displayed offer
// Checkout is disabled when the price is unknown or the purchase limit is reached
func (w *OfferInfoWidget) SetOfferData(offer sdk.Offer, owned int) {
	w.offer = offer
	w.owned = owned

	var b strings.Builder
	b.WriteString(offer.Title)
	if offer.PriceValid {
		b.WriteString("  ")
		b.WriteString(FormatPrice(offer.CurrentPrice, offer.Currency))
		if offer.OriginalPrice > offer.CurrentPrice {
			fmt.Fprintf(&b, " (was %s)", FormatPrice(offer.OriginalPrice, offer.Currency))
		}
	} else {
		b.WriteString("  price unavailable")
	}
	if owned > 0 {
		fmt.Fprintf(&b, "  owned %d", owned)
	}
	w.name.SetText(b.String())

	if !offer.PriceValid || (offer.PurchaseLimit > 0 && owned >= offer.PurchaseLimit) {
		w.button.Disable()
	} else {
		w.button.Enable()
	}
}

// Offer returns the displayed offer
func (w *OfferInfoWidget) Offer() sdk.Offer { return w.offer }

// Button returns the Checkout button
func (w *OfferInfoWidget) Button() *ui.Button { return w.button }

// Text returns the label line
func (w *OfferInfoWidget) Text() string { return w.name.Text }

// OfferListWidget lists catalog offers with a text filter and the user's entitlements
type OfferListWidget struct {
	*ui.Dialog
	bus          event.Emitter
	user         *ui.Label
	filter       *ui.TextField
	list         *ui.List
	entitlements *ui.Label
	bottomOffset float64
	lastFilter   string
}

// NewOfferListWidget creates an empty offer list
func NewOfferListWidget(bus event.Emitter) *OfferListWidget {
	w := &OfferListWidget{
		Dialog:       ui.NewDialog(vmath.Vec2{}, vmath.V2(40, 20), SampleLayer-1, "Catalog"),
		bus:          bus,
		bottomOffset: 3,
	}
	layer := SampleLayer - 2
	w.user = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, layer, "No user logged in")
	w.user.Style = ui.DefaultTheme.Hint
	w.filter = ui.NewTextField(vmath.Vec2{}, vmath.Vec2{}, layer, "Filter: ")
	w.filter.Placeholder = "click to search"
	w.filter.SetOnSubmit(func(text string) {
		w.filter.SetValue(text)
		w.applyFilter()
	})
	w.list = ui.NewList(vmath.Vec2{}, vmath.Vec2{}, layer)
	w.entitlements = ui.NewLabel(vmath.Vec2{}, vmath.Vec2{}, layer, "")

	w.AddWidget(w.user)
	w.AddWidget(w.filter)
	w.AddWidget(w.list)
	w.AddWidget(w.entitlements)
	w.SetOnLayout(w.layout)
	return w
}

func (w *OfferListWidget) layout() {
	inner := w.Inner()
	x, y, width := inner.Pos.X, inner.Pos.Y, inner.Size.X
	w.user.SetPosition(vmath.V2(x, y))
	w.user.SetSize(vmath.V2(width, 1))
	w.filter.SetPosition(vmath.V2(x, y+1))
	w.filter.SetSize(vmath.V2(width, 1))
	listH := max(inner.Size.Y-2-w.bottomOffset, 0)
	w.list.SetPosition(vmath.V2(x, y+2))
	w.list.SetSize(vmath.V2(width, listH))
	w.entitlements.SetPosition(vmath.V2(x, y+2+listH))
	w.entitlements.SetSize(vmath.V2(width, w.bottomOffset))
}

// SetBottomOffset reserves rows under the list for the entitlement summary
func (w *OfferListWidget) SetBottomOffset(rows float64) {
	w.bottomOffset = rows
	if rows == 0 {
		w.entitlements.Hide()
	} else {
		w.entitlements.Show()
	}
	w.layout()
}

// SetUser shows whose catalog is displayed
func (w *OfferListWidget) SetUser(user sdk.AccountID) {
	if user == "" {
		w.user.SetText("No user logged in")
		return
	}
	w.user.SetText("User: " + string(user))
}

// RefreshOfferData replaces every row; owned reports entitlement counts per offer
func (w *OfferListWidget) RefreshOfferData(offers []sdk.Offer, owned func(offerID string) int) {
	w.list.Clear()
	for _, o := range offers {
		n := 0
		if owned != nil {
			n = owned(o.ID)
		}
		w.list.AddRow(o.Title, NewOfferInfoWidget(o, n, w.bus))
	}
	w.list.SetFilter(w.lastFilter)
	w.layout()
}

// SetEntitlements shows the owned item names
func (w *OfferListWidget) SetEntitlements(ents []sdk.Entitlement) {
	if len(ents) == 0 {
		w.entitlements.SetText("")
		return
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name)
	}
	w.entitlements.SetText("Owned: " + strings.Join(names, ", "))
}

// SetOfferInfoVisible shows or hides the offer rows
func (w *OfferListWidget) SetOfferInfoVisible(visible bool) {
	if visible {
		w.list.Show()
	} else {
		w.list.Hide()
	}
}

// OfferInfoVisible reports whether offer rows are shown
func (w *OfferListWidget) OfferInfoVisible() bool { return w.list.Visible() }

// ClearFilter empties the filter field and shows every row
func (w *OfferListWidget) ClearFilter() {
	w.filter.Clear()
	w.applyFilter()
}

// Reset returns the list to its unscrolled, unselected state, keeping the filter
func (w *OfferListWidget) Reset() {
	w.list.Reset()
	w.list.SetFilter(w.lastFilter)
}

func (w *OfferListWidget) applyFilter() {
	w.lastFilter = w.filter.Value()
	w.list.SetFilter(w.lastFilter)
	w.layout()
}

// Rows returns the offer rows in catalog order
func (w *OfferListWidget) Rows() []*OfferInfoWidget {
	rows := w.list.Rows()
	out := make([]*OfferInfoWidget, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Widget.(*OfferInfoWidget))
	}
	return out
}

// List returns the row list
func (w *OfferListWidget) List() *ui.List { return w.list }

// Filter returns the filter field
func (w *OfferListWidget) Filter() *ui.TextField { return w.filter }

// Update applies the filter as it is typed; a hidden list is left alone
func (w *OfferListWidget) Update(dt time.Duration) {
	if !w.Visible() {
		return
	}
	if v := w.filter.Value(); v != w.lastFilter {
		w.applyFilter()
	}
	w.Dialog.Update(dt)
}

// StoreDialog is the store sample dialog: the offer list for the current user
type StoreDialog struct {
	*ui.Dialog
	store   Catalog
	players PlayerCount
	offers  *OfferListWidget
}

// NewStoreDialog creates the store dialog reading from store
func NewStoreDialog(store Catalog, players PlayerCount, bus event.Emitter) *StoreDialog {
	d := &StoreDialog{
		Dialog:  ui.NewDialog(vmath.Vec2{}, vmath.V2(40, 20), SampleLayer, ""),
		store:   store,
		players: players,
		offers:  NewOfferListWidget(bus),
	}
	d.Background = false
	d.AddWidget(d.offers)
	d.SetOnLayout(func() {
		d.offers.SetPosition(d.Position())
		d.offers.SetSize(d.Size())
	})
	d.SetOfferInfoVisible(false)
	return d
}

// Offers returns the offer list widget
func (d *StoreDialog) Offers() *OfferListWidget { return d.offers }

// SetOfferInfoVisible shows or hides offer rows
func (d *StoreDialog) SetOfferInfoVisible(visible bool) {
	d.offers.SetOfferInfoVisible(visible)
}

// Reset shows the offer rows and resets the list view
func (d *StoreDialog) Reset() {
	d.offers.SetOfferInfoVisible(true)
	d.offers.Reset()
}

// Clear drops every row and the filter
func (d *StoreDialog) Clear() {
	d.offers.RefreshOfferData(nil, nil)
	d.offers.SetEntitlements(nil)
	d.offers.ClearFilter()
	d.offers.Reset()
}

func (d *StoreDialog) refresh() {
	d.offers.SetUser(d.store.User())
	d.offers.RefreshOfferData(d.store.Offers(), d.store.Owned)
	d.offers.SetEntitlements(d.store.Entitlements())
}

func (d *StoreDialog) OnGameEvent(ev event.Event) {
	switch ev.Type() {
	case event.EventUserLoggedIn:
		d.SetOfferInfoVisible(true)
		d.offers.SetUser(d.store.User())
	case event.EventUserLoginRequiresMFA:
		d.SetOfferInfoVisible(false)
		d.SetFocused(false)
	case event.EventUserLoginEnteredMFA:
		d.SetOfferInfoVisible(true)
	case event.EventUserLoggedOut:
		if d.players == nil || d.players.Num() == 0 {
			d.Clear()
			d.SetOfferInfoVisible(false)
			d.offers.SetUser("")
		}
	case event.EventShowPrevUser, event.EventShowNextUser, event.EventCancelLogin:
		d.Clear()
		d.Reset()
		d.offers.SetUser(d.store.User())
	case event.EventNewUserLogin:
		d.SetOfferInfoVisible(false)
		d.Clear()
	case event.EventCatalogUpdated, event.EventEntitlementsUpdated:
		if sdk.AccountID(ev.UserID()) == d.store.User() {
			d.refresh()
		}
	}
}
