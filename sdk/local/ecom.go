package local

import (
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/gamesvc-samples/sdk"
)

type ecomAPI struct{ b *Backend }

func (e *ecomAPI) QueryOffers(user sdk.AccountID, cb func(sdk.Result, []sdk.Offer)) {
	b := e.b
	b.request(sdk.OpOffers, user, nil, func(r sdk.Result) {
		b.mu.Lock()
		var offers []sdk.Offer
		if r == sdk.Success {
			if b.loggedIn(user) {
				offers = slices.Clone(b.catalog)
			} else {
				r = sdk.InvalidUser
			}
		}
		b.mu.Unlock()
		cb(r, offers)
	})
}

func (e *ecomAPI) QueryEntitlements(user sdk.AccountID, cb func(sdk.Result, []sdk.Entitlement)) {
	b := e.b
	b.request(sdk.OpEntitlements, user, nil, func(r sdk.Result) {
		b.mu.Lock()
		var ents []sdk.Entitlement
		if r == sdk.Success {
			if b.loggedIn(user) {
				ents = slices.Clone(b.entitlements[user])
			} else {
				r = sdk.InvalidUser
			}
		}
		b.mu.Unlock()
		cb(r, ents)
	})
}

func (e *ecomAPI) Checkout(user sdk.AccountID, offerIDs []string, cb func(sdk.Result, string)) {
	b := e.b
	b.request(sdk.OpCheckout, user, slices.Clone(offerIDs), func(r sdk.Result) {
		b.mu.Lock()
		var txn string
		if r == sdk.Success {
			r = b.checkout(user, offerIDs)
			if r == sdk.Success {
				txn = uuid.NewString()
			}
		}
		b.mu.Unlock()
		cb(r, txn)
	})
}

// checkout grants one entitlement per offer; b.mu must be held
func (b *Backend) checkout(user sdk.AccountID, offerIDs []string) sdk.Result {
	if !b.loggedIn(user) {
		return sdk.InvalidUser
	}
	if len(offerIDs) == 0 {
		return sdk.InvalidParameters
	}
	grant := make([]sdk.Offer, 0, len(offerIDs))
	for _, id := range offerIDs {
		i := slices.IndexFunc(b.catalog, func(o sdk.Offer) bool { return o.ID == id })
		if i < 0 {
			return sdk.NotFound
		}
		offer := b.catalog[i]
		if !offer.PriceValid {
			return sdk.InvalidParameters
		}
		if offer.PurchaseLimit > 0 && b.owned(user, offer.ID) >= offer.PurchaseLimit {
			return sdk.LimitExceeded
		}
		grant = append(grant, offer)
	}
	for _, offer := range grant {
		b.entitlements[user] = append(b.entitlements[user], sdk.Entitlement{
			ID:            uuid.NewString(),
			Name:          offer.Title,
			CatalogItemID: offer.ID,
		})
	}
	return sdk.Success
}

func (b *Backend) owned(user sdk.AccountID, offerID string) int {
	n := 0
	for _, ent := range b.entitlements[user] {
		if ent.CatalogItemID == offerID {
			n++
		}
	}
	return n
}
