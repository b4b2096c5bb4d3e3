package local

import "github.com/lixenwraith/gamesvc-samples/sdk"

// DefaultCatalog is the store catalog served when Options.Catalog is nil
func DefaultCatalog() []sdk.Offer {
	return []sdk.Offer{
		{
			ID: "offer-sword", Title: "Iron Sword", Description: "A dependable blade.",
			Currency: "USD", CurrentPrice: 299, OriginalPrice: 499, PriceValid: true, PurchaseLimit: 1,
		},
		{
			ID: "offer-shield", Title: "Oak Shield", Description: "Blocks most things.",
			Currency: "USD", CurrentPrice: 199, OriginalPrice: 199, PriceValid: true, PurchaseLimit: 1,
		},
		{
			ID: "offer-gems", Title: "100 Gems", Description: "Spend them anywhere.",
			Currency: "USD", CurrentPrice: 99, OriginalPrice: 99, PriceValid: true,
		},
		{
			ID: "offer-season", Title: "Season Pass", Description: "Available soon.",
			Currency: "USD", CurrentPrice: 999, OriginalPrice: 999, PriceValid: false, PurchaseLimit: 1,
		},
	}
}
