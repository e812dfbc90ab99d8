package types

// Listing is a product listing on a marketplace. The price list reference
// is optional: a listed product without pricing yields no financials.
type Listing struct {
	ID          string        `json:"id"`
	Status      string        `json:"status"`
	Marketplace Marketplace   `json:"marketplace"`
	Product     Product       `json:"product"`
	PriceList   *PriceListRef `json:"pricelist,omitempty"`
}

// PriceListRef points at a price list from a listing
type PriceListRef struct {
	ID string `json:"id"`
}

// PriceListVersion is one published version of a price list
type PriceListVersion struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	PriceList PriceList `json:"pricelist"`
}

// PriceList carries the price list identity and its currency
type PriceList struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

// PricePoint is a per-item price entry of a price list version.
// Monetary attributes arrive as strings and are parsed with decimals
// downstream; st0p (reseller cost) and st1p (MSRP) may be absent.
type PricePoint struct {
	Item       ItemRef         `json:"item"`
	Status     string          `json:"status"`
	Attributes PointAttributes `json:"attributes"`
}

// ItemRef links a price point to a catalog item
type ItemRef struct {
	GlobalID string `json:"global_id"`
}

// PointAttributes holds the monetary attributes of a price point
type PointAttributes struct {
	Price string `json:"price"`
	ST0P  string `json:"st0p,omitempty"`
	ST1P  string `json:"st1p,omitempty"`
}
