package financials

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eklokova/connect-reports/core/types"
)

// PurchaseType classifies an asset by the kind of items it carries
type PurchaseType string

const (
	// PurchaseUnset means no item has been classified yet
	PurchaseUnset PurchaseType = ""

	// PurchaseTeam is an asset with team items
	PurchaseTeam PurchaseType = "team"

	// PurchaseEnterprise is an asset with Enterprise items
	PurchaseEnterprise PurchaseType = "enterprise"

	// PurchaseBoth is an asset with both team and Enterprise items
	PurchaseBoth PurchaseType = "both"
)

// AssetFinancials are the aggregated totals of one asset. Derived per
// report row, never persisted.
type AssetFinancials struct {
	PurchaseType PurchaseType
	Seats        int
	Cost         decimal.Decimal
	ResellerCost decimal.Decimal
	MSRP         decimal.Decimal
}

// Aggregate combines an asset's line items with the unit financial index.
// Items with a positive quantity add their quantity to the seat count and,
// when the item has an index entry, quantity x unit financials to the
// totals; items without an entry contribute seats only. Items whose
// quantity does not parse as an integer are excluded entirely.
//
// Purchase-type classification runs per item in input order and is not
// commutative: an Enterprise item sets "enterprise" when the type is unset
// and escalates "team" to "both", but any other combination - including a
// non-Enterprise item after "enterprise", and an Enterprise item when the
// type is already "enterprise" or "both" - resets the type to "team".
// TODO: the reset branch looks like an ordering defect inherited from the
// upstream report; confirm intent with the report owners before changing it.
func Aggregate(items []types.Item, index ItemFinancials) AssetFinancials {
	var out AssetFinancials
	for _, item := range items {
		quantity, err := strconv.Atoi(item.Quantity)
		if err != nil {
			continue
		}

		isEnterprise := strings.Contains(item.DisplayName, "Enterprise")
		switch {
		case isEnterprise && out.PurchaseType == PurchaseUnset:
			out.PurchaseType = PurchaseEnterprise
		case isEnterprise && out.PurchaseType == PurchaseTeam:
			out.PurchaseType = PurchaseBoth
		default:
			out.PurchaseType = PurchaseTeam
		}

		if quantity <= 0 {
			continue
		}
		out.Seats += quantity

		unit, ok := index[item.GlobalID]
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(int64(quantity))
		out.Cost = out.Cost.Add(unit.Cost.Mul(qty))
		out.ResellerCost = out.ResellerCost.Add(unit.ResellerCost.Mul(qty))
		out.MSRP = out.MSRP.Add(unit.MSRP.Mul(qty))
	}
	return out
}
