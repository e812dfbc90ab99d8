// Package financials turns price-list points into per-item unit financials
// and aggregates them over asset line items. All money is decimal; nothing
// here rounds - formatting happens at the currency normalization stage.
package financials

import (
	"github.com/shopspring/decimal"

	"github.com/eklokova/connect-reports/core/types"
	apperrors "github.com/eklokova/connect-reports/internal/errors"
)

// UnitFinancials is the per-item unit pricing extracted from a price point
type UnitFinancials struct {
	Cost         decimal.Decimal
	ResellerCost decimal.Decimal
	MSRP         decimal.Decimal
}

// ItemFinancials maps a catalog item global ID to its unit financials
type ItemFinancials map[string]UnitFinancials

// IndexPoints builds the item financial index from a price list version's
// points. A point whose price is zero produces no entry: an absent entry
// means "no pricing data", not zero pricing. Missing reseller cost (st0p)
// or MSRP (st1p) attributes default to zero. Duplicate item IDs overwrite
// in input order.
func IndexPoints(points []types.PricePoint) (ItemFinancials, error) {
	index := make(ItemFinancials, len(points))
	for _, point := range points {
		price, err := decimal.NewFromString(point.Attributes.Price)
		if err != nil {
			return nil, apperrors.Financial("malformed price point", err).
				WithContext("item", point.Item.GlobalID)
		}
		if price.IsZero() {
			continue
		}

		unit := UnitFinancials{Cost: price}
		if unit.ResellerCost, err = optionalDecimal(point.Attributes.ST0P); err != nil {
			return nil, apperrors.Financial("malformed reseller cost", err).
				WithContext("item", point.Item.GlobalID)
		}
		if unit.MSRP, err = optionalDecimal(point.Attributes.ST1P); err != nil {
			return nil, apperrors.Financial("malformed msrp", err).
				WithContext("item", point.Item.GlobalID)
		}
		index[point.Item.GlobalID] = unit
	}
	return index, nil
}

func optionalDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
