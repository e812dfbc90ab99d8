// Package currency converts aggregated asset financials into the base
// currency and formats them for report output.
package currency

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eklokova/connect-reports/core/fields"
	"github.com/eklokova/connect-reports/core/financials"
	"github.com/eklokova/connect-reports/internal/logging"
)

// RateSource provides the change rate from a currency into the base
// currency. Implementations may hit a live exchange-rate service.
type RateSource interface {
	// ChangeRate returns how much one unit of currency is worth in base
	ChangeRate(ctx context.Context, currency, base string) (decimal.Decimal, error)
}

// MarketplaceFinancials is one asset's financial block, formatted for
// report output. All monetary fields carry exactly two decimals.
type MarketplaceFinancials struct {
	Currency        string
	Cost            string
	ResellerCost    string
	MSRP            string
	Seats           int
	PurchaseType    financials.PurchaseType
	USDCost         string
	USDResellerCost string
	USDMSRP         string
}

// Empty returns the financial block for an asset without a usable listing
// or price list: every column degrades to the missing sentinel.
func Empty() MarketplaceFinancials {
	return MarketplaceFinancials{
		Currency:        fields.Missing,
		Cost:            fields.Missing,
		ResellerCost:    fields.Missing,
		MSRP:            fields.Missing,
		USDCost:         fields.Missing,
		USDResellerCost: fields.Missing,
		USDMSRP:         fields.Missing,
	}
}

// Zeroed returns the substitute financial block used when the financial
// pipeline fails mid-asset. The monetary columns read "0.0" so a partial
// report still completes with visible gaps.
func Zeroed() MarketplaceFinancials {
	out := Empty()
	out.Cost = "0.0"
	out.ResellerCost = "0.0"
	out.MSRP = "0.0"
	return out
}

// Normalizer converts asset financials into the base currency
type Normalizer struct {
	rates RateSource
	base  string
	log   *zap.Logger
}

// NewNormalizer creates a normalizer converting into baseCurrency
func NewNormalizer(rates RateSource, baseCurrency string) *Normalizer {
	return &Normalizer{
		rates: rates,
		base:  baseCurrency,
		log:   logging.With(zap.String("component", "currency")),
	}
}

// Normalize produces the formatted financial block for one asset. The
// change rate is 1.0 when the price list currency is already the base
// currency; otherwise a single rate fetch is attempted, and any failure
// degrades the rate to zero so the base-currency columns read "0.00"
// instead of failing the asset.
func (n *Normalizer) Normalize(ctx context.Context, fin financials.AssetFinancials, priceListCurrency string) MarketplaceFinancials {
	rate := n.changeRate(ctx, priceListCurrency)
	return MarketplaceFinancials{
		Currency:        priceListCurrency,
		Cost:            fin.Cost.StringFixed(2),
		ResellerCost:    fin.ResellerCost.StringFixed(2),
		MSRP:            fin.MSRP.StringFixed(2),
		Seats:           fin.Seats,
		PurchaseType:    fin.PurchaseType,
		USDCost:         fin.Cost.Mul(rate).StringFixed(2),
		USDResellerCost: fin.ResellerCost.Mul(rate).StringFixed(2),
		USDMSRP:         fin.MSRP.Mul(rate).StringFixed(2),
	}
}

func (n *Normalizer) changeRate(ctx context.Context, currency string) decimal.Decimal {
	if currency == n.base {
		return decimal.NewFromInt(1)
	}
	rate, err := n.rates.ChangeRate(ctx, currency, n.base)
	if err != nil {
		n.log.Warn("rate fetch failed, degrading to zero rate",
			zap.String("currency", currency), zap.Error(err))
		return decimal.Zero
	}
	return rate
}
