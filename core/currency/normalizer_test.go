package currency

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/eklokova/connect-reports/core/financials"
)

// stubRates is a RateSource with a fixed answer
type stubRates struct {
	rate   decimal.Decimal
	err    error
	called int
}

func (s *stubRates) ChangeRate(ctx context.Context, currency, base string) (decimal.Decimal, error) {
	s.called++
	return s.rate, s.err
}

func sampleFinancials() financials.AssetFinancials {
	return financials.AssetFinancials{
		PurchaseType: financials.PurchaseTeam,
		Seats:        5,
		Cost:         decimal.NewFromInt(6),
		ResellerCost: decimal.NewFromInt(2),
		MSRP:         decimal.NewFromInt(4),
	}
}

func TestNormalizeBaseCurrency(t *testing.T) {
	rates := &stubRates{rate: decimal.NewFromFloat(99)}
	n := NewNormalizer(rates, "USD")

	got := n.Normalize(context.Background(), sampleFinancials(), "USD")

	if rates.called != 0 {
		t.Errorf("rate source was called %d times for the base currency", rates.called)
	}
	if got.Currency != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency)
	}
	if got.Cost != "6.00" || got.ResellerCost != "2.00" || got.MSRP != "4.00" {
		t.Errorf("formatted financials = %q/%q/%q, want 6.00/2.00/4.00", got.Cost, got.ResellerCost, got.MSRP)
	}
	if got.USDCost != got.Cost || got.USDResellerCost != got.ResellerCost || got.USDMSRP != got.MSRP {
		t.Error("base-currency normalization must be the identity on monetary columns")
	}
	if got.Seats != 5 || got.PurchaseType != financials.PurchaseTeam {
		t.Errorf("seats/purchase type not carried over: %d/%q", got.Seats, got.PurchaseType)
	}
}

func TestNormalizeForeignCurrency(t *testing.T) {
	rates := &stubRates{rate: decimal.NewFromFloat(1.5)}
	n := NewNormalizer(rates, "USD")

	got := n.Normalize(context.Background(), sampleFinancials(), "EUR")

	if rates.called != 1 {
		t.Errorf("rate source called %d times, want 1", rates.called)
	}
	if got.Currency != "EUR" {
		t.Errorf("currency = %q, want EUR", got.Currency)
	}
	if got.Cost != "6.00" {
		t.Errorf("cost = %q, want original-currency 6.00", got.Cost)
	}
	if got.USDCost != "9.00" || got.USDResellerCost != "3.00" || got.USDMSRP != "6.00" {
		t.Errorf("usd columns = %q/%q/%q, want 9.00/3.00/6.00", got.USDCost, got.USDResellerCost, got.USDMSRP)
	}
}

func TestNormalizeDegradedRateFetch(t *testing.T) {
	rates := &stubRates{err: errors.New("service down")}
	n := NewNormalizer(rates, "USD")

	got := n.Normalize(context.Background(), sampleFinancials(), "EUR")

	if got.Cost != "6.00" {
		t.Errorf("original-currency cost = %q, want 6.00", got.Cost)
	}
	if got.USDCost != "0.00" || got.USDResellerCost != "0.00" || got.USDMSRP != "0.00" {
		t.Errorf("degraded usd columns = %q/%q/%q, want all 0.00", got.USDCost, got.USDResellerCost, got.USDMSRP)
	}
}

func TestPlaceholderBlocks(t *testing.T) {
	empty := Empty()
	if empty.Cost != "-" || empty.Currency != "-" || empty.USDCost != "-" {
		t.Errorf("empty block has unexpected values: %+v", empty)
	}

	zeroed := Zeroed()
	if zeroed.Cost != "0.0" || zeroed.ResellerCost != "0.0" || zeroed.MSRP != "0.0" {
		t.Errorf("zeroed block monetary columns = %q/%q/%q, want 0.0", zeroed.Cost, zeroed.ResellerCost, zeroed.MSRP)
	}
	if zeroed.Currency != "-" || zeroed.USDCost != "-" {
		t.Errorf("zeroed block non-monetary columns should stay missing: %+v", zeroed)
	}
}
