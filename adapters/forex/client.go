// Package forex fetches foreign-exchange rates from a latest-rates
// endpoint. The client itself is strict and returns typed errors; the
// currency normalizer decides how failures degrade.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eklokova/connect-reports/internal/config"
	apperrors "github.com/eklokova/connect-reports/internal/errors"
	"github.com/eklokova/connect-reports/internal/logging"
)

// Client calls the exchange-rate service
type Client struct {
	httpClient *http.Client
	url        string
	log        *zap.Logger
}

// New creates a forex client from configuration
func New(cfg config.ForexConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		url:        cfg.URL,
		log:        logging.With(zap.String("component", "forex")),
	}
}

// ratesResponse is the latest-rates body: {"rates": {"USD": 1.08, ...}}
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// ChangeRate performs a single GET against the latest-rates endpoint and
// returns the rate from currency into base. Non-200 responses, transport
// failures and a missing base entry are all external-service errors.
func (c *Client) ChangeRate(ctx context.Context, currency, base string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, apperrors.Internal("building rate request", err)
	}
	query := url.Values{}
	query.Set("base", currency)
	query.Set("symbols", base)
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, apperrors.ExternalService("exchange rate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, apperrors.ExternalService("exchange rate",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, apperrors.ExternalService("exchange rate", err)
	}

	rate, ok := body.Rates[base]
	if !ok {
		return decimal.Zero, apperrors.ExternalService("exchange rate",
			fmt.Errorf("no rate for %s", base))
	}

	c.log.Debug("fetched change rate",
		zap.String("currency", currency), zap.String("base", base), zap.Float64("rate", rate))
	return decimal.NewFromFloat(rate), nil
}
