package report

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eklokova/connect-reports/core/currency"
	"github.com/eklokova/connect-reports/core/dates"
	"github.com/eklokova/connect-reports/core/discount"
	"github.com/eklokova/connect-reports/core/fields"
	"github.com/eklokova/connect-reports/core/financials"
	"github.com/eklokova/connect-reports/core/types"
	"github.com/eklokova/connect-reports/internal/logging"
)

// assetHeaders are the asset projection columns, resolved via fields.HeaderValue
var assetHeaders = []string{
	"id", "status", "external_id", "product-id", "provider-id", "provider-name",
	"marketplace-id", "marketplace-name", "contract-id", "contract-name",
	"reseller-id", "reseller-external_id", "reseller-name", "created-at",
	"customer-id", "customer-external_id", "customer-name",
}

// assetParamHeaders are the subscription parameters projected by name
var assetParamHeaders = []string{
	"external_reference_id", "seamless_move", "discount_group", "action_type",
	"renewal_date", "purchase_type", "adobe_customer_id", "adobe_vip_number",
	"adobe_user_email", "commitment_status", "commitment_start_date",
	"commitment_end_date", "recommitment_status", "recommitment_start_date",
	"recommitment_end_date",
}

// marketplaceHeaders are the derived financial columns
var marketplaceHeaders = []string{
	"currency", "cost", "reseller_cost", "msrp", "seats",
	"USD-cost", "USD-msrp", "USD-reseller_cost",
}

// itemHeaders are the per-line-item columns appended to each row
var itemHeaders = []string{
	"item-id", "item-mpn", "item-display_name", "item-item_type", "item-quantity",
}

// AssetReportHeaders returns the full column list of the line-level asset
// report, in emission order.
func AssetReportHeaders() []string {
	headers := make([]string, 0, len(assetHeaders)+len(assetParamHeaders)+1+len(marketplaceHeaders)+len(itemHeaders))
	headers = append(headers, assetHeaders...)
	headers = append(headers, assetParamHeaders...)
	headers = append(headers, "hvd_code")
	headers = append(headers, marketplaceHeaders...)
	headers = append(headers, itemHeaders...)
	return headers
}

// AssetInput is the caller-supplied input of an asset report run
type AssetInput struct {
	AssetQuery

	// CommitmentStatus, when set to CommitmentThreeYear, drops assets
	// without a commitment_status parameter
	CommitmentStatus string
}

// AssetReport generates the line-level asset export: one row per asset
// line item, or one row for itemless assets.
type AssetReport struct {
	api        API
	normalizer *currency.Normalizer
	log        *zap.Logger
	now        func() time.Time
}

// NewAssetReport creates an asset report generator
func NewAssetReport(api API, normalizer *currency.Normalizer) *AssetReport {
	return &AssetReport{
		api:        api,
		normalizer: normalizer,
		log:        logging.With(zap.String("report", "assets")),
		now:        time.Now,
	}
}

// Generate runs the report. Rows go to emit; progress is invoked once per
// asset regardless of how that asset's sub-computations fared.
func (r *AssetReport) Generate(ctx context.Context, in AssetInput, emit RowFunc, progress ProgressFunc) (*Summary, error) {
	if progress == nil {
		progress = noProgress
	}
	summary := newSummary()
	start := time.Now()
	defer func() { summary.Duration = time.Since(start) }()

	assets, err := r.api.Assets(ctx, in.AssetQuery)
	if err != nil {
		return summary, err
	}
	summary.Total = len(assets)
	r.log.Info("starting asset report",
		zap.String("run_id", summary.RunID), zap.Int("assets", summary.Total))

	if len(assets) == 0 {
		if err := emit([]string{"EMPTY ASSETS"}); err != nil {
			return summary, err
		}
		summary.Rows++
		return summary, nil
	}

	done := 0
	for i := range assets {
		asset := &assets[i]

		if in.CommitmentStatus == CommitmentThreeYear {
			commitment := fields.ParamValueByName(asset.Params, "commitment_status")
			if commitment == fields.Missing || commitment == "" {
				r.log.Debug("skipping asset without commitment status", zap.String("asset", asset.ID))
				summary.Skipped++
				done++
				progress(done, summary.Total)
				continue
			}
		}

		line, err := r.assetLine(ctx, asset, summary)
		if err != nil {
			return summary, err
		}

		if len(asset.Items) == 0 {
			if err := emit(append(line, fields.Missing, fields.Missing, fields.Missing, fields.Missing, fields.Missing)); err != nil {
				return summary, err
			}
			summary.Rows++
		} else {
			for _, item := range asset.Items {
				row := make([]string, 0, len(line)+len(itemHeaders))
				row = append(row, line...)
				row = append(row, item.ID, item.MPN, item.DisplayName, item.ItemType, item.Quantity)
				if err := emit(row); err != nil {
					return summary, err
				}
				summary.Rows++
			}
		}

		done++
		progress(done, summary.Total)
	}

	r.log.Info("asset report finished",
		zap.String("run_id", summary.RunID), zap.Int("rows", summary.Rows),
		zap.Int("skipped", summary.Skipped), zap.Int("degraded", summary.Degraded))
	return summary, nil
}

// assetLine builds the per-asset part of a row: header projection,
// parameter projection and the derived financial block.
func (r *AssetReport) assetLine(ctx context.Context, asset *types.Asset, summary *Summary) ([]string, error) {
	values := fields.ProcessHeaders(asset, assetHeaders)

	params, hvdCode := projectAssetParams(asset.Params)

	if params["renewal_date"] == "" || params["renewal_date"] == fields.Missing {
		creation, err := dates.ParseCreation(asset.Events.Created.At)
		if err != nil {
			return nil, err
		}
		params["renewal_date"] = dates.Format(dates.Renewal(creation, r.now()))
	}

	marketplace, computed := r.marketplaceFinancials(ctx, asset, summary)
	if computed {
		// The derived classification replaces the raw purchase_type
		// parameter, matching the upstream report's column semantics.
		params["purchase_type"] = orMissing(string(marketplace.PurchaseType))
	}

	for _, header := range assetParamHeaders {
		values = append(values, orMissing(params[header]))
	}
	values = append(values, orMissing(hvdCode))
	values = append(values, marketplaceCells(marketplace, computed)...)
	return values, nil
}

// projectAssetParams maps parameter names to report values, translating
// the discount group into its pricing tier and pulling the HVD code out of
// the structured price-level hint.
func projectAssetParams(params []types.Param) (map[string]string, string) {
	known := make(map[string]bool, len(assetParamHeaders))
	for _, h := range assetParamHeaders {
		known[h] = true
	}

	values := make(map[string]string, len(params))
	hvdCode := ""
	for _, p := range params {
		switch {
		case p.Name == "discount_group":
			values[p.Name] = discount.Level(p.Value)
		case p.Name == "cb_price_level_hint_final_object" && p.StructuredValue != nil:
			hvdCode = discount.HVDCode(p)
		case known[p.Name]:
			values[p.Name] = p.Value
		}
	}
	return values, hvdCode
}

// marketplaceCells renders the financial block in marketplaceHeaders order
func marketplaceCells(m currency.MarketplaceFinancials, computed bool) []string {
	seats := fields.Missing
	if computed {
		seats = strconv.Itoa(m.Seats)
	}
	return []string{
		m.Currency, m.Cost, m.ResellerCost, m.MSRP, seats,
		m.USDCost, m.USDMSRP, m.USDResellerCost,
	}
}

// marketplaceFinancials resolves listing, price list version and points
// for one asset and derives the financial block. Absent pricing yields the
// all-missing block; a failure anywhere in the pipeline yields the zeroed
// block and the report keeps going.
func (r *AssetReport) marketplaceFinancials(ctx context.Context, asset *types.Asset, summary *Summary) (currency.MarketplaceFinancials, bool) {
	listing, err := r.api.Listing(ctx, asset.Marketplace.ID, asset.Product.ID)
	if err != nil {
		r.log.Warn("listing lookup failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return currency.Zeroed(), false
	}
	if listing == nil || listing.PriceList == nil {
		return currency.Empty(), false
	}

	version, err := r.api.ActivePriceListVersion(ctx, listing.PriceList.ID)
	if err != nil {
		r.log.Warn("price list lookup failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return currency.Zeroed(), false
	}
	if version == nil {
		return currency.Empty(), false
	}

	points, err := r.api.FilledPoints(ctx, version.ID)
	if err != nil {
		r.log.Warn("price points lookup failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return currency.Zeroed(), false
	}
	if len(points) == 0 {
		return currency.Empty(), false
	}

	index, err := financials.IndexPoints(points)
	if err != nil {
		r.log.Warn("price point indexing failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return currency.Zeroed(), false
	}

	aggregated := financials.Aggregate(asset.Items, index)
	return r.normalizer.Normalize(ctx, aggregated, version.PriceList.Currency), true
}
