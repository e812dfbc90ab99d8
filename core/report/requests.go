package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eklokova/connect-reports/core/discount"
	"github.com/eklokova/connect-reports/core/fields"
	"github.com/eklokova/connect-reports/core/financials"
	"github.com/eklokova/connect-reports/core/types"
	"github.com/eklokova/connect-reports/internal/logging"
)

// requestHeaders are the approved-requests export columns, in order
var requestHeaders = []string{
	"Request ID", "Assignee", "Connect Subscription ID", "End Customer Subscription ID",
	"Type of Purchase", "Adobe Order #", "Adobe Transfer ID #", "VIP #",
	"Adobe Cloud Program ID", "Pricing SKU Level", "HVD Code",
	"Product Description", "Part Number", "Product Period", "Cumulative Seat",
	"Order Delta", "Reseller ID", "Reseller Name", "End Customer Name",
	"End Customer External ID", "Provider ID", "Provider Name", "Marketplace",
	"Product ID", "Product Name", "Subscription Status", "Anniversary Date",
	"Effective Date", "Creation Date", "Transaction Type", "Adobe User Email",
	"Currency", "Cost", "Reseller Cost", "MSRP", "Connection Type",
	"Exported At", "Commitment", "Commitment Start Date", "Commitment End Date",
	"Recommitment", "Recommitment Start Date", "Recommitment End Date",
	"External Reference ID",
}

// RequestReportHeaders returns the column list of the approved-requests report
func RequestReportHeaders() []string {
	headers := make([]string, len(requestHeaders))
	copy(headers, requestHeaders)
	return headers
}

// RequestInput is the caller-supplied input of a requests report run
type RequestInput struct {
	RequestQuery

	// CommitmentStatus, when set to CommitmentThreeYear, drops requests
	// without a commitment_status parameter
	CommitmentStatus string
}

// RequestReport generates the approved-requests export: one row per
// request line item carrying an order delta.
type RequestReport struct {
	api API
	log *zap.Logger
	now func() time.Time
}

// NewRequestReport creates a requests report generator
func NewRequestReport(api API) *RequestReport {
	return &RequestReport{
		api: api,
		log: logging.With(zap.String("report", "requests")),
		now: time.Now,
	}
}

// Generate runs the report. Rows go to emit; progress advances once per
// request after its items are processed.
func (r *RequestReport) Generate(ctx context.Context, in RequestInput, emit RowFunc, progress ProgressFunc) (*Summary, error) {
	if progress == nil {
		progress = noProgress
	}
	summary := newSummary()
	start := time.Now()
	defer func() { summary.Duration = time.Since(start) }()

	requests, err := r.api.ApprovedRequests(ctx, in.RequestQuery)
	if err != nil {
		return summary, err
	}
	summary.Total = len(requests)
	r.log.Info("starting requests report",
		zap.String("run_id", summary.RunID), zap.Int("requests", summary.Total))

	done := 0
	for i := range requests {
		if err := r.processRequest(ctx, &requests[i], in, emit, summary); err != nil {
			return summary, err
		}
		done++
		progress(done, summary.Total)
	}

	r.log.Info("requests report finished",
		zap.String("run_id", summary.RunID), zap.Int("rows", summary.Rows),
		zap.Int("degraded", summary.Degraded))
	return summary, nil
}

func (r *RequestReport) processRequest(ctx context.Context, request *types.Request, in RequestInput, emit RowFunc, summary *Summary) error {
	asset := &request.Asset
	params := asset.Params

	vipNumber := fields.ParamValueByID(params, "adobe_vip_number")
	orderNumber := fields.ParamValueByID(params, "adobe_order_id")
	transferNumber := fields.ParamValueByID(params, "transfer_id")
	action := fields.ParamValueByID(params, "action_type")
	adobeUserEmail := fields.ParamValueByID(params, "adobe_user_email")
	cloudProgramID := fields.ParamValueByID(params, "adobe_customer_id")
	pricingLevel := discount.Level(fields.ParamValueByID(params, "discount_group"))
	commitment := fields.ParamValueByID(params, "commitment_status")
	commitmentStart := fields.ParamValueByID(params, "commitment_start_date")
	commitmentEnd := fields.ParamValueByID(params, "commitment_end_date")
	recommitment := fields.ParamValueByID(params, "recommitment_status")
	recommitmentStart := fields.ParamValueByID(params, "recommitment_start_date")
	recommitmentEnd := fields.ParamValueByID(params, "recommitment_end_date")
	externalReferenceID := fields.ParamValueByID(params, "external_reference_id")

	hvdCode := ""
	if hint, ok := fields.ParamByID(params, "cb_price_level_hint_final_object"); ok {
		hvdCode = discount.HVDCode(hint)
	}

	// Currency comes from product configuration, not the price list
	configuredCurrency := fields.ParamValueByID(asset.Configuration.Params, "Adobe_Currency")

	index := r.itemFinancials(ctx, asset, summary)
	anniversary := r.anniversaryDate(ctx, asset.ID)

	effectiveDate, err := fields.ConvertDatetime(request.EffectiveDate)
	if err != nil {
		return err
	}
	createdDate, err := fields.ConvertDatetime(request.Created)
	if err != nil {
		return err
	}
	exportedAt := fields.Timestamp(r.now())

	for _, item := range asset.Items {
		delta := deltaString(item)
		if delta == "" {
			continue
		}
		if in.CommitmentStatus == CommitmentThreeYear && (commitment == fields.Missing || commitment == "") {
			summary.Skipped++
			continue
		}

		cost, resellerCost, msrp := unitCells(index, item.GlobalID)
		row := []string{
			orMissing(request.ID),
			orMissing(request.Assignee.ID),
			orMissing(asset.ID),
			orMissing(asset.ExternalID),
			action,
			orderNumber,
			transferNumber,
			vipNumber,
			cloudProgramID,
			pricingLevel,
			hvdCode,
			orMissing(item.DisplayName),
			orMissing(item.MPN),
			orMissing(item.Period),
			orMissing(item.Quantity),
			delta,
			orMissing(asset.Tiers.Tier1.ID),
			orMissing(asset.Tiers.Tier1.Name),
			orMissing(asset.Tiers.Customer.Name),
			orMissing(asset.Tiers.Customer.ExternalID),
			orMissing(asset.Connection.Provider.ID),
			orMissing(asset.Connection.Provider.Name),
			orMissing(request.Marketplace.Name),
			orMissing(asset.Product.ID),
			orMissing(asset.Product.Name),
			orMissing(asset.Status),
			anniversary,
			effectiveDate,
			createdDate,
			orMissing(request.Type),
			adobeUserEmail,
			configuredCurrency,
			cost,
			resellerCost,
			msrp,
			orMissing(asset.Connection.Type),
			exportedAt,
			commitment,
			commitmentStart,
			commitmentEnd,
			recommitment,
			recommitmentStart,
			recommitmentEnd,
			externalReferenceID,
		}
		if err := emit(row); err != nil {
			return err
		}
		summary.Rows++
	}
	return nil
}

// itemFinancials resolves the unit financial index for the request's
// product on its marketplace. Any failure yields an empty index so the
// cost columns degrade to the missing sentinel.
func (r *RequestReport) itemFinancials(ctx context.Context, asset *types.Asset, summary *Summary) financials.ItemFinancials {
	listing, err := r.api.Listing(ctx, asset.Marketplace.ID, asset.Product.ID)
	if err != nil || listing == nil || listing.PriceList == nil {
		if err != nil {
			r.log.Warn("listing lookup failed", zap.String("asset", asset.ID), zap.Error(err))
			summary.Degraded++
		}
		return financials.ItemFinancials{}
	}

	version, err := r.api.ActivePriceListVersion(ctx, listing.PriceList.ID)
	if err != nil || version == nil {
		if err != nil {
			r.log.Warn("price list lookup failed", zap.String("asset", asset.ID), zap.Error(err))
			summary.Degraded++
		}
		return financials.ItemFinancials{}
	}

	points, err := r.api.FilledPoints(ctx, version.ID)
	if err != nil {
		r.log.Warn("price points lookup failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return financials.ItemFinancials{}
	}

	index, err := financials.IndexPoints(points)
	if err != nil {
		r.log.Warn("price point indexing failed", zap.String("asset", asset.ID), zap.Error(err))
		summary.Degraded++
		return financials.ItemFinancials{}
	}
	return index
}

// anniversaryDate fetches the subscription again for its next billing date
func (r *RequestReport) anniversaryDate(ctx context.Context, assetID string) string {
	subscription, err := r.api.Asset(ctx, assetID)
	if err != nil || subscription == nil {
		if err != nil {
			r.log.Warn("subscription lookup failed", zap.String("asset", assetID), zap.Error(err))
		}
		return fields.Missing
	}
	return orMissing(subscription.Billing.NextDate)
}

// unitCells renders the per-item unit financial columns
func unitCells(index financials.ItemFinancials, globalID string) (cost, resellerCost, msrp string) {
	unit, ok := index[globalID]
	if !ok {
		return fields.Missing, fields.Missing, fields.Missing
	}
	return unit.Cost.String(), unit.ResellerCost.String(), unit.MSRP.String()
}

// deltaString renders the order delta of a line item. PPU items and items
// with no quantity movement produce "" and are skipped by the caller.
// Non-numeric quantities fall back to the textual "new - old" form.
func deltaString(item types.Item) string {
	if item.ItemType == "PPU" || (item.Quantity == "0" && item.OldQuantity == "0") {
		return ""
	}

	deltaStr := fields.Missing
	delta := decimal.Zero
	if len(item.Quantity) > 0 && len(item.OldQuantity) > 0 {
		q, errQ := decimal.NewFromString(item.Quantity)
		oq, errOQ := decimal.NewFromString(item.OldQuantity)
		if errQ != nil || errOQ != nil {
			deltaStr = item.Quantity + " - " + item.OldQuantity
		} else {
			delta = q.Sub(oq)
		}
	}
	if deltaStr == fields.Missing && delta.IsPositive() {
		return "+" + delta.String()
	}
	if deltaStr == fields.Missing && delta.IsNegative() {
		return delta.String()
	}
	return deltaStr
}
