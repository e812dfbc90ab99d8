// Package report implements the report generators: the line-level asset
// export and the approved-requests export. Generators fetch records
// through the API interface, derive financial and date fields, and emit
// one flat row at a time. Per-asset failures degrade to placeholder
// values; only malformed dates and malformed top-level input abort a run.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eklokova/connect-reports/core/fields"
	"github.com/eklokova/connect-reports/core/types"
)

// API is the vendor platform surface the generators consume. It is
// implemented by the connect adapter and by test fakes.
type API interface {
	// Assets lists assets matching the query
	Assets(ctx context.Context, q AssetQuery) ([]types.Asset, error)

	// Asset fetches a single asset by id, nil when absent
	Asset(ctx context.Context, id string) (*types.Asset, error)

	// Listing returns the listed listing for a marketplace/product pair,
	// nil when absent
	Listing(ctx context.Context, marketplaceID, productID string) (*types.Listing, error)

	// ActivePriceListVersion returns the active version of a price list,
	// nil when absent
	ActivePriceListVersion(ctx context.Context, priceListID string) (*types.PriceListVersion, error)

	// FilledPoints lists the filled price points of a version
	FilledPoints(ctx context.Context, versionID string) ([]types.PricePoint, error)

	// ApprovedRequests lists approved requests matching the query,
	// ordered by creation time
	ApprovedRequests(ctx context.Context, q RequestQuery) ([]types.Request, error)
}

// AssetQuery filters the asset collection
type AssetQuery struct {
	// CreatedAfter / CreatedBefore bound the creation event timestamp
	CreatedAfter  string
	CreatedBefore string

	// Products restricts to the given product ids
	Products []string

	// Status restricts to a single status; "all" or "" means any
	Status string
}

// RequestQuery filters the request collection
type RequestQuery struct {
	CreatedAfter  string
	CreatedBefore string

	// ConnectionTypes, Products, Types and Marketplaces restrict the
	// result set when non-empty
	ConnectionTypes []string
	Products        []string
	Types           []string
	Marketplaces    []string
}

// CommitmentThreeYear is the commitment filter value that restricts both
// reports to three-year-commitment subscriptions
const CommitmentThreeYear = "3yc"

// ProgressFunc is invoked once per processed source record with a
// monotonic done counter and the fixed total
type ProgressFunc func(done, total int)

// RowFunc receives one flat report row. Returning an error stops the run.
type RowFunc func(row []string) error

// Summary describes one finished report run
type Summary struct {
	// RunID uniquely identifies the run
	RunID string

	// Total is the number of source records matched
	Total int

	// Rows is the number of rows emitted
	Rows int

	// Skipped counts records dropped by the commitment filter
	Skipped int

	// Degraded counts assets whose financials fell back to placeholders
	Degraded int

	// Duration is the wall-clock run time
	Duration time.Duration
}

func newSummary() *Summary {
	return &Summary{RunID: uuid.NewString()}
}

// noProgress is used when the caller passes a nil progress callback
func noProgress(int, int) {}

// orMissing degrades an empty projected value to the missing sentinel
func orMissing(value string) string {
	if value == "" {
		return fields.Missing
	}
	return value
}
