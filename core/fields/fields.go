// Package fields resolves report header paths and parameter lookups against
// platform records. Every function here is total: a missing field, an
// unknown path or an exhausted parameter list yields the Missing sentinel
// instead of an error, so one sparse record never aborts a report.
package fields

import (
	"strings"
	"time"

	"github.com/eklokova/connect-reports/core/types"
)

// Missing is the sentinel emitted for any value that cannot be resolved
const Missing = "-"

// datetimeLayout is the exported timestamp format used in report cells
const datetimeLayout = "2006-01-02 15:04:05"

// ParamValueByID scans params for the given id. First match wins; the
// sentinel is returned on exhaustion.
func ParamValueByID(params []types.Param, id string) string {
	for _, p := range params {
		if p.ID == id {
			return p.Value
		}
	}
	return Missing
}

// ParamValueByName scans params for the given name. First match wins; the
// sentinel is returned on exhaustion.
func ParamValueByName(params []types.Param, name string) string {
	for _, p := range params {
		if p.Name == name {
			return p.Value
		}
	}
	return Missing
}

// ParamByID returns the first param with the given id
func ParamByID(params []types.Param, id string) (types.Param, bool) {
	for _, p := range params {
		if p.ID == id {
			return p, true
		}
	}
	return types.Param{}, false
}

// HeaderValue resolves a hyphenated header path against an asset, e.g.
// "product-id" reads asset.product.id. A few prefixes are special-cased:
// "created" reads the creation event, "provider" reads the connection
// provider and "customer"/"reseller" read the corresponding tier.
func HeaderValue(a *types.Asset, header string) string {
	h0, h1, found := strings.Cut(header, "-")
	if !found {
		return topLevelValue(a, header)
	}

	switch h0 {
	case "created":
		if h1 == "at" {
			return a.Events.Created.At
		}
	case "provider":
		return pairValue(a.Connection.Provider.ID, a.Connection.Provider.Name, h1)
	case "customer":
		return tierValue(a.Tiers.Customer, h1)
	case "reseller":
		return tierValue(a.Tiers.Tier1, h1)
	case "product":
		return pairValue(a.Product.ID, a.Product.Name, h1)
	case "marketplace":
		return pairValue(a.Marketplace.ID, a.Marketplace.Name, h1)
	case "contract":
		return pairValue(a.Contract.ID, a.Contract.Name, h1)
	}
	return Missing
}

func topLevelValue(a *types.Asset, header string) string {
	switch header {
	case "id":
		return a.ID
	case "status":
		return a.Status
	case "external_id":
		return a.ExternalID
	}
	return Missing
}

func pairValue(id, name, field string) string {
	switch field {
	case "id":
		return id
	case "name":
		return name
	}
	return Missing
}

func tierValue(t types.Tier, field string) string {
	switch field {
	case "id":
		return t.ID
	case "external_id":
		return t.ExternalID
	case "name":
		return t.Name
	}
	return Missing
}

// ProcessHeaders projects an asset onto a header list, one value per header
// in input order.
func ProcessHeaders(a *types.Asset, headers []string) []string {
	values := make([]string, len(headers))
	for i, h := range headers {
		values[i] = HeaderValue(a, h)
	}
	return values
}

// ConvertDatetime sanitizes a platform timestamp for report output.
// Empty or already-missing input maps to the sentinel; a malformed
// timestamp is a hard parse failure per the propagation policy.
func ConvertDatetime(value string) (string, error) {
	if value == "" || value == Missing {
		return Missing, nil
	}
	normalized := strings.TrimSuffix(strings.Replace(value, "T", " ", 1), "+00:00")
	t, err := time.Parse(datetimeLayout, normalized)
	if err != nil {
		return "", err
	}
	return t.Format(datetimeLayout), nil
}

// Timestamp formats a wall-clock time the way report cells expect
func Timestamp(t time.Time) string {
	return t.Format(datetimeLayout)
}
