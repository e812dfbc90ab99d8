// Package discount maps raw discount metadata to report labels.
package discount

import (
	"strings"

	"github.com/eklokova/connect-reports/core/types"
)

// EmptyLevel is returned for any code that matches no pricing tier
const EmptyLevel = "Empty"

// Level maps an opaque discount-group code to a pricing tier label.
// The rules inspect the first and third characters of the code, in order:
// two-digit "Level" tiers, one-digit "Level" tiers, then "TLP Level" tiers.
// Anything shorter than three characters or outside the ladder is Empty.
func Level(code string) string {
	if len(code) < 3 {
		return EmptyLevel
	}
	switch {
	case code[2] == 'A' && code[0] == '1':
		return "Level " + code[:2]
	case code[2] == 'A':
		return "Level " + string(code[1])
	case code[2] == '0':
		return "TLP Level " + string(code[1])
	}
	return EmptyLevel
}

// HVDCode extracts the first HVD rating attribute from a parameter's
// structured discount metadata, or "" when none is present.
func HVDCode(param types.Param) string {
	if param.StructuredValue == nil {
		return ""
	}
	for _, item := range param.StructuredValue.Discount.Items {
		if strings.HasPrefix(item.RatingAttribute, "HVD") {
			return item.RatingAttribute
		}
	}
	return ""
}
