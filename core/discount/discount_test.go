package discount

import (
	"testing"

	"github.com/eklokova/connect-reports/core/types"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"15A", "Level 15"},
		{"12A", "Level 12"},
		{"02A", "Level 2"},
		{"2AA", "Level A"},
		{"100", "TLP Level 0"},
		{"010", "TLP Level 1"},
		{"1A5", "Empty"},
		{"2B3", "Empty"},
		{"2A", "Empty"},
		{"1", "Empty"},
		{"", "Empty"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Level(tt.code); got != tt.want {
				t.Errorf("Level(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestHVDCode(t *testing.T) {
	structured := func(attrs ...string) *types.StructuredValue {
		items := make([]types.DiscountItem, len(attrs))
		for i, a := range attrs {
			items[i] = types.DiscountItem{RatingAttribute: a}
		}
		return &types.StructuredValue{Discount: types.Discount{Items: items}}
	}

	tests := []struct {
		name  string
		param types.Param
		want  string
	}{
		{
			name:  "first hvd attribute wins",
			param: types.Param{StructuredValue: structured("STANDARD", "HVD_LEVEL_2", "HVD_LEVEL_3")},
			want:  "HVD_LEVEL_2",
		},
		{
			name:  "no hvd attributes",
			param: types.Param{StructuredValue: structured("STANDARD", "TLP")},
			want:  "",
		},
		{
			name:  "empty discount items",
			param: types.Param{StructuredValue: structured()},
			want:  "",
		},
		{
			name:  "no structured value",
			param: types.Param{Value: "whatever"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HVDCode(tt.param); got != tt.want {
				t.Errorf("HVDCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
