package models

import (
	"math"
	"testing"
)

func TestParseLeadInput(t *testing.T) {
	t.Run("well formed payload", func(t *testing.T) {
		lead := ParseLeadInput(map[string]interface{}{
			"dealId":             "deal-42",
			"estimateMin":        float64(5000),
			"estimateMax":        float64(8000),
			"propertyType":       "commercial",
			"services":           []interface{}{"roof_replacement", "gutters"},
			"timeline":           "asap",
			"location":           "premium hills",
			"projectDescription": "full tear-off",
			"isEmergency":        true,
		})

		if lead.DealID != "deal-42" {
			t.Errorf("DealID = %q, want deal-42", lead.DealID)
		}
		if lead.EstimateMin == nil || *lead.EstimateMin != 5000 {
			t.Errorf("EstimateMin = %v, want 5000", lead.EstimateMin)
		}
		if lead.PropertyType != PropertyCommercial {
			t.Errorf("PropertyType = %s, want commercial", lead.PropertyType)
		}
		if len(lead.Services) != 2 {
			t.Errorf("Services = %v, want 2 entries", lead.Services)
		}
		if !lead.IsEmergencyChecked {
			t.Error("IsEmergencyChecked = false, want true")
		}
	})

	t.Run("malformed payload degrades instead of failing", func(t *testing.T) {
		lead := ParseLeadInput(map[string]interface{}{
			"estimateMin":  "not-a-number",
			"estimateMax":  nil,
			"services":     "not-an-array",
			"propertyType": float64(123),
		})

		if lead.EstimateMin != nil {
			t.Errorf("EstimateMin = %v, want nil", lead.EstimateMin)
		}
		if lead.EstimateMax != nil {
			t.Errorf("EstimateMax = %v, want nil", lead.EstimateMax)
		}
		if len(lead.Services) != 0 {
			t.Errorf("Services = %v, want empty", lead.Services)
		}
		if lead.PropertyType != PropertyUnknown {
			t.Errorf("PropertyType = %s, want unknown", lead.PropertyType)
		}
	})

	t.Run("numeric strings are accepted for estimates", func(t *testing.T) {
		lead := ParseLeadInput(map[string]interface{}{
			"estimateMin": "2500",
		})
		if lead.EstimateMin == nil || *lead.EstimateMin != 2500 {
			t.Errorf("EstimateMin = %v, want 2500", lead.EstimateMin)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		lead := ParseLeadInput(map[string]interface{}{})
		if lead.MidpointEstimate() != 0 {
			t.Errorf("MidpointEstimate() = %v, want 0", lead.MidpointEstimate())
		}
	})
}

func TestMidpointEstimate(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	nan := math.NaN()

	tests := []struct {
		name string
		min  *float64
		max  *float64
		want float64
	}{
		{"both present", f(5000), f(8000), 6500},
		{"only min", f(5000), nil, 5000},
		{"only max", nil, f(8000), 8000},
		{"neither", nil, nil, 0},
		{"NaN min ignored", &nan, f(8000), 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := LeadInput{EstimateMin: tt.min, EstimateMax: tt.max}
			if got := lead.MidpointEstimate(); got != tt.want {
				t.Errorf("MidpointEstimate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string yes", "YES", true},
		{"string one", "1", true},
		{"string no", "no", false},
		{"number", float64(1), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceBool(tt.value); got != tt.want {
				t.Errorf("coerceBool(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParsePropertyType(t *testing.T) {
	tests := []struct {
		raw  string
		want PropertyType
	}{
		{"single_family", PropertySingleFamily},
		{"multi_family", PropertyMultiFamily},
		{"commercial", PropertyCommercial},
		{"castle", PropertyUnknown},
		{"", PropertyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParsePropertyType(tt.raw); got != tt.want {
				t.Errorf("ParsePropertyType(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
