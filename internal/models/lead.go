package models

import (
	"math"
	"strconv"
	"strings"
)

// LeadInput holds the raw facts about one estimate request.
// It is created once per inbound request and passed by value into the core.
type LeadInput struct {
	DealID             string
	EstimateMin        *float64
	EstimateMax        *float64
	PropertyType       PropertyType
	Services           []string
	Timeline           string
	Location           string
	ProjectDescription string
	SquareFootage      *float64
	IsEmergencyChecked bool
}

// Contact is the caller-supplied contact record used only to build
// notification requests. It is never persisted by the core.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ScoringCriteria is the derived subset of LeadInput consumed by the
// scoring engine and emergency detector. Computed, not persisted.
type ScoringCriteria struct {
	MidpointEstimate   float64
	PropertyType       PropertyType
	ServiceCount       int
	Services           []string
	Timeline           string
	Location           string
	ProjectDescription string
	EmergencyChecked   bool
}

// NewScoringCriteria derives scoring criteria from a lead.
// Missing or invalid estimates contribute a zero midpoint.
func NewScoringCriteria(lead LeadInput) ScoringCriteria {
	return ScoringCriteria{
		MidpointEstimate:   lead.MidpointEstimate(),
		PropertyType:       lead.PropertyType,
		ServiceCount:       len(lead.Services),
		Services:           lead.Services,
		Timeline:           lead.Timeline,
		Location:           lead.Location,
		ProjectDescription: lead.ProjectDescription,
		EmergencyChecked:   lead.IsEmergencyChecked,
	}
}

// MidpointEstimate returns the midpoint of the estimate range.
// If only one bound is present that bound is used; if neither is
// present (or values are not finite) the midpoint is 0.
func (l LeadInput) MidpointEstimate() float64 {
	minVal, minOK := finiteValue(l.EstimateMin)
	maxVal, maxOK := finiteValue(l.EstimateMax)

	switch {
	case minOK && maxOK:
		return (minVal + maxVal) / 2
	case minOK:
		return minVal
	case maxOK:
		return maxVal
	default:
		return 0
	}
}

func finiteValue(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// ParseLeadInput builds a LeadInput from a raw webhook payload.
// Coercion is deliberately lenient: wrong-typed or missing fields fall
// back to their zero-scoring defaults and never produce an error.
func ParseLeadInput(payload map[string]interface{}) LeadInput {
	return LeadInput{
		DealID:             coerceString(payload["dealId"]),
		EstimateMin:        coerceFloat(payload["estimateMin"]),
		EstimateMax:        coerceFloat(payload["estimateMax"]),
		PropertyType:       ParsePropertyType(coerceString(payload["propertyType"])),
		Services:           coerceStringSlice(payload["services"]),
		Timeline:           coerceString(payload["timeline"]),
		Location:           coerceString(payload["location"]),
		ProjectDescription: coerceString(payload["projectDescription"]),
		SquareFootage:      coerceFloat(payload["squareFootage"]),
		IsEmergencyChecked: coerceBool(payload["isEmergency"]),
	}
}

// coerceString returns the value if it is a string, otherwise "".
// Non-string scalars (numbers, booleans) are not stringified: a numeric
// propertyType is malformed input, not a property type.
func coerceString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// coerceFloat accepts JSON numbers and numeric strings; anything else
// (including NaN and infinities) yields nil.
func coerceFloat(v interface{}) *float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// coerceStringSlice accepts []interface{} or []string; elements that are
// not strings are skipped. Anything else yields an empty slice.
func coerceStringSlice(v interface{}) []string {
	switch val := v.(type) {
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// coerceBool accepts booleans and common string representations
// ("true", "1", "yes"); everything else is false.
func coerceBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.TrimSpace(strings.ToLower(val)) {
		case "true", "1", "yes", "y":
			return true
		}
	}
	return false
}
