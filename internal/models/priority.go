package models

// LeadPriority represents the urgency/value bucket assigned to a lead
type LeadPriority string

const (
	// PriorityEmergency indicates the lead requires immediate dispatch regardless of score
	PriorityEmergency LeadPriority = "emergency"

	// PriorityHigh indicates a high-value lead (score at or above the high threshold)
	PriorityHigh LeadPriority = "high"

	// PriorityMedium indicates a mid-range lead
	PriorityMedium LeadPriority = "medium"

	// PriorityLow indicates a low-scoring lead
	PriorityLow LeadPriority = "low"
)

// IsValid checks if the priority is a valid LeadPriority value
func (p LeadPriority) IsValid() bool {
	switch p {
	case PriorityEmergency, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority
func (p LeadPriority) String() string {
	return string(p)
}

// PropertyType represents the kind of property an estimate request is for
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyCommercial   PropertyType = "commercial"
	PropertyUnknown      PropertyType = "unknown"
)

// ParsePropertyType maps a raw value onto a known property type.
// Anything unrecognized degrades to PropertyUnknown rather than failing.
func ParsePropertyType(raw string) PropertyType {
	switch PropertyType(raw) {
	case PropertySingleFamily, PropertyMultiFamily, PropertyCommercial:
		return PropertyType(raw)
	default:
		return PropertyUnknown
	}
}
