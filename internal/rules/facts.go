package rules

import (
	"github.com/checkfox/lead_router/internal/models"
)

// BuildFacts flattens a lead plus its computed score, emergency flag and
// score-derived priority into the map rule conditions evaluate against.
func BuildFacts(lead models.LeadInput, score int, isEmergency bool, priority models.LeadPriority) map[string]interface{} {
	facts := map[string]interface{}{
		"deal_id":             lead.DealID,
		"lead_score":          score,
		"is_emergency":        isEmergency,
		"priority":            string(priority),
		"property_type":       string(lead.PropertyType),
		"services":            lead.Services,
		"services_count":      len(lead.Services),
		"timeline":            lead.Timeline,
		"location":            lead.Location,
		"project_description": lead.ProjectDescription,
		"estimate_midpoint":   lead.MidpointEstimate(),
	}

	// Absent estimate bounds are simply absent facts; greater_than against
	// a missing field is false rather than an error.
	if lead.EstimateMin != nil {
		facts["estimate_min"] = *lead.EstimateMin
	}
	if lead.EstimateMax != nil {
		facts["estimate_max"] = *lead.EstimateMax
	}
	if lead.SquareFootage != nil {
		facts["square_footage"] = *lead.SquareFootage
	}

	return facts
}
