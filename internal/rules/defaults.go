package rules

import (
	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/models"
)

// DefaultRules builds the in-code rule set used when no rules file is
// configured. The catch-all carries the highest priority number so every
// lead matches at least one rule.
func DefaultRules(cfg *config.Config) []models.RoutingRule {
	return []models.RoutingRule{
		{
			ID:       "emergency-dispatch",
			Name:     "Emergency Dispatch",
			Priority: 1,
			Conditions: []models.RoutingCondition{
				{Field: "is_emergency", Operator: models.OperatorEquals, Value: true},
			},
			Actions: []models.RoutingAction{
				{Type: models.ActionSetPriority, Value: string(models.PriorityEmergency)},
				{Type: models.ActionAssignTo, Value: "emergency-dispatcher"},
				{Type: models.ActionNotify, Value: "emergency"},
			},
		},
		{
			ID:       "high-value-estimate",
			Name:     "High Value Estimate",
			Priority: 2,
			Conditions: []models.RoutingCondition{
				{Field: "estimate_midpoint", Operator: models.OperatorGreaterThan, Value: cfg.HighValue.EstimateAmount},
			},
			Actions: []models.RoutingAction{
				{Type: models.ActionSetPriority, Value: string(models.PriorityHigh)},
				{Type: models.ActionAssignTo, Value: "senior-sales-rep"},
				{Type: models.ActionNotify, Value: "high_value"},
			},
		},
		{
			ID:       "commercial-property",
			Name:     "Commercial Property",
			Priority: 3,
			Conditions: []models.RoutingCondition{
				{Field: "property_type", Operator: models.OperatorEquals, Value: string(models.PropertyCommercial)},
			},
			Actions: []models.RoutingAction{
				{Type: models.ActionAssignTo, Value: "commercial-specialist"},
				{Type: models.ActionNotify, Value: "high_value"},
			},
		},
		{
			ID:       "standard-intake",
			Name:     "Standard Intake",
			Priority: 100,
			Actions: []models.RoutingAction{
				{Type: models.ActionAssignTo, Value: "general-sales"},
				{Type: models.ActionNotify, Value: "standard"},
				{Type: models.ActionAddToSequence, Value: "new-lead-nurture"},
			},
		},
	}
}
