package rules

import (
	"testing"

	"github.com/checkfox/lead_router/internal/models"
)

func catchAll(priority int) models.RoutingRule {
	return models.RoutingRule{
		ID:       "catch-all",
		Name:     "Catch All",
		Priority: priority,
	}
}

func TestNewEngineValidation(t *testing.T) {
	tests := []struct {
		name    string
		rules   []models.RoutingRule
		wantErr bool
	}{
		{
			name:    "empty rule set",
			rules:   nil,
			wantErr: true,
		},
		{
			name:    "catch-all only",
			rules:   []models.RoutingRule{catchAll(100)},
			wantErr: false,
		},
		{
			name: "missing catch-all",
			rules: []models.RoutingRule{
				{ID: "r1", Priority: 1, Conditions: []models.RoutingCondition{
					{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 50},
				}},
			},
			wantErr: true,
		},
		{
			name: "two catch-alls",
			rules: []models.RoutingRule{
				catchAll(100),
				{ID: "catch-all-2", Priority: 101},
			},
			wantErr: true,
		},
		{
			name: "catch-all not lowest precedence",
			rules: []models.RoutingRule{
				catchAll(1),
				{ID: "r1", Priority: 2, Conditions: []models.RoutingCondition{
					{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 50},
				}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.rules)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluateCondition(t *testing.T) {
	facts := map[string]interface{}{
		"lead_score":          85,
		"is_emergency":        true,
		"property_type":       "commercial",
		"services_count":      3,
		"estimate_midpoint":   float64(20000),
		"project_description": "Urgent LEAK in the kitchen",
	}

	tests := []struct {
		name string
		cond models.RoutingCondition
		want bool
	}{
		{"equals string match", models.RoutingCondition{Field: "property_type", Operator: models.OperatorEquals, Value: "commercial"}, true},
		{"equals string mismatch", models.RoutingCondition{Field: "property_type", Operator: models.OperatorEquals, Value: "single_family"}, false},
		{"equals bool match", models.RoutingCondition{Field: "is_emergency", Operator: models.OperatorEquals, Value: true}, true},
		{"equals numeric across types", models.RoutingCondition{Field: "lead_score", Operator: models.OperatorEquals, Value: float64(85)}, true},
		{"equals type mismatch is false", models.RoutingCondition{Field: "property_type", Operator: models.OperatorEquals, Value: 7}, false},
		{"greater_than true", models.RoutingCondition{Field: "estimate_midpoint", Operator: models.OperatorGreaterThan, Value: float64(15000)}, true},
		{"greater_than false at equal", models.RoutingCondition{Field: "estimate_midpoint", Operator: models.OperatorGreaterThan, Value: float64(20000)}, false},
		{"greater_than int fact", models.RoutingCondition{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 80}, true},
		{"greater_than non-numeric side is false", models.RoutingCondition{Field: "property_type", Operator: models.OperatorGreaterThan, Value: 10}, false},
		{"greater_than non-numeric value is false", models.RoutingCondition{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: "eighty"}, false},
		{"contains substring", models.RoutingCondition{Field: "project_description", Operator: models.OperatorContains, Value: "leak"}, true},
		{"contains miss", models.RoutingCondition{Field: "project_description", Operator: models.OperatorContains, Value: "hail"}, false},
		{"contains on non-string is false", models.RoutingCondition{Field: "lead_score", Operator: models.OperatorContains, Value: "8"}, false},
		{"in match", models.RoutingCondition{Field: "property_type", Operator: models.OperatorIn, Value: []interface{}{"commercial", "multi_family"}}, true},
		{"in miss", models.RoutingCondition{Field: "property_type", Operator: models.OperatorIn, Value: []interface{}{"single_family"}}, false},
		{"in with non-array value is false", models.RoutingCondition{Field: "property_type", Operator: models.OperatorIn, Value: "commercial"}, false},
		{"in numeric membership", models.RoutingCondition{Field: "services_count", Operator: models.OperatorIn, Value: []interface{}{float64(2), float64(3)}}, true},
		{"missing fact is false", models.RoutingCondition{Field: "no_such_fact", Operator: models.OperatorEquals, Value: "x"}, false},
		{"unknown operator is false", models.RoutingCondition{Field: "lead_score", Operator: "approximately", Value: 85}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateCondition(tt.cond, facts); got != tt.want {
				t.Errorf("evaluateCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchFirstWins(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{
		{ID: "r2", Name: "Second", Priority: 2, Conditions: []models.RoutingCondition{
			{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 10},
		}},
		{ID: "r1", Name: "First", Priority: 1, Conditions: []models.RoutingCondition{
			{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 10},
		}},
		catchAll(100),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	rule, ok := engine.Match(map[string]interface{}{"lead_score": 50})
	if !ok {
		t.Fatal("Match() returned no rule")
	}
	if rule.ID != "r1" {
		t.Errorf("Match() = %s, want r1 (lowest priority number wins)", rule.ID)
	}
}

func TestMatchAndSemantics(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{
		{ID: "both", Name: "Both Conditions", Priority: 1, Conditions: []models.RoutingCondition{
			{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 50},
			{Field: "property_type", Operator: models.OperatorEquals, Value: "commercial"},
		}},
		catchAll(100),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	// Only one of the two conditions holds, so the catch-all wins.
	rule, ok := engine.Match(map[string]interface{}{
		"lead_score":    80,
		"property_type": "single_family",
	})
	if !ok {
		t.Fatal("Match() returned no rule")
	}
	if rule.ID != "catch-all" {
		t.Errorf("Match() = %s, want catch-all", rule.ID)
	}
}

func TestCatchAllAlwaysMatches(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{catchAll(100)})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, ok := engine.Match(map[string]interface{}{}); !ok {
		t.Error("catch-all rule did not match an empty fact map")
	}
}

func TestAddRemoveRule(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{catchAll(100)})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	engine.AddRule(models.RoutingRule{ID: "added", Priority: 5, Conditions: []models.RoutingCondition{
		{Field: "is_emergency", Operator: models.OperatorEquals, Value: true},
	}})

	rule, ok := engine.Match(map[string]interface{}{"is_emergency": true})
	if !ok || rule.ID != "added" {
		t.Errorf("Match() after AddRule = %v, %v; want added rule", rule.ID, ok)
	}

	if !engine.RemoveRule("added") {
		t.Error("RemoveRule(added) = false, want true")
	}
	if engine.RemoveRule("added") {
		t.Error("RemoveRule(added) twice = true, want false")
	}

	rule, _ = engine.Match(map[string]interface{}{"is_emergency": true})
	if rule.ID != "catch-all" {
		t.Errorf("Match() after RemoveRule = %s, want catch-all", rule.ID)
	}
}

func TestRulesReturnsSnapshot(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{catchAll(100)})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	snapshot := engine.Rules()
	snapshot[0].ID = "mutated"

	if engine.Rules()[0].ID != "catch-all" {
		t.Error("mutating the Rules() snapshot affected engine state")
	}
}

func TestPriorityTieKeepsInsertionOrder(t *testing.T) {
	engine, err := NewEngine([]models.RoutingRule{
		{ID: "first-inserted", Priority: 1, Conditions: []models.RoutingCondition{
			{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 0},
		}},
		{ID: "second-inserted", Priority: 1, Conditions: []models.RoutingCondition{
			{Field: "lead_score", Operator: models.OperatorGreaterThan, Value: 0},
		}},
		catchAll(100),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	rule, _ := engine.Match(map[string]interface{}{"lead_score": 10})
	if rule.ID != "first-inserted" {
		t.Errorf("Match() = %s, want first-inserted (stable sort)", rule.ID)
	}
}
