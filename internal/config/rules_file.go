package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/checkfox/lead_router/internal/models"
)

// LoadRoutingRules loads routing rules from a JSON file. Unknown
// operator or action types are rejected here so a malformed rules file
// fails at startup instead of degrading silently per lead.
func LoadRoutingRules(path string) ([]models.RoutingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routing rules file: %w", err)
	}

	var rules []models.RoutingRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse routing rules JSON: %w", err)
	}

	for _, rule := range rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("routing rule %q is missing an id", rule.Name)
		}
		for _, cond := range rule.Conditions {
			if !cond.Operator.IsValid() {
				return nil, fmt.Errorf("rule %q: unknown condition operator %q", rule.ID, cond.Operator)
			}
			if cond.Field == "" {
				return nil, fmt.Errorf("rule %q: condition is missing a field", rule.ID)
			}
		}
		for _, action := range rule.Actions {
			if !action.Type.IsValid() {
				return nil, fmt.Errorf("rule %q: unknown action type %q", rule.ID, action.Type)
			}
		}
	}

	return rules, nil
}
