package rules

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/checkfox/lead_router/internal/models"
)

// Engine holds an ordered list of routing rules and evaluates them
// against a lead's fact map. Matching is pure; rule mutation happens
// only through the administrative AddRule/RemoveRule calls, which are
// guarded so an in-flight evaluation always sees a consistent list.
type Engine struct {
	mu    sync.RWMutex
	rules []models.RoutingRule
}

// NewEngine creates a rule engine from an initial rule set. The set must
// contain exactly one catch-all rule (no conditions) carrying the
// highest priority number, so every lead matches at least one rule.
// Violations are deployment errors and fail here, not per lead.
func NewEngine(initial []models.RoutingRule) (*Engine, error) {
	if err := validateRuleSet(initial); err != nil {
		return nil, err
	}

	e := &Engine{rules: make([]models.RoutingRule, len(initial))}
	copy(e.rules, initial)
	sortRules(e.rules)
	return e, nil
}

// AddRule inserts a rule preserving priority order. Ties keep insertion
// order (stable sort key = priority, then insertion order).
func (e *Engine) AddRule(rule models.RoutingRule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = append(e.rules, rule)
	sortRules(e.rules)
}

// RemoveRule removes the rule with the given id. Returns false if no
// such rule exists.
func (e *Engine) RemoveRule(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, rule := range e.rules {
		if rule.ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Rules returns a snapshot copy of the current rule list in evaluation order
func (e *Engine) Rules() []models.RoutingRule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.RoutingRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Match returns the first rule, in priority order, whose conditions all
// hold against the fact map. A rule with zero conditions always matches.
// Only this first match's actions are ever executed (first-match-wins).
func (e *Engine) Match(facts map[string]interface{}) (models.RoutingRule, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, rule := range e.rules {
		if matchesAll(rule.Conditions, facts) {
			return rule, true
		}
	}
	return models.RoutingRule{}, false
}

func matchesAll(conditions []models.RoutingCondition, facts map[string]interface{}) bool {
	for _, cond := range conditions {
		if !evaluateCondition(cond, facts) {
			return false
		}
	}
	return true
}

// evaluateCondition tests one condition against the fact map. Type
// mismatches degrade to false so a malformed rule means "does not
// match", never a crash.
func evaluateCondition(cond models.RoutingCondition, facts map[string]interface{}) bool {
	fact, ok := facts[cond.Field]
	if !ok {
		return false
	}

	switch cond.Operator {
	case models.OperatorEquals:
		return valuesEqual(fact, cond.Value)

	case models.OperatorGreaterThan:
		left, leftOK := toFloat(fact)
		right, rightOK := toFloat(cond.Value)
		return leftOK && rightOK && left > right

	case models.OperatorContains:
		haystack, hayOK := fact.(string)
		needle, needleOK := cond.Value.(string)
		if !hayOK || !needleOK {
			return false
		}
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))

	case models.OperatorIn:
		for _, candidate := range toSlice(cond.Value) {
			if valuesEqual(fact, candidate) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// valuesEqual is strict equality, except that numeric values compare
// numerically across int/float representations (a JSON rule value
// decodes as float64 while a score fact is an int).
func valuesEqual(a, b interface{}) bool {
	aNum, aOK := toFloat(a)
	bNum, bOK := toFloat(b)
	if aOK && bOK {
		return aNum == bNum
	}
	if aOK != bOK {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func toSlice(v interface{}) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func sortRules(rules []models.RoutingRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}

func validateRuleSet(rules []models.RoutingRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("rule set must not be empty")
	}

	catchAllCount := 0
	var catchAll models.RoutingRule
	maxPriority := rules[0].Priority
	for _, rule := range rules {
		if rule.Priority > maxPriority {
			maxPriority = rule.Priority
		}
		if rule.IsCatchAll() {
			catchAllCount++
			catchAll = rule
		}
	}

	if catchAllCount == 0 {
		return fmt.Errorf("rule set is missing a catch-all rule")
	}
	if catchAllCount > 1 {
		return fmt.Errorf("rule set has %d catch-all rules, want exactly one", catchAllCount)
	}
	if catchAll.Priority < maxPriority {
		return fmt.Errorf("catch-all rule %q must carry the highest priority number (has %d, max is %d)",
			catchAll.ID, catchAll.Priority, maxPriority)
	}

	return nil
}
