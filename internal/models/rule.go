package models

// ConditionOperator identifies how a routing condition compares a fact
// against its configured value
type ConditionOperator string

const (
	// OperatorEquals performs strict value equality (numeric values are
	// compared numerically across int/float representations)
	OperatorEquals ConditionOperator = "equals"

	// OperatorGreaterThan performs a numeric comparison; it is false when
	// either side is non-numeric
	OperatorGreaterThan ConditionOperator = "greater_than"

	// OperatorContains performs a case-insensitive substring test on strings
	OperatorContains ConditionOperator = "contains"

	// OperatorIn tests membership against an array-valued condition value
	OperatorIn ConditionOperator = "in"
)

// IsValid checks if the operator is a recognized ConditionOperator
func (o ConditionOperator) IsValid() bool {
	switch o {
	case OperatorEquals, OperatorGreaterThan, OperatorContains, OperatorIn:
		return true
	default:
		return false
	}
}

// ActionType identifies what a routing action does when its rule wins
type ActionType string

const (
	// ActionSetPriority overwrites the result's priority
	ActionSetPriority ActionType = "set_priority"

	// ActionAssignTo resolves a routing-type token to a concrete rep
	ActionAssignTo ActionType = "assign_to"

	// ActionNotify appends a channel-group token to the result
	ActionNotify ActionType = "notify"

	// ActionAddToSequence is recognized but currently a no-op, reserved
	// for marketing-sequence enrollment
	ActionAddToSequence ActionType = "add_to_sequence"
)

// IsValid checks if the action type is a recognized ActionType
func (a ActionType) IsValid() bool {
	switch a {
	case ActionSetPriority, ActionAssignTo, ActionNotify, ActionAddToSequence:
		return true
	default:
		return false
	}
}

// RoutingCondition is one predicate evaluated against a lead's fact map
type RoutingCondition struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    interface{}       `json:"value"`
}

// RoutingAction is one effect applied when a rule wins.
// Actions apply in declaration order; later actions of the same type
// overwrite earlier ones.
type RoutingAction struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value"`
}

// RoutingRule is a named, prioritized (conditions, actions) unit.
// Lower Priority numbers are evaluated first. A rule with no conditions
// matches every lead (catch-all).
type RoutingRule struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Priority   int                `json:"priority"`
	Conditions []RoutingCondition `json:"conditions"`
	Actions    []RoutingAction    `json:"actions"`
}

// IsCatchAll reports whether the rule matches unconditionally
func (r RoutingRule) IsCatchAll() bool {
	return len(r.Conditions) == 0
}
