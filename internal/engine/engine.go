package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/checkfox/lead_router/internal/assignment"
	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/logger"
	"github.com/checkfox/lead_router/internal/models"
	"github.com/checkfox/lead_router/internal/notify"
	"github.com/checkfox/lead_router/internal/rules"
	"github.com/checkfox/lead_router/internal/scoring"
)

// Engine composes scoring, emergency detection, rule matching,
// assignment and notification into the lead routing pipeline.
type Engine struct {
	cfg        *config.Config
	scorer     *scoring.Engine
	detector   *scoring.Detector
	rules      *rules.Engine
	resolver   *assignment.Resolver
	dispatcher *notify.Dispatcher
}

// New creates a routing engine. Configuration invariants (empty rep
// pool, missing catch-all rule) fail here at construction, never per
// lead.
func New(cfg *config.Config, ruleSet []models.RoutingRule, dispatcher *notify.Dispatcher) (*Engine, error) {
	ruleEngine, err := rules.NewEngine(ruleSet)
	if err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	resolver, err := assignment.NewResolver(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid assignment configuration: %w", err)
	}

	return &Engine{
		cfg:        cfg,
		scorer:     scoring.NewEngine(cfg),
		detector:   scoring.NewDetector(cfg),
		rules:      ruleEngine,
		resolver:   resolver,
		dispatcher: dispatcher,
	}, nil
}

// Rules exposes the rule engine for administrative add/remove calls
func (e *Engine) Rules() *rules.Engine {
	return e.rules
}

// ProcessLead runs one lead through the full pipeline and always
// returns a result; malformed input degrades to its lowest-scoring
// interpretation rather than failing.
func (e *Engine) ProcessLead(ctx context.Context, lead models.LeadInput) models.LeadProcessingResult {
	startTime := time.Now()
	ctx = context.WithValue(ctx, logger.DealIDKey, lead.DealID)

	criteria := models.NewScoringCriteria(lead)
	score := e.scorer.CalculateLeadScore(criteria)
	isEmergency := e.detector.DetectEmergency(criteria)
	priority := e.scorer.DeterminePriority(score, isEmergency)

	logger.Info(ctx, "Lead scored",
		"score", score,
		"is_emergency", isEmergency,
		"priority", string(priority))

	result := models.LeadProcessingResult{
		DealID:             lead.DealID,
		Priority:           priority,
		Score:              score,
		IsEmergency:        isEmergency,
		NotificationsSent:  []string{},
		WorkflowsTriggered: []string{},
		ServicesCount:      len(lead.Services),
	}

	facts := rules.BuildFacts(lead, score, isEmergency, priority)
	if rule, ok := e.rules.Match(facts); ok {
		logger.Info(ctx, "Routing rule matched",
			"rule_id", rule.ID,
			"rule_name", rule.Name)
		e.applyActions(ctx, rule, lead, &result)
		result.WorkflowsTriggered = append(result.WorkflowsTriggered, rule.Name)
	}

	// The catch-all rule makes a non-match impossible, but the rep
	// fallback below keeps the guarantee even without an assign_to action.
	if result.AssignedRep == "" {
		result.AssignedRep = e.resolver.ByConfig(lead, score, result.Priority)
		logger.Info(ctx, "Assigned rep via config fallback", "assigned_rep", result.AssignedRep)
	}

	logger.LogSlowOperation(ctx, "process_lead", time.Since(startTime))
	return result
}

// applyActions executes the winning rule's actions in declaration
// order; later actions of the same type overwrite earlier ones.
func (e *Engine) applyActions(ctx context.Context, rule models.RoutingRule, lead models.LeadInput, result *models.LeadProcessingResult) {
	for _, action := range rule.Actions {
		switch action.Type {
		case models.ActionSetPriority:
			newPriority := models.LeadPriority(action.Value)
			if !newPriority.IsValid() {
				logger.Warn(ctx, "Ignoring set_priority with unknown value",
					"rule_id", rule.ID,
					"value", action.Value)
				continue
			}
			if newPriority != result.Priority {
				logger.LogPriorityChange(ctx, result.DealID, string(result.Priority), string(newPriority))
			}
			result.Priority = newPriority

		case models.ActionAssignTo:
			result.AssignedRep = e.resolver.Resolve(action.Value, lead)

		case models.ActionNotify:
			result.NotificationsSent = append(result.NotificationsSent, action.Value)

		case models.ActionAddToSequence:
			// Reserved for marketing-sequence enrollment; recognized no-op.
			logger.Debug(ctx, "Skipping add_to_sequence action", "sequence", action.Value)

		default:
			logger.Warn(ctx, "Ignoring unknown action type",
				"rule_id", rule.ID,
				"action_type", string(action.Type))
		}
	}
}

// Notify builds the notification request for a processed lead and hands
// it to the dispatcher. Returns the channel tokens attempted or the
// "scheduled" token; never an error, delivery is best-effort.
func (e *Engine) Notify(ctx context.Context, result models.LeadProcessingResult, lead models.LeadInput, contact models.Contact) []string {
	if e.dispatcher == nil {
		return nil
	}

	ctx = context.WithValue(ctx, logger.DealIDKey, result.DealID)
	req := buildNotificationRequest(result, lead, contact)
	channels := e.dispatcher.Dispatch(ctx, req)

	logger.Info(ctx, "Notification dispatch complete", "channels", channels)
	return channels
}

func buildNotificationRequest(result models.LeadProcessingResult, lead models.LeadInput, contact models.Contact) models.NotificationRequest {
	var estimateRange string
	if lead.EstimateMin != nil || lead.EstimateMax != nil {
		low := lead.MidpointEstimate()
		high := low
		if lead.EstimateMin != nil {
			low = *lead.EstimateMin
		}
		if lead.EstimateMax != nil {
			high = *lead.EstimateMax
		}
		estimateRange = notify.FormatEstimateRange(low, high)
	}

	return models.NotificationRequest{
		Priority:      result.Priority,
		DealID:        result.DealID,
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		CustomerPhone: contact.Phone,
		Address:       lead.Location,
		EstimateRange: estimateRange,
		Services:      lead.Services,
		LeadScore:     result.Score,
		AssignedRep:   result.AssignedRep,
	}
}
