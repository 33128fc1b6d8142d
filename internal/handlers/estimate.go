package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/checkfox/lead_router/internal/engine"
	"github.com/checkfox/lead_router/internal/logger"
	"github.com/checkfox/lead_router/internal/models"
	"github.com/google/uuid"
)

// EstimateHandler handles webhook requests for inbound estimate requests
type EstimateHandler struct {
	engine *engine.Engine
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(routingEngine *engine.Engine) *EstimateHandler {
	return &EstimateHandler{
		engine: routingEngine,
	}
}

// EstimateResponse represents the response returned to webhook callers
type EstimateResponse struct {
	DealID             string   `json:"deal_id"`
	Priority           string   `json:"priority"`
	Score              int      `json:"score"`
	IsEmergency        bool     `json:"is_emergency"`
	AssignedRep        string   `json:"assigned_rep"`
	NotificationsSent  []string `json:"notifications_sent"`
	WorkflowsTriggered []string `json:"workflows_triggered"`
	Channels           []string `json:"channels"`
	CorrelationID      string   `json:"correlation_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// HandleEstimateWebhook handles POST /webhooks/estimates
func (h *EstimateHandler) HandleEstimateWebhook(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	// Generate correlation ID for request tracing
	correlationID := uuid.New().String()
	ctx := context.WithValue(r.Context(), logger.CorrelationIDKey, correlationID)

	logger.Info(ctx, "Received estimate webhook",
		"remote_addr", r.RemoteAddr,
		"method", r.Method,
	)

	if r.Method != http.MethodPost {
		h.respondError(w, ctx, correlationID, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.LogError(ctx, "Failed to read request body", err)
		h.respondError(w, ctx, correlationID, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	var rawPayload map[string]interface{}
	if err := json.Unmarshal(body, &rawPayload); err != nil {
		logger.LogError(ctx, "Malformed JSON payload", err)
		h.respondError(w, ctx, correlationID, http.StatusBadRequest, "malformed JSON payload")
		return
	}

	// The lead itself is coerced leniently: a payload with wrong-typed
	// fields still produces a routed result rather than a 4xx.
	lead := models.ParseLeadInput(rawPayload)
	contact := parseContact(rawPayload)

	result := h.engine.ProcessLead(ctx, lead)
	channels := h.engine.Notify(ctx, result, lead, contact)

	response := EstimateResponse{
		DealID:             result.DealID,
		Priority:           string(result.Priority),
		Score:              result.Score,
		IsEmergency:        result.IsEmergency,
		AssignedRep:        result.AssignedRep,
		NotificationsSent:  result.NotificationsSent,
		WorkflowsTriggered: result.WorkflowsTriggered,
		Channels:           channels,
		CorrelationID:      correlationID,
	}

	logger.Info(ctx, "Estimate processed",
		"deal_id", result.DealID,
		"priority", string(result.Priority),
		"duration_ms", time.Since(startTime).Milliseconds())

	h.respondJSON(w, http.StatusAccepted, response)
}

func parseContact(payload map[string]interface{}) models.Contact {
	raw, ok := payload["contact"].(map[string]interface{})
	if !ok {
		return models.Contact{}
	}

	contact := models.Contact{}
	if name, ok := raw["name"].(string); ok {
		contact.Name = name
	}
	if email, ok := raw["email"].(string); ok {
		contact.Email = email
	}
	if phone, ok := raw["phone"].(string); ok {
		contact.Phone = phone
	}
	return contact
}

func (h *EstimateHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *EstimateHandler) respondError(w http.ResponseWriter, ctx context.Context, correlationID string, status int, message string) {
	logger.Warn(ctx, "Responding with error",
		"status", status,
		"message", message)
	h.respondJSON(w, status, ErrorResponse{
		Error:         message,
		CorrelationID: correlationID,
	})
}
