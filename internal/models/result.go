package models

// LeadProcessingResult is the output of one processLead call. It is
// created fresh per call and not mutated by the core afterward; the
// caller may attach it to a CRM write.
type LeadProcessingResult struct {
	DealID             string       `json:"deal_id"`
	Priority           LeadPriority `json:"priority"`
	Score              int          `json:"score"`
	IsEmergency        bool         `json:"is_emergency"`
	AssignedRep        string       `json:"assigned_rep"`
	NotificationsSent  []string     `json:"notifications_sent"`
	WorkflowsTriggered []string     `json:"workflows_triggered"`
	ServicesCount      int          `json:"services_count"`
}

// CRMProperties projects the result onto the flat custom-property map
// consumed by the CRM-write layer. The core supplies values only; it
// never performs the write.
func (r LeadProcessingResult) CRMProperties() map[string]interface{} {
	return map[string]interface{}{
		"lead_priority":      string(r.Priority),
		"lead_score":         r.Score,
		"assigned_sales_rep": r.AssignedRep,
		"is_emergency":       r.IsEmergency,
		"services_count":     r.ServicesCount,
		"notification_sent":  len(r.NotificationsSent) > 0,
	}
}

// NotificationRequest carries everything the dispatcher needs to build
// and deliver alerts for one processed lead.
type NotificationRequest struct {
	Priority      LeadPriority
	DealID        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	EstimateRange string
	Services      []string
	LeadScore     int
	AssignedRep   string
}
