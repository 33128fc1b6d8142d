package models

import "testing"

func TestCRMProperties(t *testing.T) {
	result := LeadProcessingResult{
		DealID:            "deal-7",
		Priority:          PriorityHigh,
		Score:             85,
		IsEmergency:       false,
		AssignedRep:       "senior.rep@example.com",
		NotificationsSent: []string{"high_value"},
		ServicesCount:     3,
	}

	props := result.CRMProperties()

	if props["lead_priority"] != "high" {
		t.Errorf("lead_priority = %v, want high", props["lead_priority"])
	}
	if props["lead_score"] != 85 {
		t.Errorf("lead_score = %v, want 85", props["lead_score"])
	}
	if props["assigned_sales_rep"] != "senior.rep@example.com" {
		t.Errorf("assigned_sales_rep = %v", props["assigned_sales_rep"])
	}
	if props["is_emergency"] != false {
		t.Errorf("is_emergency = %v, want false", props["is_emergency"])
	}
	if props["services_count"] != 3 {
		t.Errorf("services_count = %v, want 3", props["services_count"])
	}
	if props["notification_sent"] != true {
		t.Errorf("notification_sent = %v, want true", props["notification_sent"])
	}
}

func TestCRMPropertiesNoNotifications(t *testing.T) {
	result := LeadProcessingResult{DealID: "deal-8", Priority: PriorityLow}

	if sent := result.CRMProperties()["notification_sent"]; sent != false {
		t.Errorf("notification_sent = %v, want false", sent)
	}
}
