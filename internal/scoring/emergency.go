package scoring

import (
	"strings"

	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/models"
)

// Detector flags urgent leads. Pure OR over four signals; the checks
// short-circuit on the first hit but ordering never changes the result.
type Detector struct {
	cfg *config.Config
}

// NewDetector creates an emergency detector bound to a routing configuration
func NewDetector(cfg *config.Config) *Detector {
	return &Detector{cfg: cfg}
}

// DetectEmergency returns true if any of the following hold:
// the explicit emergency checkbox was set, a selected service is in the
// configured emergency-service set, the project description contains a
// configured urgent keyword (case-insensitive), or the timeline is in
// the configured urgent-timeline set.
func (d *Detector) DetectEmergency(criteria models.ScoringCriteria) bool {
	if criteria.EmergencyChecked {
		return true
	}

	for _, service := range criteria.Services {
		if containsFold(d.cfg.Emergency.ServiceTypes, service) {
			return true
		}
	}

	if description := strings.ToLower(criteria.ProjectDescription); description != "" {
		for _, keyword := range d.cfg.Emergency.UrgentKeywords {
			if strings.Contains(description, strings.ToLower(keyword)) {
				return true
			}
		}
	}

	if containsFold(d.cfg.Emergency.UrgentTimelines, criteria.Timeline) {
		return true
	}

	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, item := range haystack {
		if strings.EqualFold(item, strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
