package scoring

import (
	"strings"

	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/models"
)

// Sub-score caps. The five maxima sum to 100 exactly, so the final
// clamp is a safety net, not a common path.
const (
	estimateScoreCap  = 40
	estimateDivisor   = 500
	serviceScoreCap   = 15
	pointsPerService  = 5
	maxScore          = 100
	premiumLocation   = 10
	unmatchedLocation = 5
)

var propertyTypeScores = map[models.PropertyType]int{
	models.PropertyCommercial:   20,
	models.PropertyMultiFamily:  15,
	models.PropertySingleFamily: 10,
	models.PropertyUnknown:      0,
}

var timelineScores = map[string]int{
	"asap":       15,
	"this_month": 12,
	"next_month": 8,
	"flexible":   5,
}

// Engine computes lead quality scores. It is pure: same criteria in,
// same score out, no I/O, no hidden state.
type Engine struct {
	cfg *config.Config
}

// NewEngine creates a scoring engine bound to a routing configuration
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// CalculateLeadScore maps lead attributes to a quality score in [0, 100].
// The score is a weighted sum of five independently capped sub-scores.
func (e *Engine) CalculateLeadScore(criteria models.ScoringCriteria) int {
	score := estimateScore(criteria.MidpointEstimate) +
		propertyTypeScores[criteria.PropertyType] +
		serviceScore(criteria.ServiceCount) +
		timelineScore(criteria.Timeline) +
		e.locationScore(criteria.Location)

	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// DeterminePriority buckets a score into a priority. Emergency always
// dominates regardless of score; the remaining tiers come from the
// configured thresholds.
func (e *Engine) DeterminePriority(score int, isEmergency bool) models.LeadPriority {
	if isEmergency {
		return models.PriorityEmergency
	}

	thresholds := e.cfg.Scoring.PriorityThresholds
	switch {
	case score >= thresholds.High:
		return models.PriorityHigh
	case score >= thresholds.Medium:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// estimateScore awards one point per $500 of midpoint estimate, capped.
// Missing or invalid estimates arrive here as a zero midpoint.
func estimateScore(midpoint float64) int {
	if midpoint <= 0 {
		return 0
	}
	points := int(midpoint / estimateDivisor)
	if points > estimateScoreCap {
		return estimateScoreCap
	}
	return points
}

func serviceScore(count int) int {
	points := count * pointsPerService
	if points > serviceScoreCap {
		return serviceScoreCap
	}
	if points < 0 {
		return 0
	}
	return points
}

func timelineScore(timeline string) int {
	return timelineScores[strings.ToLower(strings.TrimSpace(timeline))]
}

// locationScore awards full points for a premium-keyword match, partial
// points for any other non-empty location, and nothing for an empty one.
func (e *Engine) locationScore(location string) int {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return 0
	}

	lowered := strings.ToLower(trimmed)
	for _, keyword := range e.cfg.Scoring.PremiumLocationKeywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return premiumLocation
		}
	}
	return unmatchedLocation
}
