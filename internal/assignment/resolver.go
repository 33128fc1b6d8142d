package assignment

import (
	"fmt"
	"sync"

	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/models"
)

// Routing-type tokens recognized by Resolve
const (
	TokenEmergencyDispatcher  = "emergency-dispatcher"
	TokenSeniorSalesRep       = "senior-sales-rep"
	TokenCommercialSpecialist = "commercial-specialist"
	TokenGeneralSales         = "general-sales"
)

// Resolver maps abstract routing-type tokens to concrete representatives.
// The general-sales pool is served round-robin through a cursor owned by
// this instance and guarded by a mutex, so concurrent leads never race
// to the same index. Construct one resolver per engine; tests get fresh,
// isolated instances.
type Resolver struct {
	cfg *config.Config

	mu     sync.Mutex
	cursor int
}

// NewResolver creates an assignment resolver. An empty standard-rep pool
// is a deployment error and fails here, not per lead.
func NewResolver(cfg *config.Config) (*Resolver, error) {
	if len(cfg.Assignment.StandardSalesReps) == 0 {
		return nil, fmt.Errorf("standard sales rep pool must not be empty")
	}
	return &Resolver{cfg: cfg}, nil
}

// Resolve maps a routing-type token to a representative. Unknown tokens
// are treated as literal rep identifiers so a rules file can assign a
// specific person directly.
func (r *Resolver) Resolve(routingType string, lead models.LeadInput) string {
	switch routingType {
	case TokenEmergencyDispatcher:
		return r.cfg.Assignment.EmergencyDispatcher
	case TokenSeniorSalesRep:
		return r.cfg.Assignment.SeniorSalesRep
	case TokenCommercialSpecialist:
		return r.cfg.Assignment.CommercialSpecialist
	case TokenGeneralSales:
		return r.nextStandardRep()
	default:
		return routingType
	}
}

// ByConfig determines a representative from emergency/high-value/
// property-type/score signals alone. It is the fallback used when no
// rule action assigned a rep, and it never touches the round-robin
// cursor.
func (r *Resolver) ByConfig(lead models.LeadInput, score int, priority models.LeadPriority) string {
	if priority == models.PriorityEmergency {
		return r.cfg.Assignment.EmergencyDispatcher
	}

	if lead.PropertyType == models.PropertyCommercial && r.cfg.HighValue.CommercialPropertyBonus {
		return r.cfg.Assignment.CommercialSpecialist
	}

	if r.isHighValue(lead) || priority == models.PriorityHigh {
		return r.cfg.Assignment.SeniorSalesRep
	}

	return r.cfg.Assignment.StandardSalesReps[0]
}

func (r *Resolver) isHighValue(lead models.LeadInput) bool {
	if lead.MidpointEstimate() >= r.cfg.HighValue.EstimateAmount {
		return true
	}
	if len(lead.Services) >= r.cfg.HighValue.MultipleServicesThreshold {
		return true
	}
	if lead.SquareFootage != nil && *lead.SquareFootage >= r.cfg.HighValue.LargeSquareFootageThreshold {
		return true
	}
	return false
}

// nextStandardRep advances the round-robin cursor (mod pool size) and
// returns the rep at the previous position
func (r *Resolver) nextStandardRep() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := r.cfg.Assignment.StandardSalesReps
	rep := pool[r.cursor%len(pool)]
	r.cursor = (r.cursor + 1) % len(pool)
	return rep
}
