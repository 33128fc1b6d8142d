package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all routing configuration. It is constructed once at
// process start and treated as immutable thereafter; components receive
// it by reference and never mutate it across requests.
type Config struct {
	API           APIConfig
	HighValue     HighValueConfig
	Emergency     EmergencyConfig
	Assignment    AssignmentConfig
	Notifications NotificationsConfig
	BusinessHours BusinessHoursConfig
	Scoring       ScoringConfig
	RulesFile     string
	Logging       LoggingConfig
}

// APIConfig holds API server settings
type APIConfig struct {
	Port string
	Host string
}

// HighValueConfig holds thresholds that mark a lead as high value
type HighValueConfig struct {
	EstimateAmount              float64
	CommercialPropertyBonus     bool
	MultipleServicesThreshold   int
	LargeSquareFootageThreshold float64
}

// EmergencyConfig holds the emergency detection lists
type EmergencyConfig struct {
	ServiceTypes    []string
	UrgentKeywords  []string
	UrgentTimelines []string
}

// AssignmentConfig declares the identities abstract routing-type tokens
// resolve to
type AssignmentConfig struct {
	EmergencyDispatcher  string
	SeniorSalesRep       string
	CommercialSpecialist string
	StandardSalesReps    []string
}

// ChannelPolicy pairs a channel set with a base dispatch delay
type ChannelPolicy struct {
	Channels []string
	Delay    time.Duration
}

// NotificationsConfig holds per-tier channel policies and delivery targets
type NotificationsConfig struct {
	Emergency       ChannelPolicy
	HighValue       ChannelPolicy
	Standard        ChannelPolicy
	SMSRecipients   []string
	EmailRecipients []string
	ChatChannel     string
	DealLinkBase    string
}

// BusinessHoursConfig holds the work-day/hour window outside of which
// non-emergency notifications are deferred
type BusinessHoursConfig struct {
	Timezone  string
	WorkDays  []time.Weekday
	StartHour int
	EndHour   int
}

// Location resolves the configured timezone
func (b BusinessHoursConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// PriorityThresholds holds the score cutoffs for non-emergency priorities
type PriorityThresholds struct {
	High   int
	Medium int
	Low    int
}

// ScoringConfig holds scoring inputs that are configuration, not code
type ScoringConfig struct {
	PremiumLocationKeywords []string
	PriorityThresholds      PriorityThresholds
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Default returns the built-in configuration used when no environment
// overrides are present
func Default() *Config {
	return &Config{
		API: APIConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
		HighValue: HighValueConfig{
			EstimateAmount:              15000,
			CommercialPropertyBonus:     true,
			MultipleServicesThreshold:   3,
			LargeSquareFootageThreshold: 4000,
		},
		Emergency: EmergencyConfig{
			ServiceTypes:    []string{"storm_damage", "leak_repair", "emergency_tarp"},
			UrgentKeywords:  []string{"urgent", "emergency", "leak", "leaking", "flood", "collapse", "immediate"},
			UrgentTimelines: []string{"asap", "immediately"},
		},
		Assignment: AssignmentConfig{
			EmergencyDispatcher:  "dispatch@example.com",
			SeniorSalesRep:       "senior.rep@example.com",
			CommercialSpecialist: "commercial.rep@example.com",
			StandardSalesReps:    []string{"rep1@example.com", "rep2@example.com", "rep3@example.com"},
		},
		Notifications: NotificationsConfig{
			Emergency: ChannelPolicy{
				Channels: []string{"sms", "chat", "email"},
				Delay:    0,
			},
			HighValue: ChannelPolicy{
				Channels: []string{"chat", "email"},
				Delay:    5 * time.Minute,
			},
			Standard: ChannelPolicy{
				Channels: []string{"email"},
				Delay:    30 * time.Minute,
			},
			SMSRecipients:   []string{"+15550100000"},
			EmailRecipients: []string{"sales@example.com"},
			ChatChannel:     "#sales-leads",
			DealLinkBase:    "https://crm.example.com/deals/",
		},
		BusinessHours: BusinessHoursConfig{
			Timezone: "America/Chicago",
			WorkDays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			},
			StartHour: 8,
			EndHour:   18,
		},
		Scoring: ScoringConfig{
			PremiumLocationKeywords: []string{"premium", "hills", "estates", "lakefront", "downtown"},
			PriorityThresholds: PriorityThresholds{
				High:   80,
				Medium: 50,
				Low:    0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds configuration from defaults, a .env file if present, and
// environment variable overrides, then validates it.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()

	cfg.API.Port = getEnv("API_PORT", cfg.API.Port)
	cfg.API.Host = getEnv("API_HOST", cfg.API.Host)

	cfg.HighValue.EstimateAmount = parseFloat(getEnv("HIGH_VALUE_ESTIMATE_AMOUNT", ""), cfg.HighValue.EstimateAmount)
	cfg.HighValue.CommercialPropertyBonus = parseBool(getEnv("HIGH_VALUE_COMMERCIAL_BONUS", "true"))
	cfg.HighValue.MultipleServicesThreshold = parseInt(getEnv("HIGH_VALUE_SERVICES_THRESHOLD", ""), cfg.HighValue.MultipleServicesThreshold)
	cfg.HighValue.LargeSquareFootageThreshold = parseFloat(getEnv("HIGH_VALUE_SQFT_THRESHOLD", ""), cfg.HighValue.LargeSquareFootageThreshold)

	cfg.Emergency.ServiceTypes = parseList(getEnv("EMERGENCY_SERVICE_TYPES", ""), cfg.Emergency.ServiceTypes)
	cfg.Emergency.UrgentKeywords = parseList(getEnv("EMERGENCY_URGENT_KEYWORDS", ""), cfg.Emergency.UrgentKeywords)
	cfg.Emergency.UrgentTimelines = parseList(getEnv("EMERGENCY_URGENT_TIMELINES", ""), cfg.Emergency.UrgentTimelines)

	cfg.Assignment.EmergencyDispatcher = getEnv("ASSIGN_EMERGENCY_DISPATCHER", cfg.Assignment.EmergencyDispatcher)
	cfg.Assignment.SeniorSalesRep = getEnv("ASSIGN_SENIOR_SALES_REP", cfg.Assignment.SeniorSalesRep)
	cfg.Assignment.CommercialSpecialist = getEnv("ASSIGN_COMMERCIAL_SPECIALIST", cfg.Assignment.CommercialSpecialist)
	cfg.Assignment.StandardSalesReps = parseList(getEnv("ASSIGN_STANDARD_SALES_REPS", ""), cfg.Assignment.StandardSalesReps)

	cfg.Notifications.Emergency.Delay = parseDuration(getEnv("NOTIFY_EMERGENCY_DELAY", ""), cfg.Notifications.Emergency.Delay)
	cfg.Notifications.HighValue.Delay = parseDuration(getEnv("NOTIFY_HIGH_VALUE_DELAY", ""), cfg.Notifications.HighValue.Delay)
	cfg.Notifications.Standard.Delay = parseDuration(getEnv("NOTIFY_STANDARD_DELAY", ""), cfg.Notifications.Standard.Delay)
	cfg.Notifications.Emergency.Channels = parseList(getEnv("NOTIFY_EMERGENCY_CHANNELS", ""), cfg.Notifications.Emergency.Channels)
	cfg.Notifications.HighValue.Channels = parseList(getEnv("NOTIFY_HIGH_VALUE_CHANNELS", ""), cfg.Notifications.HighValue.Channels)
	cfg.Notifications.Standard.Channels = parseList(getEnv("NOTIFY_STANDARD_CHANNELS", ""), cfg.Notifications.Standard.Channels)
	cfg.Notifications.SMSRecipients = parseList(getEnv("NOTIFY_SMS_RECIPIENTS", ""), cfg.Notifications.SMSRecipients)
	cfg.Notifications.EmailRecipients = parseList(getEnv("NOTIFY_EMAIL_RECIPIENTS", ""), cfg.Notifications.EmailRecipients)
	cfg.Notifications.ChatChannel = getEnv("NOTIFY_CHAT_CHANNEL", cfg.Notifications.ChatChannel)
	cfg.Notifications.DealLinkBase = getEnv("NOTIFY_DEAL_LINK_BASE", cfg.Notifications.DealLinkBase)

	cfg.BusinessHours.Timezone = getEnv("BUSINESS_HOURS_TIMEZONE", cfg.BusinessHours.Timezone)
	cfg.BusinessHours.StartHour = parseInt(getEnv("BUSINESS_HOURS_START", ""), cfg.BusinessHours.StartHour)
	cfg.BusinessHours.EndHour = parseInt(getEnv("BUSINESS_HOURS_END", ""), cfg.BusinessHours.EndHour)
	if days := getEnv("BUSINESS_HOURS_WORK_DAYS", ""); days != "" {
		parsed, err := parseWeekdays(days)
		if err != nil {
			return nil, fmt.Errorf("invalid BUSINESS_HOURS_WORK_DAYS: %w", err)
		}
		cfg.BusinessHours.WorkDays = parsed
	}

	cfg.Scoring.PremiumLocationKeywords = parseList(getEnv("SCORING_PREMIUM_LOCATION_KEYWORDS", ""), cfg.Scoring.PremiumLocationKeywords)
	cfg.Scoring.PriorityThresholds.High = parseInt(getEnv("SCORING_THRESHOLD_HIGH", ""), cfg.Scoring.PriorityThresholds.High)
	cfg.Scoring.PriorityThresholds.Medium = parseInt(getEnv("SCORING_THRESHOLD_MEDIUM", ""), cfg.Scoring.PriorityThresholds.Medium)

	cfg.RulesFile = getEnv("ROUTING_RULES_FILE", "")

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks deployment-level invariants. Violations here are
// programming/deployment errors and fail at startup, never per lead.
func (c *Config) Validate() error {
	if len(c.Assignment.StandardSalesReps) == 0 {
		return fmt.Errorf("assignment standard sales rep pool must not be empty")
	}
	if c.Assignment.EmergencyDispatcher == "" {
		return fmt.Errorf("assignment emergency dispatcher is required")
	}
	if c.Assignment.SeniorSalesRep == "" {
		return fmt.Errorf("assignment senior sales rep is required")
	}
	if c.Assignment.CommercialSpecialist == "" {
		return fmt.Errorf("assignment commercial specialist is required")
	}

	if c.BusinessHours.StartHour < 0 || c.BusinessHours.StartHour > 23 {
		return fmt.Errorf("business hours start hour %d out of range", c.BusinessHours.StartHour)
	}
	if c.BusinessHours.EndHour < 1 || c.BusinessHours.EndHour > 24 {
		return fmt.Errorf("business hours end hour %d out of range", c.BusinessHours.EndHour)
	}
	if c.BusinessHours.StartHour >= c.BusinessHours.EndHour {
		return fmt.Errorf("business hours start %d must be before end %d",
			c.BusinessHours.StartHour, c.BusinessHours.EndHour)
	}
	if len(c.BusinessHours.WorkDays) == 0 {
		return fmt.Errorf("business hours work days must not be empty")
	}
	if _, err := c.BusinessHours.Location(); err != nil {
		return fmt.Errorf("invalid business hours timezone %q: %w", c.BusinessHours.Timezone, err)
	}

	for tier, policy := range map[string]ChannelPolicy{
		"emergency": c.Notifications.Emergency,
		"highValue": c.Notifications.HighValue,
		"standard":  c.Notifications.Standard,
	} {
		if policy.Delay < 0 {
			return fmt.Errorf("notification delay for %s tier must not be negative", tier)
		}
		if len(policy.Channels) == 0 {
			return fmt.Errorf("notification channel set for %s tier must not be empty", tier)
		}
	}

	if c.Scoring.PriorityThresholds.High <= c.Scoring.PriorityThresholds.Medium {
		return fmt.Errorf("scoring high threshold %d must be above medium threshold %d",
			c.Scoring.PriorityThresholds.High, c.Scoring.PriorityThresholds.Medium)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	var result int
	_, err := fmt.Sscanf(value, "%d", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

func parseFloat(value string, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}
	var result float64
	_, err := fmt.Sscanf(value, "%g", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

func parseBool(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}

func parseList(value string, defaultValue []string) []string {
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(value string) ([]time.Weekday, error) {
	parts := strings.Split(value, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		out = append(out, day)
	}
	return out, nil
}
