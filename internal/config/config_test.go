package config

import (
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty standard rep pool", func(c *Config) { c.Assignment.StandardSalesReps = nil }},
		{"missing emergency dispatcher", func(c *Config) { c.Assignment.EmergencyDispatcher = "" }},
		{"missing senior rep", func(c *Config) { c.Assignment.SeniorSalesRep = "" }},
		{"missing commercial specialist", func(c *Config) { c.Assignment.CommercialSpecialist = "" }},
		{"start hour out of range", func(c *Config) { c.BusinessHours.StartHour = -1 }},
		{"end hour out of range", func(c *Config) { c.BusinessHours.EndHour = 25 }},
		{"start not before end", func(c *Config) {
			c.BusinessHours.StartHour = 18
			c.BusinessHours.EndHour = 8
		}},
		{"no work days", func(c *Config) { c.BusinessHours.WorkDays = nil }},
		{"bad timezone", func(c *Config) { c.BusinessHours.Timezone = "Mars/Olympus_Mons" }},
		{"negative delay", func(c *Config) { c.Notifications.Standard.Delay = -time.Minute }},
		{"empty channel set", func(c *Config) { c.Notifications.Emergency.Channels = nil }},
		{"inverted thresholds", func(c *Config) {
			c.Scoring.PriorityThresholds.High = 40
			c.Scoring.PriorityThresholds.Medium = 50
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("ASSIGN_STANDARD_SALES_REPS", "a@example.com, b@example.com")
	t.Setenv("BUSINESS_HOURS_START", "9")
	t.Setenv("NOTIFY_STANDARD_DELAY", "45m")
	t.Setenv("SCORING_THRESHOLD_HIGH", "85")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Assignment.StandardSalesReps) != 2 || cfg.Assignment.StandardSalesReps[0] != "a@example.com" {
		t.Errorf("StandardSalesReps = %v", cfg.Assignment.StandardSalesReps)
	}
	if cfg.BusinessHours.StartHour != 9 {
		t.Errorf("StartHour = %d, want 9", cfg.BusinessHours.StartHour)
	}
	if cfg.Notifications.Standard.Delay != 45*time.Minute {
		t.Errorf("Standard.Delay = %v, want 45m", cfg.Notifications.Standard.Delay)
	}
	if cfg.Scoring.PriorityThresholds.High != 85 {
		t.Errorf("PriorityThresholds.High = %d, want 85", cfg.Scoring.PriorityThresholds.High)
	}
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("mon,tue, Friday")
	if err != nil {
		t.Fatalf("parseWeekdays() error = %v", err)
	}
	want := []time.Weekday{time.Monday, time.Tuesday, time.Friday}
	if len(days) != len(want) {
		t.Fatalf("parseWeekdays() = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("parseWeekdays()[%d] = %v, want %v", i, days[i], want[i])
		}
	}

	if _, err := parseWeekdays("mon,noday"); err == nil {
		t.Error("parseWeekdays(noday) = nil error, want error")
	}
}

func TestParseHelpers(t *testing.T) {
	if got := parseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("parseDuration(90s) = %v", got)
	}
	if got := parseDuration("garbage", time.Minute); got != time.Minute {
		t.Errorf("parseDuration(garbage) = %v, want default", got)
	}
	if got := parseInt("7", 3); got != 7 {
		t.Errorf("parseInt(7) = %d", got)
	}
	if got := parseInt("x", 3); got != 3 {
		t.Errorf("parseInt(x) = %d, want default", got)
	}
	if got := parseFloat("2500.5", 1); got != 2500.5 {
		t.Errorf("parseFloat(2500.5) = %v", got)
	}
	if got := parseList("a, b ,,c", nil); len(got) != 3 || got[1] != "b" {
		t.Errorf("parseList() = %v", got)
	}
	if got := parseList("", []string{"default"}); len(got) != 1 {
		t.Errorf("parseList(empty) = %v, want default", got)
	}
}
