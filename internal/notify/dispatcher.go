package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/logger"
	"github.com/checkfox/lead_router/internal/models"
	"github.com/checkfox/lead_router/internal/schedule"
	"github.com/checkfox/lead_router/internal/transport"
)

// ScheduledToken is returned when delivery was deferred rather than
// performed synchronously
const ScheduledToken = "scheduled"

// Dispatcher builds per-priority message content and fans it out across
// the configured channels. Non-emergency leads arriving outside business
// hours are deferred to the next business-hours start. Channel failures
// are logged and swallowed; one channel failing never cancels its
// siblings.
type Dispatcher struct {
	cfg      *config.Config
	location *time.Location
	sms      transport.SMSSender
	chat     transport.ChatSender
	email    transport.EmailSender
	sched    *schedule.Scheduler
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDispatcher creates a notification dispatcher. The configuration
// must already be validated; an unloadable timezone is a deployment
// error surfaced here.
func NewDispatcher(cfg *config.Config, sms transport.SMSSender, chat transport.ChatSender, email transport.EmailSender, sched *schedule.Scheduler) (*Dispatcher, error) {
	location, err := cfg.BusinessHours.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid business hours timezone: %w", err)
	}

	return &Dispatcher{
		cfg:      cfg,
		location: location,
		sms:      sms,
		chat:     chat,
		email:    email,
		sched:    sched,
		now:      time.Now,
		pending:  make(map[string]struct{}),
	}, nil
}

// WithClock overrides the dispatcher's time source. Intended for tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Dispatch delivers or schedules notifications for one processed lead.
// With a zero resolved delay it sends synchronously and returns the
// concrete channel tokens attempted; otherwise it defers delivery and
// returns the single "scheduled" token immediately. Callers must not
// block on scheduled work.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.NotificationRequest) []string {
	policy := d.policyFor(req.Priority)
	delay := policy.Delay

	now := d.now().In(d.location)
	if req.Priority != models.PriorityEmergency && !d.withinBusinessHours(now) {
		delay = d.nextBusinessOpen(now).Sub(now)
		logger.Info(ctx, "Outside business hours, deferring notification",
			"deal_id", req.DealID,
			"delay", delay.String())
	}

	if delay <= 0 {
		return d.sendNow(ctx, policy.Channels, req)
	}

	// Holding d.mu across Schedule guarantees the fired callback, which
	// reacquires d.mu, observes the assigned task id.
	d.mu.Lock()
	var taskID string
	taskID = d.sched.Schedule(delay, func() {
		// Scheduled sends outlive the originating request context.
		d.sendNow(context.Background(), policy.Channels, req)
		d.mu.Lock()
		delete(d.pending, taskID)
		d.mu.Unlock()
	})
	if taskID == "" {
		d.mu.Unlock()
		logger.Warn(ctx, "Scheduler stopped, dropping deferred notification", "deal_id", req.DealID)
		return nil
	}
	d.pending[taskID] = struct{}{}
	d.mu.Unlock()

	logger.Info(ctx, "Notification scheduled",
		"deal_id", req.DealID,
		"task_id", taskID,
		"delay", delay.String())
	return []string{ScheduledToken}
}

// Pending returns the number of deferred notifications not yet sent
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close cancels all deferred notifications. Used on shutdown; there is
// no durable queue, so anything pending is dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	ids := make([]string, 0, len(d.pending))
	for id := range d.pending {
		ids = append(ids, id)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	for _, id := range ids {
		d.sched.Cancel(id)
	}
}

// sendNow fans out across channels best-effort. Every attempted channel
// token is returned; per-channel failures are logged and swallowed.
func (d *Dispatcher) sendNow(ctx context.Context, channels []string, req models.NotificationRequest) []string {
	tmpl := templateFor(req.Priority)
	attempted := make([]string, 0, len(channels))

	for _, channel := range channels {
		var err error
		switch channel {
		case "sms":
			body := TruncateSMS(renderTemplate(tmpl.Body, req))
			err = d.sms.SendSMS(ctx, d.cfg.Notifications.SMSRecipients, body)
		case "chat":
			err = d.chat.SendChatMessage(ctx, d.cfg.Notifications.ChatChannel, d.buildChatMessage(tmpl, req))
		case "email":
			subject := renderTemplate(tmpl.Subject, req)
			err = d.email.SendEmail(ctx, d.cfg.Notifications.EmailRecipients, subject, buildEmailHTML(req))
		default:
			logger.Warn(ctx, "Unknown notification channel configured", "channel", channel)
			continue
		}

		if err != nil {
			logger.LogError(ctx, "Notification channel delivery failed", err,
				"channel", channel,
				"deal_id", req.DealID)
		}
		attempted = append(attempted, channel)
	}

	return attempted
}

func (d *Dispatcher) buildChatMessage(tmpl messageTemplate, req models.NotificationRequest) transport.ChatMessage {
	return transport.ChatMessage{
		Title: renderTemplate(tmpl.Subject, req),
		Fields: []transport.ChatField{
			{Label: "Deal", Value: req.DealID},
			{Label: "Priority", Value: string(req.Priority)},
			{Label: "Customer", Value: req.CustomerName},
			{Label: "Score", Value: strconv.Itoa(req.LeadScore)},
			{Label: "Estimate", Value: req.EstimateRange},
			{Label: "Services", Value: strings.Join(req.Services, ", ")},
		},
		Actions: []transport.ChatAction{
			{Label: "View deal", URL: d.cfg.Notifications.DealLinkBase + req.DealID},
		},
	}
}

func (d *Dispatcher) policyFor(priority models.LeadPriority) config.ChannelPolicy {
	switch priority {
	case models.PriorityEmergency:
		return d.cfg.Notifications.Emergency
	case models.PriorityHigh:
		return d.cfg.Notifications.HighValue
	default:
		return d.cfg.Notifications.Standard
	}
}

func (d *Dispatcher) withinBusinessHours(t time.Time) bool {
	if !d.isWorkDay(t.Weekday()) {
		return false
	}
	hour := t.Hour()
	return hour >= d.cfg.BusinessHours.StartHour && hour < d.cfg.BusinessHours.EndHour
}

// nextBusinessOpen returns the next work-day start at or after t
func (d *Dispatcher) nextBusinessOpen(t time.Time) time.Time {
	for offset := 0; offset <= 7; offset++ {
		day := t.AddDate(0, 0, offset)
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			d.cfg.BusinessHours.StartHour, 0, 0, 0, d.location)
		if candidate.After(t) && d.isWorkDay(candidate.Weekday()) {
			return candidate
		}
	}
	// Unreachable with a validated config (work days non-empty)
	return t
}

func (d *Dispatcher) isWorkDay(day time.Weekday) bool {
	for _, workDay := range d.cfg.BusinessHours.WorkDays {
		if workDay == day {
			return true
		}
	}
	return false
}
