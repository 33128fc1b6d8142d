package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/checkfox/lead_router/internal/models"
)

// messageTemplate holds the subject/body pair for one priority tier.
// Placeholders are substituted by simple string replacement.
type messageTemplate struct {
	Subject string
	Body    string
}

var tierTemplates = map[models.LeadPriority]messageTemplate{
	models.PriorityEmergency: {
		Subject: "EMERGENCY lead: {customer_name} at {address}",
		Body: "Emergency lead needs immediate dispatch. Customer: {customer_name}, " +
			"phone: {phone}, address: {address}. Services: {services}. " +
			"Estimate: {estimate_range}. Score: {lead_score}.",
	},
	models.PriorityHigh: {
		Subject: "High-value lead: {customer_name} ({estimate_range})",
		Body: "High-value lead received. Customer: {customer_name}, phone: {phone}, " +
			"address: {address}. Services: {services}. Estimate: {estimate_range}. " +
			"Score: {lead_score}.",
	},
}

// defaultTemplate covers medium and low priorities
var defaultTemplate = messageTemplate{
	Subject: "New estimate request from {customer_name}",
	Body: "New estimate request. Customer: {customer_name}, address: {address}. " +
		"Services: {services}. Estimate: {estimate_range}. Score: {lead_score}.",
}

func templateFor(priority models.LeadPriority) messageTemplate {
	if tmpl, ok := tierTemplates[priority]; ok {
		return tmpl
	}
	return defaultTemplate
}

// renderTemplate substitutes the request's fields into a template string
func renderTemplate(tmpl string, req models.NotificationRequest) string {
	replacer := strings.NewReplacer(
		"{customer_name}", req.CustomerName,
		"{address}", req.Address,
		"{estimate_range}", req.EstimateRange,
		"{phone}", req.CustomerPhone,
		"{services}", strings.Join(req.Services, ", "),
		"{lead_score}", strconv.Itoa(req.LeadScore),
	)
	return replacer.Replace(tmpl)
}

// buildEmailHTML renders the HTML document sent on the email channel
func buildEmailHTML(req models.NotificationRequest) string {
	rows := [][2]string{
		{"Deal", req.DealID},
		{"Priority", string(req.Priority)},
		{"Customer", req.CustomerName},
		{"Email", req.CustomerEmail},
		{"Phone", req.CustomerPhone},
		{"Address", req.Address},
		{"Estimate", req.EstimateRange},
		{"Services", strings.Join(req.Services, ", ")},
		{"Lead score", strconv.Itoa(req.LeadScore)},
		{"Assigned rep", req.AssignedRep},
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>%s</h2>", htmlEscape(renderTemplate(templateFor(req.Priority).Subject, req))))
	b.WriteString("<table>")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>",
			htmlEscape(row[0]), htmlEscape(row[1])))
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
