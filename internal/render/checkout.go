package render

import (
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
	"github.com/gyaneshwarpardhi/crmrelay/internal/extract"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

// CheckoutRenderer renders abandoned-checkout alerts.
type CheckoutRenderer struct {
	loc   *time.Location
	label string
}

func NewCheckout(loc *time.Location, zoneLabel string) *CheckoutRenderer {
	return &CheckoutRenderer{loc: loc, label: zoneLabel}
}

func (r *CheckoutRenderer) Kind() event.Kind { return event.KindAbandonedCheckout }

func (r *CheckoutRenderer) Acknowledgement() string {
	return "Abandoned checkout alert sent to Slack"
}

func (r *CheckoutRenderer) Render(ev *event.Event, now time.Time) slack.Message {
	return r.render(extract.Checkout(ev.Payload), now)
}

func (r *CheckoutRenderer) render(d extract.CheckoutDetail, now time.Time) slack.Message {
	c := d.Contact
	interest := d.PackageInterest
	if interest == "" {
		interest = "Not specified"
	}

	var msg slack.Message
	msg.Add(
		slack.Header("🛒 Abandoned Checkout Alert"),
		slack.Section(
			slack.Field("Name", c.FullName()),
			slack.Field("Email", c.Email),
		),
		slack.Section(
			slack.Field("Phone", c.Phone),
			slack.Field("Package Interest", interest),
		),
	)

	if d.CartValue != "" || d.ProductName != "" {
		msg.Add(slack.Section(
			slack.Field("Product", orNA(d.ProductName)),
			slack.Field("Cart Value", amountOrNA(d.CartValue)),
		))
	}
	if d.AssignedRep != "" {
		msg.Add(slack.Section(slack.Field("Assigned Rep", d.AssignedRep)))
	}

	msg.Add(slack.Context(footer("Abandoned at", now, r.loc, r.label)))
	return msg
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func amountOrNA(raw string) string {
	if raw == "" {
		return "N/A"
	}
	return FormatAmount(raw)
}

func footer(prefix string, now time.Time, loc *time.Location, label string) string {
	s := prefix + ": " + Timestamp(now, loc)
	if label != "" {
		s += " " + label
	}
	return s
}
