package render

import (
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
	"github.com/gyaneshwarpardhi/crmrelay/internal/extract"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

// PurchaseRenderer renders completed-purchase alerts.
type PurchaseRenderer struct {
	loc   *time.Location
	label string
}

func NewPurchase(loc *time.Location, zoneLabel string) *PurchaseRenderer {
	return &PurchaseRenderer{loc: loc, label: zoneLabel}
}

func (r *PurchaseRenderer) Kind() event.Kind { return event.KindPurchase }

func (r *PurchaseRenderer) Acknowledgement() string { return "Purchase alert sent to Slack" }

func (r *PurchaseRenderer) Render(ev *event.Event, now time.Time) slack.Message {
	return r.render(extract.PurchaseFrom(ev.Payload), now)
}

func (r *PurchaseRenderer) render(d extract.PurchaseDetail, now time.Time) slack.Message {
	c := d.Contact

	var msg slack.Message
	msg.Add(
		slack.Header("💰 New Purchase Alert!"),
		slack.SectionText("*"+c.FullName()+"* just made a purchase!"),
		slack.Divider(),
		slack.Section(
			slack.Field("Customer", c.FullName()),
			slack.Field("Email", c.Email),
		),
		slack.Section(
			slack.Field("Phone", c.Phone),
			slack.Field("Status", "✅ "+d.PaymentStatus),
		),
	)

	var order []slack.Text
	if pkg := firstNonEmpty(d.PackagePurchased, d.ProductName); pkg != "" {
		order = append(order, slack.Field("Package/Product", pkg))
	}
	if d.OrderAmount != "" {
		order = append(order, slack.Field("Amount", FormatAmount(d.OrderAmount)))
	}
	if len(order) > 0 {
		msg.Add(slack.Section(order...))
	}
	if d.AssignedRep != "" {
		msg.Add(slack.Section(slack.Field("Assigned Rep", d.AssignedRep)))
	}
	if d.OrderID != "" {
		msg.Add(slack.Context("Order ID: " + d.OrderID))
	}

	msg.Add(slack.Context(footer("Purchase completed", now, r.loc, r.label)))
	return msg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
