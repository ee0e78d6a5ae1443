package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
	"github.com/gyaneshwarpardhi/crmrelay/internal/render"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

var (
	eastern = time.FixedZone("EST", -5*3600)
	fixedAt = time.Date(2026, 10, 15, 19, 4, 5, 0, time.UTC)
)

func makeEvent(kind event.Kind, payload map[string]any) *event.Event {
	return &event.Event{ID: "test-evt", Kind: kind, ReceivedAt: fixedAt, Payload: payload}
}

// texts flattens every text fragment of a block.
func texts(b slack.Block) []string {
	var out []string
	if b.Text != nil {
		out = append(out, b.Text.Text)
	}
	for _, f := range b.Fields {
		out = append(out, f.Text)
	}
	for _, e := range b.Elements {
		out = append(out, e.Text)
	}
	return out
}

func findText(msg slack.Message, prefix string) (string, bool) {
	for _, b := range msg.Blocks {
		for _, s := range texts(b) {
			if strings.HasPrefix(s, prefix) {
				return s, true
			}
		}
	}
	return "", false
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"1234.5":      "$1,234.5",
		"2497":        "$2,497",
		"1234567.891": "$1,234,567.891",
		"12.5kg":      "$12.5",
		"abc":         "$abc",
		"-1500":       "$-1,500",
	}
	for in, want := range cases {
		if got := render.FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	got := render.Timestamp(fixedAt, eastern)
	if got != "10/15/2026, 2:04:05 PM" {
		t.Errorf("Timestamp = %q", got)
	}
}

func TestCheckout_MinimalPayload(t *testing.T) {
	msg := render.NewCheckout(eastern, "ET").Render(makeEvent(event.KindAbandonedCheckout, map[string]any{}), fixedAt)

	if len(msg.Blocks) != 4 {
		t.Fatalf("expected 4 blocks (header, 2 sections, context), got %d", len(msg.Blocks))
	}
	if msg.Blocks[0].Type != "header" || msg.Blocks[0].Text.Text != "🛒 Abandoned Checkout Alert" {
		t.Errorf("header = %+v", msg.Blocks[0])
	}
	if s, _ := findText(msg, "*Name:*"); s != "*Name:*\nUnknown " {
		t.Errorf("name field = %q", s)
	}
	if s, _ := findText(msg, "*Package Interest:*"); s != "*Package Interest:*\nNot specified" {
		t.Errorf("interest field = %q", s)
	}
	if _, ok := findText(msg, "*Cart Value:*"); ok {
		t.Error("cart block should be omitted when product and cart value are absent")
	}
	last := msg.Blocks[len(msg.Blocks)-1]
	if last.Type != "context" || last.Elements[0].Text != "Abandoned at: 10/15/2026, 2:04:05 PM ET" {
		t.Errorf("footer = %+v", last)
	}
}

func TestCheckout_ProductWithoutCartValue(t *testing.T) {
	msg := render.NewCheckout(eastern, "ET").Render(makeEvent(event.KindAbandonedCheckout, map[string]any{
		"product_name": "Gold Course",
	}), fixedAt)
	if s, _ := findText(msg, "*Cart Value:*"); s != "*Cart Value:*\nN/A" {
		t.Errorf("cart value = %q, want N/A", s)
	}
	if s, _ := findText(msg, "*Product:*"); s != "*Product:*\nGold Course" {
		t.Errorf("product = %q", s)
	}
}

func TestCheckout_CartValueGrouped(t *testing.T) {
	msg := render.NewCheckout(eastern, "ET").Render(makeEvent(event.KindAbandonedCheckout, map[string]any{
		"amount": 1234.5,
	}), fixedAt)
	if s, _ := findText(msg, "*Cart Value:*"); s != "*Cart Value:*\n$1,234.5" {
		t.Errorf("cart value = %q", s)
	}
	if s, _ := findText(msg, "*Product:*"); s != "*Product:*\nN/A" {
		t.Errorf("product = %q", s)
	}
}

func TestPurchase_FullPayload(t *testing.T) {
	msg := render.NewPurchase(eastern, "ET").Render(makeEvent(event.KindPurchase, map[string]any{
		"contact": map[string]any{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"tags":       []any{"VIP Purchased"},
		},
		"amount":   1234.5,
		"order_id": "ord_42",
	}), fixedAt)

	wantTypes := []string{"header", "section", "divider", "section", "section", "section", "context", "context"}
	if len(msg.Blocks) != len(wantTypes) {
		t.Fatalf("expected %d blocks, got %d", len(wantTypes), len(msg.Blocks))
	}
	for i, typ := range wantTypes {
		if msg.Blocks[i].Type != typ {
			t.Errorf("block %d type = %q, want %q", i, msg.Blocks[i].Type, typ)
		}
	}
	if msg.Blocks[1].Text.Text != "*Ada Lovelace* just made a purchase!" {
		t.Errorf("lead = %q", msg.Blocks[1].Text.Text)
	}
	if s, _ := findText(msg, "*Amount:*"); s != "*Amount:*\n$1,234.5" {
		t.Errorf("amount = %q", s)
	}
	if s, _ := findText(msg, "*Package/Product:*"); s != "*Package/Product:*\nVIP Package ($2,497)" {
		t.Errorf("package = %q", s)
	}
	if s, _ := findText(msg, "*Status:*"); s != "*Status:*\n✅ Completed" {
		t.Errorf("status = %q", s)
	}
	if s, _ := findText(msg, "Order ID:"); s != "Order ID: ord_42" {
		t.Errorf("order id = %q", s)
	}
	if s, _ := findText(msg, "Purchase completed:"); s != "Purchase completed: 10/15/2026, 2:04:05 PM ET" {
		t.Errorf("footer = %q", s)
	}
}

func TestPurchase_OmitsEmptyOrderBlocks(t *testing.T) {
	msg := render.NewPurchase(eastern, "ET").Render(makeEvent(event.KindPurchase, map[string]any{}), fixedAt)
	if len(msg.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %d", len(msg.Blocks))
	}
	if _, ok := findText(msg, "Order ID:"); ok {
		t.Error("order id context should be omitted")
	}
	if _, ok := findText(msg, "*Amount:*"); ok {
		t.Error("amount field should be omitted")
	}
}

func TestPurchase_AmountOnly(t *testing.T) {
	msg := render.NewPurchase(eastern, "ET").Render(makeEvent(event.KindPurchase, map[string]any{
		"total": "2497",
	}), fixedAt)
	var order *slack.Block
	for i := range msg.Blocks {
		if s := texts(msg.Blocks[i]); len(s) > 0 && strings.HasPrefix(s[0], "*Amount:*") {
			order = &msg.Blocks[i]
		}
	}
	if order == nil || len(order.Fields) != 1 || order.Fields[0].Text != "*Amount:*\n$2,497" {
		t.Errorf("order block = %+v", order)
	}
}

func TestAssignedRepRendered(t *testing.T) {
	msg := render.NewCheckout(eastern, "ET").Render(makeEvent(event.KindAbandonedCheckout, map[string]any{
		"assignedTo": "Sam",
	}), fixedAt)
	if s, _ := findText(msg, "*Assigned Rep:*"); s != "*Assigned Rep:*\nSam" {
		t.Errorf("assigned rep = %q", s)
	}
}

func TestRegistry(t *testing.T) {
	reg := render.Default(eastern, "ET")
	kinds := reg.Kinds()
	if len(kinds) != 2 || kinds[0] != event.KindAbandonedCheckout || kinds[1] != event.KindPurchase {
		t.Errorf("kinds = %v", kinds)
	}
	if _, err := reg.Get("refund"); err == nil {
		t.Error("expected error for unknown kind")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	reg.Register(render.NewPurchase(eastern, "ET"))
}
