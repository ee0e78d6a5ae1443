package extract

import (
	"fmt"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
)

// Field names a logical value extracted from a payload.
type Field string

const (
	FieldFirstName     Field = "first_name"
	FieldLastName      Field = "last_name"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldTags          Field = "tags"
	FieldAssignedRep   Field = "assigned_rep"
	FieldCartValue     Field = "cart_value"
	FieldProductName   Field = "product_name"
	FieldOrderAmount   Field = "order_amount"
	FieldOrderID       Field = "order_id"
	FieldPaymentStatus Field = "payment_status"
)

// Schema is the fallback table for one payload variant.
type Schema struct {
	Kind       event.Kind
	Chains     map[Field]Chain
	Classifier Classifier
}

// Chain returns the fallback chain for f; unknown fields resolve to nothing.
func (s Schema) Chain(f Field) Chain {
	return s.Chains[f]
}

// Resolve returns f as text, or its default when no candidate is present.
func (s Schema) Resolve(d Document, f Field) (string, bool) {
	return s.Chain(f).Resolve(d)
}

// Package classifies the payload's tags, falling back to product.
// A tags value that is not an array contributes no tags.
func (s Schema) Package(d Document, product string) (string, bool) {
	var tags []string
	if v, ok := s.Chain(FieldTags).Value(d); ok {
		tags, _ = Tags(v)
	}
	return s.Classifier.Classify(tags, product)
}

func contactChains() map[Field]Chain {
	return map[Field]Chain{
		FieldFirstName: {
			Steps:   Steps(Contact("first_name"), Contact("firstName"), Root("first_name"), NamePart{Path: Contact("name")}),
			Default: "Unknown",
		},
		FieldLastName: {
			Steps: Steps(Contact("last_name"), Contact("lastName"), Root("last_name"), NamePart{Path: Contact("name"), Last: true}),
		},
		FieldEmail: {
			Steps:   Steps(Contact("email"), Root("email")),
			Default: "No email provided",
		},
		FieldPhone: {
			Steps:   Steps(Contact("phone"), Contact("phoneNumber"), Root("phone")),
			Default: "No phone provided",
		},
		FieldTags: {
			Steps: Steps(Contact("tags"), Root("tags")),
		},
		FieldAssignedRep: {
			Steps: Steps(Root("assigned_to"), Root("assignedTo"), Contact("assigned_to"), Contact("assignedTo"), Root("assigned_user")),
		},
	}
}

func newSchema(kind event.Kind, c Classifier, extra map[Field]Chain) Schema {
	chains := contactChains()
	for f, ch := range extra {
		chains[f] = ch
	}
	return Schema{Kind: kind, Chains: chains, Classifier: c}
}

// AbandonedCheckout is the schema of checkout-abandonment webhooks.
var AbandonedCheckout = newSchema(event.KindAbandonedCheckout, checkoutInterest, map[Field]Chain{
	FieldCartValue: {
		Steps: Steps(Root("cart_value"), Root("cartValue"), Root("amount"), Contact("cart_value")),
	},
	FieldProductName: {
		Steps: Steps(Root("product_name"), Root("productName"), Root("product")),
	},
})

// Purchase is the schema of completed-purchase webhooks.
var Purchase = newSchema(event.KindPurchase, purchasePackage, map[Field]Chain{
	FieldOrderAmount: {
		Steps: Steps(Root("amount"), Root("order_amount"), Root("orderAmount"), Root("payment_amount"), Root("total")),
	},
	FieldProductName: {
		Steps: Steps(Root("product_name"), Root("productName"), Root("product"), Root("order_name")),
	},
	FieldOrderID: {
		Steps: Steps(Root("order_id"), Root("orderId"), Root("transaction_id"), Root("transactionId")),
	},
	FieldPaymentStatus: {
		Steps:   Steps(Root("payment_status"), Root("paymentStatus"), Root("status")),
		Default: "Completed",
	},
})

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind event.Kind) (Schema, error) {
	switch kind {
	case event.KindAbandonedCheckout:
		return AbandonedCheckout, nil
	case event.KindPurchase:
		return Purchase, nil
	}
	return Schema{}, fmt.Errorf("extract: no schema for kind %q", kind)
}
