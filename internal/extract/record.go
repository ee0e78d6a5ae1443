package extract

// ContactRecord is the canonical contact derived from a payload. Every field has a default.
type ContactRecord struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// FullName joins first and last name with a single space.
func (c ContactRecord) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CheckoutDetail holds abandoned-checkout fields; empty means absent.
type CheckoutDetail struct {
	Contact         ContactRecord
	PackageInterest string
	CartValue       string
	ProductName     string
	AssignedRep     string
}

// PurchaseDetail holds purchase fields; empty means absent except PaymentStatus, which defaults.
type PurchaseDetail struct {
	Contact          ContactRecord
	PackagePurchased string
	OrderAmount      string
	ProductName      string
	OrderID          string
	PaymentStatus    string
	AssignedRep      string
}

// ContactFrom resolves the contact record using s.
func ContactFrom(s Schema, d Document) ContactRecord {
	first, _ := s.Resolve(d, FieldFirstName)
	last, _ := s.Resolve(d, FieldLastName)
	email, _ := s.Resolve(d, FieldEmail)
	phone, _ := s.Resolve(d, FieldPhone)
	return ContactRecord{FirstName: first, LastName: last, Email: email, Phone: phone}
}

// Checkout extracts an abandoned checkout from payload.
func Checkout(payload map[string]any) CheckoutDetail {
	s := AbandonedCheckout
	d := NewDocument(payload)
	out := CheckoutDetail{Contact: ContactFrom(s, d)}
	out.CartValue, _ = s.Resolve(d, FieldCartValue)
	out.ProductName, _ = s.Resolve(d, FieldProductName)
	// Checkout interest comes from tags only.
	out.PackageInterest, _ = s.Package(d, "")
	out.AssignedRep, _ = s.Resolve(d, FieldAssignedRep)
	return out
}

// PurchaseFrom extracts a completed purchase from payload.
func PurchaseFrom(payload map[string]any) PurchaseDetail {
	s := Purchase
	d := NewDocument(payload)
	out := PurchaseDetail{Contact: ContactFrom(s, d)}
	out.OrderAmount, _ = s.Resolve(d, FieldOrderAmount)
	out.ProductName, _ = s.Resolve(d, FieldProductName)
	out.OrderID, _ = s.Resolve(d, FieldOrderID)
	out.PaymentStatus, _ = s.Resolve(d, FieldPaymentStatus)
	out.PackagePurchased, _ = s.Package(d, out.ProductName)
	out.AssignedRep, _ = s.Resolve(d, FieldAssignedRep)
	return out
}
