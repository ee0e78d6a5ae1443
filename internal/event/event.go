package event

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind names the notification an inbound webhook maps to.
type Kind string

const (
	KindAbandonedCheckout Kind = "abandoned_checkout"
	KindPurchase          Kind = "purchase"
)

// Event is an inbound CRM webhook body plus the metadata assigned on receipt.
type Event struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	ReceivedAt time.Time      `json:"received_at"`
	Payload    map[string]any `json:"payload"` // no fixed schema
}

// Lookup walks a key path into nested JSON objects.
func Lookup(doc map[string]any, path ...string) (any, bool) {
	if doc == nil || len(path) == 0 {
		return nil, false
	}
	val, ok := doc[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return val, true
	}
	sub, ok := val.(map[string]any)
	if !ok {
		return nil, false
	}
	return Lookup(sub, path[1:]...)
}

// Truthy reports whether a decoded JSON value counts as present.
// nil, false, "", 0 and NaN are absent; objects and arrays are present even when empty.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}

// Text renders a present value as display text.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = Text(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	}
	return ""
}
