package extract

import (
	"strings"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
)

// Document is an inbound payload split into its root object and the object holding contact data.
type Document struct {
	Root    map[string]any
	Contact map[string]any
}

// contactKeys are tried in order; the root object stands in when none is present.
var contactKeys = []string{"contact", "user"}

// NewDocument locates the contact object inside payload.
func NewDocument(payload map[string]any) Document {
	if payload == nil {
		payload = map[string]any{}
	}
	d := Document{Root: payload, Contact: payload}
	for _, k := range contactKeys {
		v := payload[k]
		if !event.Truthy(v) {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			d.Contact = m
		} else {
			d.Contact = map[string]any{}
		}
		break
	}
	return d
}

// Step is one candidate in a fallback chain.
type Step interface {
	Resolve(d Document) any
	String() string
}

// Path reads a key path from either the root or the contact object.
type Path struct {
	Contact bool
	Keys    []string
}

// Root returns a Path into the root object.
func Root(keys ...string) Path { return Path{Keys: keys} }

// Contact returns a Path into the contact object.
func Contact(keys ...string) Path { return Path{Contact: true, Keys: keys} }

func (p Path) Resolve(d Document) any {
	src := d.Root
	if p.Contact {
		src = d.Contact
	}
	v, _ := event.Lookup(src, p.Keys...)
	return v
}

func (p Path) String() string {
	prefix := "root."
	if p.Contact {
		prefix = "contact."
	}
	return prefix + strings.Join(p.Keys, ".")
}

// NamePart derives a first or last name from a combined name string.
// The first name is everything before the first space, the last name everything after it.
type NamePart struct {
	Path Path
	Last bool
}

func (n NamePart) Resolve(d Document) any {
	name, ok := n.Path.Resolve(d).(string)
	if !ok {
		return nil
	}
	first, rest, _ := strings.Cut(name, " ")
	if n.Last {
		return rest
	}
	return first
}

func (n NamePart) String() string {
	if n.Last {
		return n.Path.String() + "[rest]"
	}
	return n.Path.String() + "[0]"
}

// Chain is an ordered list of candidates; the first present value wins.
type Chain struct {
	Steps   []Step
	Default string
}

// Value returns the raw value of the first present candidate.
func (c Chain) Value(d Document) (any, bool) {
	for _, s := range c.Steps {
		if v := s.Resolve(d); event.Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// Resolve returns the first present candidate as text, or the chain default.
func (c Chain) Resolve(d Document) (string, bool) {
	v, ok := c.Value(d)
	if !ok {
		return c.Default, false
	}
	return event.Text(v), true
}

// Steps is a helper for declaring chain tables.
func Steps(s ...Step) []Step { return s }
