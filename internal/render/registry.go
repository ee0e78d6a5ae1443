package render

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
	"github.com/gyaneshwarpardhi/crmrelay/internal/slack"
)

// Renderer turns one kind of inbound event into a Slack message.
type Renderer interface {
	// Kind returns the event kind this renderer is registered under.
	Kind() event.Kind
	// Render builds the message; now stamps the footer.
	Render(ev *event.Event, now time.Time) slack.Message
	// Acknowledgement is returned to the caller after a successful delivery.
	Acknowledgement() string
}

// Registry maps event kinds to renderers.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu        sync.RWMutex
	renderers map[event.Kind]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[event.Kind]Renderer)}
}

// Register adds a renderer. Panics on duplicate kind to surface misconfiguration early.
func (r *Registry) Register(rd Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[rd.Kind()]; exists {
		panic(fmt.Sprintf("render registry: duplicate kind %q", rd.Kind()))
	}
	r.renderers[rd.Kind()] = rd
}

// Get returns the renderer for kind.
func (r *Registry) Get(kind event.Kind) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rd, ok := r.renderers[kind]
	if !ok {
		return nil, fmt.Errorf("no renderer registered for kind %q", kind)
	}
	return rd, nil
}

// Kinds returns all registered kinds in sorted order.
func (r *Registry) Kinds() []event.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]event.Kind, 0, len(r.renderers))
	for k := range r.renderers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns a registry with the checkout and purchase renderers.
func Default(loc *time.Location, zoneLabel string) *Registry {
	reg := NewRegistry()
	reg.Register(NewCheckout(loc, zoneLabel))
	reg.Register(NewPurchase(loc, zoneLabel))
	return reg
}
