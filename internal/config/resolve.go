package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
)

// Getenv looks up an environment variable; os.Getenv satisfies it.
type Getenv func(key string) string

// ResolvedRoute is a Route with its destination looked up.
type ResolvedRoute struct {
	Route
	URL       string // empty when neither env var is set
	URLSource string // env var that supplied URL
}

// EventKind returns the route's kind as an event.Kind.
func (r ResolvedRoute) EventKind() event.Kind { return event.Kind(r.Kind) }

// Configured reports whether the route has a destination.
func (r ResolvedRoute) Configured() bool { return r.URL != "" }

// Resolved is the runtime view of a RelayConfig: env vars read and the zone loaded.
type Resolved struct {
	Version       string
	Routes        []ResolvedRoute
	Location      *time.Location
	ZoneLabel     string
	MaxBodyBytes  int64
	DeliveryLimit time.Duration

	byPath map[string]int
}

// Resolve reads webhook URLs from the environment. A route's own variable wins over the
// shared default variable.
func Resolve(cfg *RelayConfig, getenv Getenv) (*Resolved, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	loc, err := time.LoadLocation(cfg.Delivery.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolve timezone %q: %w", cfg.Delivery.Timezone, err)
	}
	res := &Resolved{
		Version:       cfg.Version,
		Location:      loc,
		ZoneLabel:     cfg.Delivery.TimezoneLabel,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		DeliveryLimit: time.Duration(cfg.Delivery.TimeoutMs) * time.Millisecond,
		byPath:        make(map[string]int, len(cfg.Routes)),
	}
	for _, r := range cfg.Routes {
		rr := ResolvedRoute{Route: r}
		for _, key := range []string{r.WebhookEnv, cfg.Delivery.DefaultWebhookEnv} {
			if key == "" {
				continue
			}
			if v := getenv(key); v != "" {
				rr.URL, rr.URLSource = v, key
				break
			}
		}
		res.byPath[r.Path] = len(res.Routes)
		res.Routes = append(res.Routes, rr)
	}
	return res, nil
}

// Route returns the route served at path.
func (r *Resolved) Route(path string) (ResolvedRoute, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return ResolvedRoute{}, false
	}
	return r.Routes[i], true
}

// Unconfigured returns the IDs of routes without a destination.
func (r *Resolved) Unconfigured() []string {
	var out []string
	for _, rt := range r.Routes {
		if !rt.Configured() {
			out = append(out, rt.ID)
		}
	}
	return out
}
