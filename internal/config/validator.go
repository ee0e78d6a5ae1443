package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone data for minimal images

	"github.com/gyaneshwarpardhi/crmrelay/internal/event"
)

var knownKinds = map[string]struct{}{
	string(event.KindAbandonedCheckout): {},
	string(event.KindPurchase):          {},
}

// reservedPaths are served by the operational endpoints.
var reservedPaths = []string{"/healthz", "/readyz", "/metrics", "/v1/"}

// Validate checks the config for:
//   - Required fields
//   - Duplicate route IDs and paths
//   - Unknown event kinds and time zones
func Validate(cfg *RelayConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	if _, err := time.LoadLocation(cfg.Delivery.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("delivery.timezone %q: %v", cfg.Delivery.Timezone, err))
	}
	if cfg.Delivery.TimeoutMs < 0 {
		errs = append(errs, "delivery.timeout_ms must not be negative")
	}
	if len(cfg.Routes) == 0 {
		errs = append(errs, "routes must not be empty")
	}

	ids := make(map[string]int)
	paths := make(map[string]string)
	for i, r := range cfg.Routes {
		if r.ID == "" {
			errs = append(errs, fmt.Sprintf("routes[%d]: id is required", i))
			continue
		}
		if prev, ok := ids[r.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate route id %q (routes[%d] and routes[%d])", r.ID, prev, i))
		} else {
			ids[r.ID] = i
		}
		if !strings.HasPrefix(r.Path, "/") {
			errs = append(errs, fmt.Sprintf("route %s: path must start with /", r.ID))
		} else if isReserved(r.Path) {
			errs = append(errs, fmt.Sprintf("route %s: path %s is reserved", r.ID, r.Path))
		} else if prev, ok := paths[r.Path]; ok {
			errs = append(errs, fmt.Sprintf("route %s: path %s already used by route %s", r.ID, r.Path, prev))
		} else {
			paths[r.Path] = r.ID
		}
		if _, ok := knownKinds[r.Kind]; !ok {
			errs = append(errs, fmt.Sprintf("route %s: unknown kind %q", r.ID, r.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func isReserved(path string) bool {
	for _, p := range reservedPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}
