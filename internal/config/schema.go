package config

// RelayConfig is the top-level YAML structure.
type RelayConfig struct {
	Version  string       `yaml:"version"`
	Server   ServerConf   `yaml:"server"`
	Delivery DeliveryConf `yaml:"delivery"`
	Routes   []Route      `yaml:"routes"`
}

// ServerConf holds inbound HTTP settings.
type ServerConf struct {
	ReadTimeoutMs  int   `yaml:"read_timeout_ms"`
	WriteTimeoutMs int   `yaml:"write_timeout_ms"`
	IdleTimeoutMs  int   `yaml:"idle_timeout_ms"`
	MaxBodyBytes   int64 `yaml:"max_body_bytes"`
}

// DeliveryConf holds outbound Slack settings shared by all routes.
type DeliveryConf struct {
	DefaultWebhookEnv string `yaml:"default_webhook_env"` // fallback when a route's own env var is unset
	TimeoutMs         int    `yaml:"timeout_ms"`
	Timezone          string `yaml:"timezone"`       // IANA zone for footers
	TimezoneLabel     string `yaml:"timezone_label"` // appended to footer timestamps
}

// Route binds an inbound path to an event kind and its preferred webhook.
type Route struct {
	ID         string `yaml:"id"`
	Path       string `yaml:"path"`
	Kind       string `yaml:"kind"`
	WebhookEnv string `yaml:"webhook_env"`
}
