package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := validatePort("web.port", c.Web.Port); err != nil {
		return err
	}

	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text", "pretty":
	default:
		return fmt.Errorf("log.format must be one of json, text, pretty (got %q)", c.Log.Format)
	}

	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must be >= 0 (got %v)", c.RateLimit.RPS)
	}
	if c.RateLimit.Enabled() && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be >= 1 when limiting is enabled (got %d)", c.RateLimit.Burst)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	if c.Kafka.Enabled() && strings.TrimSpace(c.Kafka.Topic) == "" {
		return fmt.Errorf("kafka.topic is required when brokers are configured")
	}

	u, err := url.Parse(c.Web.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("web.api_url must be an absolute URL (got %q)", c.Web.APIURL)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		if d.Host == "" {
			return fmt.Errorf("host is required")
		}
		if d.Name == "" {
			return fmt.Errorf("name is required")
		}
		if err := validatePort("port", d.Port); err != nil {
			return err
		}
	}
	if d.MaxConns < 1 {
		return fmt.Errorf("max_conns must be >= 1 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be between 0 and max_conns (got %d)", d.MinConns)
	}
	if d.ConnectAttempts < 1 {
		return fmt.Errorf("connect_attempts must be >= 1 (got %d)", d.ConnectAttempts)
	}
	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535 (got %d)", name, port)
	}
	return nil
}
