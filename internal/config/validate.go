package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !strings.Contains(c.Webhook.SystemAddress, "@") {
		return fmt.Errorf("webhook.system_address must be an email address (got %q)", c.Webhook.SystemAddress)
	}

	if c.Report.TopRecipients < 1 {
		return fmt.Errorf("report.top_recipients must be >= 1 (got %d)", c.Report.TopRecipients)
	}

	if c.Report.Timezone != "" {
		if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
			return fmt.Errorf("report.timezone: invalid IANA zone %q", c.Report.Timezone)
		}
	}

	return nil
}

// ReportLocation resolves the configured trend timezone.
// An empty setting falls back to the server's local zone.
func (c *Config) ReportLocation() *time.Location {
	if c.Report.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
