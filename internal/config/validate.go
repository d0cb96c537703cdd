package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/moheuddin/itms/internal/domain"
)

// MaxSuggestLimit caps the suggestion list size.
const MaxSuggestLimit = 10

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.Search.SuggestLimit < 1 || c.Search.SuggestLimit > MaxSuggestLimit {
		return fmt.Errorf("search.suggest_limit must be in [1, %d] (got %d)", MaxSuggestLimit, c.Search.SuggestLimit)
	}

	if err := c.UI.validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, d.Driver)
	}

	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("dsn is required")
	}

	if d.Driver == DriverPostgres && d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", d.MinConns, d.MaxConns)
	}

	return nil
}

func (u *UIConfig) validate() error {
	if u.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if _, err := url.Parse(u.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}

	if u.DefaultCategory != "" && !domain.IsKnownCategory(u.DefaultCategory) {
		return fmt.Errorf("default_category %q is not a known category", u.DefaultCategory)
	}

	return nil
}
