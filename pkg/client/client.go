package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/recrep/recrep/internal/appcenter"
	"github.com/recrep/recrep/internal/crashes"
	"github.com/spf13/viper"
)

// Config holds the backend settings shared by the commands.
type Config struct {
	Token        string
	Organization string
	Application  string
	APIURL       string
	Timeout      time.Duration
	Top          int
}

// ConfigFromViper reads the backend settings bound by the root command.
func ConfigFromViper() *Config {
	return &Config{
		Token:        viper.GetString("token"),
		Organization: viper.GetString("organization"),
		Application:  viper.GetString("application"),
		APIURL:       viper.GetString("api-url"),
		Timeout:      viper.GetDuration("timeout"),
		Top:          viper.GetInt("top"),
	}
}

// Validate checks the required identifiers are set.
func (c *Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "token")
	}
	if c.Organization == "" {
		missing = append(missing, "organization")
	}
	if c.Application == "" {
		missing = append(missing, "application")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CreateManager creates the backend client and the crash manager of the app.
func CreateManager(c *Config) (*crashes.Manager, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []appcenter.Option{appcenter.WithTop(c.Top)}
	if c.APIURL != "" {
		opts = append(opts, appcenter.WithBaseURL(c.APIURL))
	}
	if c.Timeout > 0 {
		opts = append(opts, appcenter.WithTimeout(c.Timeout))
	}
	api := appcenter.NewAppCenter(c.Token, opts...)
	return crashes.NewManager(api, c.Organization, c.Application), nil
}
