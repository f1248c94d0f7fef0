package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

const minBodyWidth = 20

// Validate checks structural correctness of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("endpoint", c.Endpoint, validEndpoint),
		c.validateLimits(),
		c.validatePatterns(),
	)
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder
	if c.RequestTimeout < 0 {
		errs = errs.Append("request_timeout", errors.New("must not be negative"))
	}
	if c.BodyWidth < minBodyWidth {
		errs = errs.Append("body_width", fmt.Errorf("must be at least %d", minBodyWidth))
	}
	return errs.ToError()
}

func validEndpoint(raw string) error {
	if raw == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url has no host")
	}
	return nil
}

func (c *Config) validatePatterns() error {
	var errs criterio.FieldErrorsBuilder
	if len(c.Images.Patterns) == 0 {
		errs = errs.Append("images.patterns", errors.New("at least one pattern is required"))
	}
	for i, p := range c.Images.Patterns {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("images.patterns[%d]", i), fmt.Errorf("invalid pattern %q", p))
		}
	}
	return errs.ToError()
}
