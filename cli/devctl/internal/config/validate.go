package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if len(c.BinaryArgs()) == 0 {
		return errors.New("compose.binary must be set")
	}
	if err := c.validateReadiness(); err != nil {
		return err
	}
	switch strings.ToLower(c.Runtime.Mode) {
	case "exec", "run":
	default:
		return fmt.Errorf("DC must be exec or run, got %q", c.Runtime.Mode)
	}
	return nil
}

func (c *Config) validateReadiness() error {
	if c.Readiness.Attempts <= 0 {
		return errors.New("readiness.attempts must be positive")
	}
	if c.Readiness.IntervalDuration() <= 0 {
		return errors.New("readiness.interval must be positive")
	}
	return nil
}
