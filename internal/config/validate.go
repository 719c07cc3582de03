package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable for API-facing commands.
// Queue-only commands work without credentials, so validation is invoked by
// the commands that publish rather than at load time.
func (c *Config) Validate() error {
	if err := c.validateReddit(); err != nil {
		return err
	}
	if err := c.validateVK(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateReddit() error {
	if c.Credentials.RedditUserAgent == "" {
		return errors.New("REDDIT_USER_AGENT is required (set it in the environment or a .env file)")
	}
	if c.Credentials.RedditClientID == "" {
		return errors.New("REDDIT_CLIENT_ID is required (set it in the environment or a .env file)")
	}
	if c.Credentials.RedditClientSecret == "" {
		return errors.New("REDDIT_CLIENT_SECRET is required (set it in the environment or a .env file)")
	}
	return nil
}

func (c *Config) validateVK() error {
	if c.Credentials.VKToken == "" {
		return errors.New("VK_TOKEN is required (set it in the environment or a .env file)")
	}
	if c.Credentials.VKGroupID < 0 {
		return fmt.Errorf("VK_GROUP_ID must be a positive community id, got %d", c.Credentials.VKGroupID)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
