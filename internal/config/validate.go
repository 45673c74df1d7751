package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateServices() error {
	for _, svc := range []struct {
		name string
		url  string
	}{
		{"dictionary.base_url", c.Dictionary.BaseURL},
		{"kanji.base_url", c.Kanji.BaseURL},
		{"strokes.base_url", c.Strokes.BaseURL},
		{"sentences.base_url", c.Sentences.BaseURL},
	} {
		if _, err := url.Parse(svc.url); err != nil {
			return fmt.Errorf("%s: %w", svc.name, err)
		}
	}
	if c.Speech.Enabled && strings.TrimSpace(c.Speech.BaseURL) == "" {
		return errors.New("speech.base_url is required when speech.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
