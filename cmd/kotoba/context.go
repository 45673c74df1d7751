package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"kotoba/internal/config"
	"kotoba/internal/dictionary"
	"kotoba/internal/enrich"
	"kotoba/internal/kanjidata"
	"kotoba/internal/logging"
	"kotoba/internal/sentences"
	"kotoba/internal/services"
	"kotoba/internal/speech"
	"kotoba/internal/strokes"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) buildLogger(verbose bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		adjusted := *cfg
		adjusted.Logging.Level = "debug"
		return logging.NewFromConfig(&adjusted)
	}
	return logging.NewFromConfig(cfg)
}

// buildServices constructs the external service clients the configuration
// enables. Disabled services come back nil and their pipeline steps run
// cache-only.
func buildServices(cfg *config.Config) (enrich.Clients, error) {
	var clients enrich.Clients

	dict, err := dictionary.New(cfg.Dictionary.BaseURL,
		dictionary.WithTimeout(time.Duration(cfg.Dictionary.RequestTimeout)*time.Second))
	if err != nil {
		return clients, services.Wrap(services.ErrConfiguration, "dictionary", "init", "", err)
	}
	clients.Dictionary = dict

	kanji, err := kanjidata.New(cfg.Kanji.BaseURL,
		kanjidata.WithTimeout(time.Duration(cfg.Kanji.RequestTimeout)*time.Second))
	if err != nil {
		return clients, services.Wrap(services.ErrConfiguration, "kanji", "init", "", err)
	}
	clients.Kanji = kanji

	if cfg.Strokes.Enabled && cfg.Strokes.BaseURL != "" {
		strokesClient, err := strokes.New(cfg.Strokes.BaseURL)
		if err != nil {
			return clients, services.Wrap(services.ErrConfiguration, "strokes", "init", "", err)
		}
		clients.Strokes = strokesClient
	}

	if cfg.Sentences.Enabled && cfg.Sentences.BaseURL != "" {
		sentencesClient, err := sentences.New(cfg.Sentences.BaseURL,
			cfg.Sentences.FromLanguage, cfg.Sentences.ToLanguage)
		if err != nil {
			return clients, services.Wrap(services.ErrConfiguration, "sentences", "init", "", err)
		}
		clients.Sentences = sentencesClient
	}

	if cfg.Speech.Enabled && cfg.Speech.BaseURL != "" {
		speechClient, err := speech.New(cfg.Speech.BaseURL, cfg.Speech.Voice,
			speech.WithTimeout(time.Duration(cfg.Speech.RequestTimeout)*time.Second))
		if err != nil {
			return clients, services.Wrap(services.ErrConfiguration, "speech", "init", "", err)
		}
		clients.Speech = speechClient
	}

	return clients, nil
}
