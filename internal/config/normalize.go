package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServices()
	c.normalizeEnrich()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServices() {
	c.Dictionary.BaseURL = trimBaseURL(c.Dictionary.BaseURL, defaultDictionary)
	c.Kanji.BaseURL = trimBaseURL(c.Kanji.BaseURL, defaultKanji)
	c.Strokes.BaseURL = trimBaseURL(c.Strokes.BaseURL, defaultStrokes)
	c.Sentences.BaseURL = trimBaseURL(c.Sentences.BaseURL, defaultSentences)
	c.Speech.BaseURL = strings.TrimRight(strings.TrimSpace(c.Speech.BaseURL), "/")

	if c.Dictionary.RequestTimeout <= 0 {
		c.Dictionary.RequestTimeout = defaultRequestTimeout
	}
	if c.Kanji.RequestTimeout <= 0 {
		c.Kanji.RequestTimeout = defaultRequestTimeout
	}
	if c.Speech.RequestTimeout <= 0 {
		c.Speech.RequestTimeout = 30
	}
	if strings.TrimSpace(c.Sentences.FromLanguage) == "" {
		c.Sentences.FromLanguage = defaultFromLang
	}
	if strings.TrimSpace(c.Sentences.ToLanguage) == "" {
		c.Sentences.ToLanguage = defaultToLang
	}
	if c.Sentences.Limit <= 0 {
		c.Sentences.Limit = defaultSentenceLimit
	}
	if strings.TrimSpace(c.Speech.Voice) == "" {
		c.Speech.Voice = defaultSpeechVoice
	}
}

func (c *Config) normalizeEnrich() {
	if c.Enrich.RateLimitDelayMS < 0 {
		c.Enrich.RateLimitDelayMS = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimBaseURL(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}
