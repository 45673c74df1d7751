package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`   // cache store, checkpoint, fetched assets
	OutputDir string `toml:"output_dir"` // exported records and media
	LogDir    string `toml:"log_dir"`
}

// Dictionary contains configuration for the word lookup service.
type Dictionary struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"` // seconds
}

// Kanji contains configuration for the per-character reading and
// decomposition service.
type Kanji struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Strokes contains configuration for the stroke-diagram asset service.
type Strokes struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
}

// Sentences contains configuration for the example-sentence service.
type Sentences struct {
	Enabled      bool   `toml:"enabled"`
	BaseURL      string `toml:"base_url"`
	FromLanguage string `toml:"from_language"`
	ToLanguage   string `toml:"to_language"`
	Limit        int    `toml:"limit"`
}

// Speech contains configuration for the speech-synthesis service.
type Speech struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	Voice          string `toml:"voice"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Enrich contains pipeline behaviour settings.
type Enrich struct {
	Offline          bool `toml:"offline"`             // never touch the network
	RateLimitDelayMS int  `toml:"rate_limit_delay_ms"` // applied only after a live fetch
	English          bool `toml:"english"`
	Pitch            bool `toml:"pitch"`
	StrokeDiagrams   bool `toml:"stroke_diagrams"`
	Examples         bool `toml:"examples"`
	Audio            bool `toml:"audio"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for kotoba.
//
// Configuration sections by subsystem:
//   - Paths: data, output, and log directories
//   - Dictionary: word meaning/reading/POS lookup service
//   - Kanji: per-character readings and structural decomposition service
//   - Strokes: stroke-diagram asset service
//   - Sentences: example-sentence service
//   - Speech: speech-synthesis service for audio references
//   - Enrich: offline mode, rate limiting, per-feature toggles
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Dictionary Dictionary `toml:"dictionary"`
	Kanji      Kanji      `toml:"kanji"`
	Strokes    Strokes    `toml:"strokes"`
	Sentences  Sentences  `toml:"sentences"`
	Speech     Speech     `toml:"speech"`
	Enrich     Enrich     `toml:"enrich"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/kotoba/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The boolean reports whether a
// config file was actually found; defaults alone are a valid configuration.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("kotoba.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CacheDBPath returns the path of the resolution cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.Paths.DataDir, "cache.db")
}

// CheckpointPath returns the path of the processed-record checkpoint file.
func (c *Config) CheckpointPath() string {
	return filepath.Join(c.Paths.DataDir, "checkpoint.json")
}

// AudioDir returns the directory for synthesized audio files.
func (c *Config) AudioDir() string {
	return filepath.Join(c.Paths.OutputDir, "audio")
}

// WriteSample writes the embedded sample configuration to the given path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
