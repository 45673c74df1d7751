// Package config loads, normalizes, and validates kotoba configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// enrichment pipeline and CLI need: data/output directories, the endpoints of
// the optional lookup services, rate limiting, and offline mode.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
