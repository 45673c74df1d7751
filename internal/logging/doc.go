// Package logging constructs the slog loggers used across kotoba and exposes
// small helpers for structured attributes.
//
// Two handler formats exist: a human-oriented console handler (colored when
// stdout is a terminal) and a JSON handler for machine consumption. Components
// obtain child loggers via NewComponentLogger so every record carries a
// "component" attribute, and tests use NewNop to silence output.
package logging
