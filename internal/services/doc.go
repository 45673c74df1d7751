// Package services defines shared utilities consumed by the enrichment
// pipeline and the external lookup clients.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (validation vs transient vs not-found) consistent across
//     every service client.
//   - Context helpers that stamp the current word and run identifier for
//     logging.
//
// Resolution failures never escape the resolution cache layer as errors; the
// markers here exist so that layer, and top-level commands, can classify what
// went wrong before degrading to an unknown value.
package services
