// Package diag defines the diagnostic model shared by the lexer, parser,
// semantic builder and the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX/SYN/SEM/IO/PRJ prefixes), a short Message, the
// Primary span and optional Notes. Phases emit through a Reporter; BagReporter
// collects into a Bag which supports sorting, deduplication and a stable
// single-line rendering used by the CLI `--format short` mode and tests.
//
// Package diag does no IO and no colouring. Pretty and JSON output lives in
// internal/diagfmt.
package diag
