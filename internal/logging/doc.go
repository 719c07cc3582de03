// Package logging constructs the slog loggers used across rtvk.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. The level and format come from
// configuration; components receive a *slog.Logger and never construct their
// own handlers.
package logging
