// Package logging builds Saturn's structured loggers.
//
// New returns a *slog.Logger configured from the telemetry section of the
// config file: level, JSON or text output, optional source locations, and
// optional redaction of personal data. Redaction is implemented as a
// slog.Handler wrapper so it applies to every logger derived from the
// returned one, including component loggers created with With.
//
// Built-in redaction patterns cover emails, SSNs, credit card and phone
// numbers, IPv4 addresses, and password-shaped fields; custom patterns can
// be added through configuration. Values logged under sensitive keys
// (password, token, api_key, ...) are masked regardless of content.
package logging
