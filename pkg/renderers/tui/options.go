package tui

import (
	"fmt"
	"log/slog"
	"strings"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a user supplied format name.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case "":
		return OutputFormatJSON, nil
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", raw)
	}
}

// Theme captures optional formatting hints the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how often an invalid field is re-prompted. Zero or
// negative values keep the default.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}
