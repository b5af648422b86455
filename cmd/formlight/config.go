package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
)

// config holds CLI settings. Environment variables provide defaults and
// flags override them.
type config struct {
	Definitions string `env:"FORMLIGHT_DEFINITIONS,default=forms"`
	Form        string `env:"FORMLIGHT_FORM"`
	Mode        string `env:"FORMLIGHT_MODE,default=tui"`
	Output      string `env:"FORMLIGHT_OUTPUT,default=json"`
	Style       string `env:"FORMLIGHT_STYLE,default=default"`
	Addr        string `env:"FORMLIGHT_ADDR,default=:8080"`
	LogLevel    string `env:"FORMLIGHT_LOG_LEVEL,default=info"`
	OpenAPI     string `env:"FORMLIGHT_OPENAPI"`
	Schema      string `env:"FORMLIGHT_SCHEMA"`
	Out         string
	Action      string
}

func defaultConfig() config {
	return config{
		Definitions: "forms",
		Mode:        modeTUI,
		Output:      "json",
		Style:       "default",
		Addr:        ":8080",
		LogLevel:    "info",
	}
}

func loadConfig(args []string, stderr io.Writer) (config, error) {
	cfg := defaultConfig()
	_ = envdecode.Decode(&cfg)

	fs := flag.NewFlagSet("formlight", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Definitions, "definitions", cfg.Definitions, "directory of form definition files (.yaml, .yml, .json)")
	fs.StringVar(&cfg.Form, "form", cfg.Form, "form id to run (defaults to the only form when there is one)")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "tui, html, text or serve")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "tui payload format: json, form or pretty")
	fs.StringVar(&cfg.Style, "style", cfg.Style, "html style: default or headless")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for serve mode")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.OpenAPI, "openapi", cfg.OpenAPI, "OpenAPI document (path or URL) to build the form from instead of definitions")
	fs.StringVar(&cfg.Schema, "schema", cfg.Schema, "component schema name used with -openapi")
	fs.StringVar(&cfg.Out, "out", "", "output file (stdout if empty)")
	fs.StringVar(&cfg.Action, "action", "", "form action URL for html mode")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch cfg.Mode {
	case modeTUI, modeHTML, modeText, modeServe:
	default:
		return config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.OpenAPI != "" && cfg.Schema == "" {
		return config{}, fmt.Errorf("-schema is required with -openapi")
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
