package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/httpform"
	"github.com/goliatone/go-formlight/pkg/render"
	"github.com/goliatone/go-formlight/pkg/renderers/tui"
	"github.com/goliatone/go-formlight/pkg/renderers/vanilla"
)

const (
	modeTUI   = "tui"
	modeHTML  = "html"
	modeText  = "text"
	modeServe = "serve"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("formlight: %v", err)
	}
}

// run executes the CLI. driver overrides the terminal prompt driver in
// tui mode.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel, stderr)

	def, err := loadDefinition(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug("definition loaded", "form", def.ID, "source", def.Source, "fields", len(def.Fields))

	format, err := tui.ParseOutputFormat(cfg.Output)
	if err != nil {
		return err
	}
	session := tui.NewSession(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(format),
		tui.WithLogger(logger),
	)
	html, err := vanilla.New(vanilla.WithInlineStylesheet())
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(html, session)
	if err != nil {
		return err
	}
	options := render.RenderOptions{Style: render.ParseStyle(cfg.Style), Action: cfg.Action}

	switch cfg.Mode {
	case modeServe:
		return serve(ctx, cfg.Addr, def, html, options, logger)
	case modeTUI:
		f, err := def.New()
		if err != nil {
			return err
		}
		out, err := session.Run(ctx, def, f)
		if err != nil {
			return err
		}
		return writeOutput(cfg.Out, stdout, out)
	default:
		renderer, err := registry.Get(cfg.Mode)
		if err != nil {
			return err
		}
		f, err := def.New()
		if err != nil {
			return err
		}
		out, err := renderer.Render(ctx, render.BuildView(def, f), options)
		if err != nil {
			return err
		}
		return writeOutput(cfg.Out, stdout, out)
	}
}

func loadDefinition(ctx context.Context, cfg config) (definition.Definition, error) {
	if cfg.OpenAPI != "" {
		raw, err := definition.ReadSource(ctx, cfg.OpenAPI, definition.WithHTTPFallback(15*time.Second))
		if err != nil {
			return definition.Definition{}, err
		}
		return definition.FromOpenAPI(ctx, raw, cfg.Schema)
	}

	store, err := definition.LoadFS(os.DirFS(cfg.Definitions))
	if err != nil {
		return definition.Definition{}, err
	}
	id := cfg.Form
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return definition.Definition{}, fmt.Errorf("-form is required (found %d forms in %s)", len(ids), cfg.Definitions)
		}
		id = ids[0]
	}
	def, ok := store.Form(id)
	if !ok {
		return definition.Definition{}, fmt.Errorf("form %q not found in %s (have %v)", id, cfg.Definitions, store.IDs())
	}
	return def, nil
}

func serve(ctx context.Context, addr string, def definition.Definition, renderer render.Renderer, options render.RenderOptions, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/", &httpform.Page{
		Definition: def,
		Renderer:   renderer,
		Options:    options,
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving form", "form", def.ID, "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeOutput(path string, stdout io.Writer, out []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, string(out))
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
