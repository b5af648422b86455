package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formlight/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS sets the template bundle. Includes resolve relative to the
// directory of the including template.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// Engine renders pongo2 templates from an fs.FS. Compiled templates are
// cached by the underlying set, so an Engine is safe for concurrent use.
type Engine struct {
	files fs.FS
	ext   string
	set   *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over the configured template bundle.
func New(options ...Option) (*Engine, error) {
	engine := &Engine{ext: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(engine)
		}
	}
	if engine.files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}

	registerFilters()
	engine.set = pongo2.NewSet("formlight", pongo2.NewFSLoader(engine.files))
	return engine, nil
}

// RenderTemplate executes the named template into w. Data is flattened
// through JSON so templates address struct fields by their json names.
func (e *Engine) RenderTemplate(w io.Writer, name string, data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if path.Ext(name) == "" {
		name += e.ext
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}

	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: convert data for %q: %w", name, err)
	}
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}
	return nil
}

func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// pongo2 filters are process global.
func registerFilters() {
	if !pongo2.FilterExists("css_vars") {
		_ = pongo2.RegisterFilter("css_vars", filterCSSVars)
	}
}

// filterCSSVars renders a map of CSS variables as "--a: x; --b: y;" in key
// order.
func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	vars, ok := in.Interface().(map[string]any)
	if !ok || len(vars) == 0 {
		return pongo2.AsValue(""), nil
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v;", key, vars[key]))
	}
	return pongo2.AsValue(strings.Join(parts, " ")), nil
}
