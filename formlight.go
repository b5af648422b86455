// Package formlight is the one-import entry point: it aliases the core form
// types and wires definitions to the HTML renderer for callers that just want
// a working form.
package formlight

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/form"
	"github.com/goliatone/go-formlight/pkg/render"
	"github.com/goliatone/go-formlight/pkg/renderers/vanilla"
)

type (
	Form        = form.Form
	Config      = form.Config
	Option      = form.Option
	Values      = form.Values
	Errors      = form.Errors
	State       = form.State
	Rule        = form.Rule
	Rules       = form.Rules
	Result      = form.Result
	Resolver    = form.Resolver
	ChangeEvent = form.ChangeEvent
	Binding     = form.Binding
	FieldKind   = form.FieldKind

	Definition    = definition.Definition
	RenderOptions = render.RenderOptions
)

const (
	KindText   = form.KindText
	KindToggle = form.KindToggle
	KindChoice = form.KindChoice
)

// New builds a form from cfg.
func New(cfg Config, options ...Option) *Form {
	return form.New(cfg, options...)
}

// MustRule compiles pattern into a Rule, panicking on invalid patterns.
func MustRule(pattern, message string) Rule {
	return form.MustRule(pattern, message)
}

// LoadDefinitions walks fsys for definition files.
func LoadDefinitions(fsys fs.FS) (*definition.Store, error) {
	return definition.LoadFS(fsys)
}

// RenderHTML renders the current state of f using the built-in HTML
// renderer.
func RenderHTML(ctx context.Context, def Definition, f *Form, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.BuildView(def, f), options)
}

// AssetsFS exposes the default stylesheet so applications can serve it:
//
//	mux.Handle("/formlight/",
//	  http.StripPrefix("/formlight/",
//	    http.FileServerFS(formlight.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
