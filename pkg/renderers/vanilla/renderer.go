package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formlight/pkg/render"
	rendertemplate "github.com/goliatone/go-formlight/pkg/render/template"
	gotemplate "github.com/goliatone/go-formlight/pkg/render/template/gotemplate"
)

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	classes          map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must mirror the templates/ layout of TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInlineStylesheet prepends the embedded stylesheet in a <style> block
// when rendering in default style.
func WithInlineStylesheet() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithClasses appends caller classes to the built-in ones per slot (form,
// field, label, control, choice, group, help, error, actions, button).
// Ignored in headless mode.
func WithClasses(classes map[string]string) Option {
	return func(cfg *config) {
		if len(classes) == 0 {
			return
		}
		if cfg.classes == nil {
			cfg.classes = make(map[string]string, len(classes))
		}
		for slot, value := range classes {
			cfg.classes[strings.TrimSpace(slot)] = value
		}
	}
}

// Renderer renders a render.View as an HTML form.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles bool
	classes      map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		inlineStyles: cfg.inlineStyles,
		classes:      cfg.classes,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if r.inlineStyles && !options.Headless() {
		if css := defaultStylesheet(); css != "" {
			buf.WriteString("<style>\n" + css + "</style>\n")
		}
	}
	if err := r.templates.RenderTemplate(&buf, formTemplate, r.templateData(view, options)); err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

type fieldData struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Help        string       `json:"help,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Widget      string       `json:"widget"`
	InputType   string       `json:"input_type"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Error       string       `json:"error,omitempty"`
	Options     []optionData `json:"options,omitempty"`
}

type optionData struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type buttonData struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

type themeData struct {
	Name    string            `json:"name,omitempty"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"css_vars,omitempty"`
}

func (r *Renderer) templateData(view render.View, options render.RenderOptions) map[string]any {
	method, override := render.ResolveMethod(options.Method)
	hidden := options.HiddenFields
	if override != "" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden(render.MethodOverrideField, override))
	}

	fields := make([]fieldData, 0, len(view.Fields))
	for _, field := range view.Fields {
		data := fieldData{
			ID:          controlID(view.ID, field.Name),
			Name:        field.Name,
			Label:       sanitizeMarkup(field.Label),
			Help:        sanitizeMarkup(field.Help),
			Placeholder: field.Placeholder,
			Widget:      string(field.Widget),
			InputType:   field.InputType,
			Value:       field.Value,
			Checked:     field.Checked,
			Error:       field.Error,
		}
		for idx, option := range field.Options {
			data.Options = append(data.Options, optionData{
				ID:      fmt.Sprintf("%s-%d", data.ID, idx),
				Value:   option.Value,
				Label:   option.Label,
				Checked: option.Checked,
			})
		}
		fields = append(fields, data)
	}

	buttons := []buttonData{{Type: "submit", Label: view.SubmitLabel}}
	switch {
	case view.ResetLabel == "":
	case options.ServerReset:
		buttons = append(buttons, buttonData{
			Type:  "submit",
			Label: view.ResetLabel,
			Name:  render.ActionField,
			Value: render.ActionReset,
		})
	default:
		buttons = append(buttons, buttonData{Type: "reset", Label: view.ResetLabel})
	}

	var th themeData
	if options.Theme != nil {
		th = themeData{
			Name:    options.Theme.Theme,
			Variant: options.Theme.Variant,
			CSSVars: options.Theme.CSSVars,
		}
	}

	return map[string]any{
		"form":          view,
		"fields":        fields,
		"buttons":       buttons,
		"method":        method,
		"action":        strings.TrimSpace(options.Action),
		"hidden_fields": render.SortedHiddenFields(hidden),
		"classes":       chromeClasses(options.Headless(), r.classes),
		"theme":         th,
	}
}
