package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/form"
	"github.com/goliatone/go-formlight/pkg/render"
)

const defaultMaxAttempts = 3

// Session runs a form in the terminal: it prompts every field through a
// PromptDriver, feeds answers into the form bindings, re-prompts while a
// field has an error, and submits once all fields are answered.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	theme        Theme
	log          *slog.Logger
}

var _ render.Renderer = (*Session)(nil)

// NewSession constructs a session with defaults (survey driver, JSON output,
// three attempts per field).
func NewSession(options ...Option) *Session {
	s := &Session{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		theme:        Theme{ErrorPrefix: "✗ "},
		log:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Name reports the renderer identifier used for read-only summaries.
func (s *Session) Name() string {
	return "text"
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Run prompts every field of def, writing answers into f, then submits.
// It returns the serialized values of a successful submit. A submit blocked
// by validation prints the remaining errors and returns ErrSubmitBlocked.
func (s *Session) Run(ctx context.Context, def definition.Definition, f *form.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if def.Title != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+def.Title); err != nil {
			return nil, err
		}
	}

	for _, field := range def.Fields {
		if err := s.promptField(ctx, field, f); err != nil {
			return nil, err
		}
	}

	var submitted form.Values
	submit := f.HandleSubmit(func(_ context.Context, values form.Values) {
		submitted = values
	})
	if !submit(ctx, nil) {
		s.printErrors(ctx, def, f.Errors())
		return nil, fmt.Errorf("%w (%d errors)", ErrSubmitBlocked, len(f.Errors()))
	}

	s.log.Debug("tui submit", "form", f.ID(), "fields", len(submitted))
	return s.serialize(def, submitted)
}

// Render prints a read-only summary of view: one "label: value" line per
// field plus any error. It does not prompt.
func (s *Session) Render(ctx context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	if view.Title != "" {
		b.WriteString(view.Title + "\n")
	}
	for _, field := range view.Fields {
		value := field.Value
		if field.Kind == form.KindToggle {
			value = yesNo(field.Checked)
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, value)
		if field.Error != "" {
			fmt.Fprintf(&b, "  %s%s\n", s.theme.ErrorPrefix, field.Error)
		}
	}
	if view.FormError != "" {
		b.WriteString(s.theme.ErrorPrefix + view.FormError + "\n")
	}
	return []byte(b.String()), nil
}

func (s *Session) promptField(ctx context.Context, field definition.Field, f *form.Form) error {
	for attempt := 1; ; attempt++ {
		binding := f.Register(field.Name, form.WithKind(field.ResolvedKind()))

		ev, err := s.prompt(ctx, field, binding)
		if err != nil {
			return err
		}
		binding.OnChange(ctx, ev)

		msg := f.Errors()[field.Name]
		if msg == "" {
			return nil
		}
		_ = s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
		if attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (s *Session) prompt(ctx context.Context, field definition.Field, binding form.Binding) (form.ChangeEvent, error) {
	label := field.DisplayLabel()

	switch binding.Kind {
	case form.KindToggle:
		checked, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: binding.Checked(""),
			Help:    field.Help,
		})
		return form.ChangeEvent{Checked: checked}, err

	case form.KindChoice:
		labels := make([]string, 0, len(field.Options))
		defaultIdx := 0
		for idx, option := range field.Options {
			labels = append(labels, option.DisplayLabel())
			if binding.Checked(option.Value) {
				defaultIdx = idx
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return form.ChangeEvent{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return form.ChangeEvent{}, fmt.Errorf("tui: field %q: option index %d out of range", field.Name, idx)
		}
		return form.ChangeEvent{Value: field.Options[idx].Value, Checked: true}, nil
	}

	var (
		value string
		err   error
	)
	switch {
	case field.ResolvedWidget() == definition.WidgetTextarea:
		value, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: binding.String(),
			Help:    field.Help,
		})
	case field.InputType == "password":
		value, err = s.driver.Password(ctx, InputConfig{
			Message: label,
			Help:    field.Help,
		})
	default:
		value, err = s.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     binding.String(),
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
	}
	return form.ChangeEvent{Value: value}, err
}

func (s *Session) printErrors(ctx context.Context, def definition.Definition, errs form.Errors) {
	if msg := errs[form.FormErrorKey]; msg != "" {
		_ = s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
	}
	for _, field := range def.Fields {
		if msg := errs[field.Name]; msg != "" {
			_ = s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field.DisplayLabel(), msg))
		}
	}
}

func (s *Session) serialize(def definition.Definition, values form.Values) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(def, values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func encodeForm(values form.Values) string {
	encoded := url.Values{}
	for name := range values {
		encoded.Set(name, values.String(name))
	}
	return encoded.Encode()
}

// prettyPrint lists fields in definition order followed by any value the
// definition does not declare.
func prettyPrint(def definition.Definition, values form.Values) string {
	var b strings.Builder
	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		seen[field.Name] = true
		fmt.Fprintf(&b, "%s: %s\n", field.DisplayLabel(), prettyValue(values[field.Name]))
	}
	for _, name := range sortedKeys(values) {
		if !seen[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, prettyValue(values[name]))
		}
	}
	return b.String()
}

func prettyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		return yesNo(v)
	default:
		return fmt.Sprint(v)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
