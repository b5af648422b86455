package definition

import "github.com/goliatone/go-formlight/pkg/form"

// Widget names the presentation widget for a field.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetTextarea Widget = "textarea"
	WidgetSelect   Widget = "select"
	WidgetCheckbox Widget = "checkbox"
	WidgetRadio    Widget = "radio"
)

// Definition is a declarative form: ordered fields plus action labels.
type Definition struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	SubmitLabel string  `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	ResetLabel  string  `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`

	// Source records where the definition was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Field describes one scalar field.
type Field struct {
	Name        string         `json:"name" yaml:"name"`
	Label       string         `json:"label,omitempty" yaml:"label,omitempty"`
	Help        string         `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Kind        form.FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Widget      Widget         `json:"widget,omitempty" yaml:"widget,omitempty"`
	InputType   string         `json:"type,omitempty" yaml:"type,omitempty"`
	Default     any            `json:"default,omitempty" yaml:"default,omitempty"`
	Pattern     string         `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message     string         `json:"message,omitempty" yaml:"message,omitempty"`
	Options     []Option       `json:"options,omitempty" yaml:"options,omitempty"`
	// Validate is a validator tag expression such as "required,email". Any
	// field carrying one switches the form to resolver based validation.
	Validate string `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// Option is one choice of a choice field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// DisplayLabel returns the option label, falling back to its value.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// ResolvedKind returns the declared kind or infers one from the widget and
// default value.
func (f Field) ResolvedKind() form.FieldKind {
	if f.Kind != "" {
		return f.Kind
	}
	switch f.Widget {
	case WidgetCheckbox:
		return form.KindToggle
	case WidgetRadio, WidgetSelect:
		return form.KindChoice
	}
	if _, ok := f.Default.(bool); ok {
		return form.KindToggle
	}
	if len(f.Options) > 0 {
		return form.KindChoice
	}
	return form.KindText
}

// ResolvedWidget returns the declared widget or the default for the kind.
func (f Field) ResolvedWidget() Widget {
	if f.Widget != "" {
		return f.Widget
	}
	switch f.ResolvedKind() {
	case form.KindToggle:
		return WidgetCheckbox
	case form.KindChoice:
		return WidgetRadio
	default:
		return WidgetInput
	}
}

// Field returns the named field.
func (d Definition) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
