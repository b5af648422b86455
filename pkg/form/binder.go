package form

import "context"

// ChangeEvent carries what a widget reports when edited. Text widgets set
// Value; toggle widgets set Checked; choice widgets set Value to the option
// identifier and Checked to whether that option became selected.
type ChangeEvent struct {
	Value   string
	Checked bool
}

// BindOption customises a single Register call.
type BindOption func(*bindConfig)

type bindConfig struct {
	kind FieldKind
}

// WithKind declares the field kind for this binding.
func WithKind(kind FieldKind) BindOption {
	return func(cfg *bindConfig) {
		if kind != "" {
			cfg.kind = kind
		}
	}
}

// Binding wires one widget to one field. It captures the value at the time
// Register was called; widgets re-register after every state change to see
// fresh values.
type Binding struct {
	Name  string
	Value any
	Kind  FieldKind

	form *Form
}

// Register returns the binding for name.
func (f *Form) Register(name string, options ...BindOption) Binding {
	cfg := bindConfig{kind: f.kindFor(name)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	value, _ := f.store.value(name)
	return Binding{
		Name:  name,
		Value: value,
		Kind:  cfg.kind,
		form:  f,
	}
}

// OnChange writes the value carried by ev and then re-validates the field.
// A choice event that is not checked is ignored.
func (b Binding) OnChange(ctx context.Context, ev ChangeEvent) {
	if b.form == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch b.Kind {
	case KindToggle:
		b.form.writeValue(ctx, b.Name, ev.Checked)
	case KindChoice:
		if !ev.Checked {
			return
		}
		b.form.writeValue(ctx, b.Name, ev.Value)
	default:
		b.form.writeValue(ctx, b.Name, ev.Value)
	}

	b.form.validateField(ctx, b.Name)
}

// Checked derives the checked state of a toggle or choice widget from the
// captured value. For choice fields option is the identifier of the widget
// being rendered; toggle fields ignore it.
func (b Binding) Checked(option string) bool {
	switch b.Kind {
	case KindToggle:
		v, _ := b.Value.(bool)
		return v
	case KindChoice:
		return stringify(b.Value) == option && b.Value != nil
	default:
		return false
	}
}

// String returns the captured value in the string form used by rules.
func (b Binding) String() string {
	return stringify(b.Value)
}

// ErrorMessage returns the current error message for the bound field.
func (b Binding) ErrorMessage() string {
	if b.form == nil {
		return ""
	}
	return b.form.Errors()[b.Name]
}

func (f *Form) kindFor(name string) FieldKind {
	if kind, ok := f.kinds[name]; ok && kind != "" {
		return kind
	}
	if _, ok := f.defaults[name].(bool); ok {
		return KindToggle
	}
	return KindText
}
