package render

import (
	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/form"
)

// View is the render-ready snapshot of a form: definition metadata merged
// with the live values and errors of a form instance.
type View struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	SubmitLabel string      `json:"submit_label"`
	ResetLabel  string      `json:"reset_label,omitempty"`
	FormError   string      `json:"form_error,omitempty"`
	Fields      []FieldView `json:"fields"`
}

// FieldView is one field of a View.
type FieldView struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Help        string            `json:"help,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Kind        form.FieldKind    `json:"kind"`
	Widget      definition.Widget `json:"widget"`
	InputType   string            `json:"input_type"`
	Value       string            `json:"value"`
	Checked     bool              `json:"checked"`
	Error       string            `json:"error,omitempty"`
	Options     []OptionView      `json:"options,omitempty"`
}

// OptionView is one option of a choice field.
type OptionView struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

const defaultSubmitLabel = "Submit"

// BuildView registers every definition field on f and captures its current
// value, checked state and error. Checked state always comes from the
// binding, so a reset form renders its defaults without touching widgets.
func BuildView(def definition.Definition, f *form.Form) View {
	errs := f.Errors()
	view := View{
		ID:          def.ID,
		Title:       def.Title,
		SubmitLabel: def.SubmitLabel,
		ResetLabel:  def.ResetLabel,
		FormError:   errs[form.FormErrorKey],
		Fields:      make([]FieldView, 0, len(def.Fields)),
	}
	if view.ID == "" {
		view.ID = f.ID()
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = defaultSubmitLabel
	}

	for _, field := range def.Fields {
		binding := f.Register(field.Name, form.WithKind(field.ResolvedKind()))
		fv := FieldView{
			Name:        field.Name,
			Label:       field.DisplayLabel(),
			Help:        field.Help,
			Placeholder: field.Placeholder,
			Kind:        binding.Kind,
			Widget:      field.ResolvedWidget(),
			InputType:   field.InputType,
			Error:       errs[field.Name],
		}
		if fv.InputType == "" {
			fv.InputType = "text"
		}

		switch binding.Kind {
		case form.KindToggle:
			fv.Checked = binding.Checked("")
		case form.KindChoice:
			fv.Value = binding.String()
			for _, option := range field.Options {
				fv.Options = append(fv.Options, OptionView{
					Value:   option.Value,
					Label:   option.DisplayLabel(),
					Checked: binding.Checked(option.Value),
				})
			}
		default:
			fv.Value = binding.String()
		}

		view.Fields = append(view.Fields, fv)
	}
	return view
}

// Field returns the named field view.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}
