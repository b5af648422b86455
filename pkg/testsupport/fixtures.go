// Package testsupport holds fixtures shared by renderer and transport tests.
package testsupport

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/form"
)

// SignupYAML is a definition document exercising every widget kind.
const SignupYAML = `forms:
  signup:
    title: Sign up
    submitLabel: Create account
    resetLabel: Clear
    fields:
      - name: name
        label: 이름
        help: "<em>At least</em> two characters"
        pattern: "^.{2,}$"
        message: 이름은 2자 이상이어야 합니다
      - name: email
        label: Email
        type: email
        pattern: "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"
        message: invalid email
      - name: plan
        label: Plan
        widget: select
        default: basic
        options:
          - value: basic
            label: Basic
          - value: pro
            label: Pro
      - name: gender
        label: Gender
        kind: choice
        default: male
        options:
          - value: male
          - value: female
      - name: agree
        label: I agree
        kind: toggle
      - name: message
        widget: textarea
`

// MustSignupDefinition parses SignupYAML.
func MustSignupDefinition(t *testing.T) definition.Definition {
	t.Helper()

	defs, err := definition.Parse([]byte(SignupYAML), "signup.yaml")
	if err != nil {
		t.Fatalf("parse signup definition: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected one definition, got %d", len(defs))
	}
	return defs[0]
}

// MustNewForm builds a form instance from def.
func MustNewForm(t *testing.T, def definition.Definition, options ...form.Option) *form.Form {
	t.Helper()

	f, err := def.New(options...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

// SelectorCall records one Select invocation.
type SelectorCall struct {
	Name    string
	Variant string
}

// StubThemeSelector returns a fixed selection and records calls.
type StubThemeSelector struct {
	Selection *theme.Selection
	Err       error
	Calls     []SelectorCall
}

func (s *StubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.Calls = append(s.Calls, SelectorCall{Name: name, Variant: variant})
	return s.Selection, s.Err
}

// AcmeSelection is a theme selection with a dark variant overriding the
// brand token.
func AcmeSelection() *theme.Selection {
	return &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":   "#123456",
				"surface": "#ffffff",
			},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme",
				Files: map[string]string{
					"stylesheet": "theme.css",
				},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{
						"brand": "#654321",
					},
				},
			},
		},
	}
}
