package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formlight/pkg/render/template/gotemplate"
)

var templatesFS = fstest.MapFS{
	"hello.tmpl":                   {Data: []byte("Hello {{ name }}")},
	"escape.tmpl":                  {Data: []byte("<b>{{ label }}</b>|{{ label|safe }}")},
	"vars.tmpl":                    {Data: []byte(`style="{{ vars|css_vars }}"`)},
	"field.tmpl":                   {Data: []byte(`{% for f in fields %}[{{ f.name }}{% if f.checked %}*{% endif %}]{% endfor %}`)},
	"page.html":                    {Data: []byte("<p>{{ title }}</p>")},
	"layout/form.tmpl":             {Data: []byte(`{% for f in fields %}{% include "row.tmpl" %}{% endfor %}`)},
	"layout/row.tmpl":              {Data: []byte(`({% include "widgets/input.tmpl" %})`)},
	"layout/widgets/input.tmpl":    {Data: []byte(`<input name="{{ f.name }}">`)},
	"layout/widgets/broken.tmpl":   {Data: []byte(`{% include "layout/row.tmpl" %}`)},
	"layout/widgets/nested.tmpl":   {Data: []byte(`{% include "input.tmpl" %}`)},
	"layout/widgets/unknown.tmpl":  {Data: []byte(`{% if %}`)},
	"layout/widgets/filtered.tmpl": {Data: []byte(`{{ name|no_such_filter }}`)},
}

func TestEngine_RenderTemplateAppendsExtension(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "hello", map[string]any{"name": "Ada"})
	if got != "Hello Ada" {
		t.Fatalf("render template mismatch: %q", got)
	}
}

func TestEngine_RenderTemplateKeepsExplicitExtension(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "page.html", map[string]any{"title": "Signup"})
	if got != "<p>Signup</p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_IncludesResolveRelativeToIncludingTemplate(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "layout/form", map[string]any{
		"fields": []map[string]any{{"name": "name"}, {"name": "email"}},
	})
	want := `(<input name="name">)(<input name="email">)`
	if got != want {
		t.Fatalf("include mismatch\nwant: %q\n got: %q", want, got)
	}

	got = mustRender(t, engine, "layout/widgets/nested", map[string]any{
		"f": map[string]any{"name": "bio"},
	})
	if got != `<input name="bio">` {
		t.Fatalf("sibling include mismatch: %q", got)
	}
}

func TestEngine_RootPathIncludeFromSubdirectoryFails(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	err := engine.RenderTemplate(&buf, "layout/widgets/broken", nil)
	if err == nil {
		t.Fatalf("expected include of a root-relative path to fail")
	}
	if !strings.Contains(err.Error(), "layout/widgets/broken.tmpl") {
		t.Fatalf("error should name the template, got %v", err)
	}
}

func TestEngine_ParseAndExecuteErrors(t *testing.T) {
	engine := newEngine(t)

	for _, name := range []string{"missing", "layout/widgets/unknown", "layout/widgets/filtered"} {
		var buf bytes.Buffer
		if err := engine.RenderTemplate(&buf, name, map[string]any{"name": "x"}); err == nil {
			t.Fatalf("expected error for %s", name)
		}
		if buf.Len() != 0 {
			t.Fatalf("%s: nothing should be written on error, got %q", name, buf.String())
		}
	}
}

func TestEngine_AutoescapesUnlessSafe(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "escape", map[string]any{"label": "<i>x</i>"})
	if got != "<b>&lt;i&gt;x&lt;/i&gt;</b>|<i>x</i>" {
		t.Fatalf("unexpected escaping %q", got)
	}
}

func TestEngine_CSSVarsFilter(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "vars", map[string]any{
		"vars": map[string]string{"--brand": "#123456", "--accent": "red"},
	})
	if got != `style="--accent: red; --brand: #123456;"` {
		t.Fatalf("unexpected css vars %q", got)
	}

	got = mustRender(t, engine, "vars", nil)
	if got != `style=""` {
		t.Fatalf("missing vars should render empty, got %q", got)
	}
}

type fieldData struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

func TestEngine_ConvertsStructsThroughJSONTags(t *testing.T) {
	engine := newEngine(t)

	got := mustRender(t, engine, "field", map[string]any{
		"fields": []fieldData{{Name: "a"}, {Name: "b", Checked: true}},
	})
	if got != "[a][b*]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_WithExtension(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(fstest.MapFS{"hello.tpl": {Data: []byte("hi {{ name }}")}}),
		gotemplate.WithExtension("tpl"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got := mustRender(t, engine, "hello", map[string]any{"name": "Ada"})
	if got != "hi Ada" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func mustRender(t *testing.T, engine *gotemplate.Engine, name string, data any) string {
	t.Helper()

	var buf bytes.Buffer
	if err := engine.RenderTemplate(&buf, name, data); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}
