package httpform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlight/pkg/form"
	"github.com/goliatone/go-formlight/pkg/httpform"
	"github.com/goliatone/go-formlight/pkg/renderers/vanilla"
	"github.com/goliatone/go-formlight/pkg/testsupport"
)

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBind_FormBody(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	f := testsupport.MustNewForm(t, def)

	req := postForm("/", url.Values{
		"name":   {"a"},
		"gender": {"female"},
		"agree":  {"on"},
		"extra":  {"ignored"},
	})
	if err := httpform.Bind(context.Background(), f, req); err != nil {
		t.Fatalf("bind: %v", err)
	}

	want := form.Values{
		"name":    "a",
		"email":   "",
		"plan":    "basic",
		"gender":  "female",
		"agree":   true,
		"message": "",
	}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.Errors{"name": "이름은 2자 이상이어야 합니다"}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBind_UncheckedToggleFromFormBody(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	f := testsupport.MustNewForm(t, def)
	f.SetValue("agree", true)

	if err := httpform.Bind(context.Background(), f, postForm("/", url.Values{"name": {"홍길동"}})); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if f.Watch("agree") != false {
		t.Fatalf("expected absent checkbox to uncheck, got %v", f.Watch("agree"))
	}
}

func TestBind_JSONBody(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	f := testsupport.MustNewForm(t, def)
	f.SetValue("agree", true)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"홍길동","plan":"pro"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if err := httpform.Bind(context.Background(), f, req); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if f.Watch("plan") != "pro" || f.Watch("name") != "홍길동" || f.Watch("agree") != true {
		t.Fatalf("unexpected values %v", f.Values())
	}
}

func TestBind_RejectsUnknownMediaType(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	f := testsupport.MustNewForm(t, def)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<x/>"))
	req.Header.Set("Content-Type", "application/xml")
	if err := httpform.Bind(context.Background(), f, req); err == nil {
		t.Fatalf("expected unsupported media type error")
	}
}

func TestHandler(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	var got form.Values
	handler := httpform.Handler(
		func() (*form.Form, error) { return def.New() },
		func(w http.ResponseWriter, _ *http.Request, values form.Values) {
			got = values
			w.WriteHeader(http.StatusCreated)
		},
		nil,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/", url.Values{"name": {"a"}, "email": {"bad"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid submit: want 422, got %d", rec.Code)
	}
	wantBody := `{"errors":{"email":"invalid email","name":"이름은 2자 이상이어야 합니다"}}`
	if diff := cmp.Diff(wantBody, rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if got != nil {
		t.Fatalf("callback must not run on invalid submit")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/", url.Values{"name": {"홍길동"}, "email": {"hong@example.com"}}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid submit: want 201, got %d", rec.Code)
	}
	if got["email"] != "hong@example.com" {
		t.Fatalf("unexpected callback values %v", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET: want 405, got %d", rec.Code)
	}
}

func TestPage(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := &httpform.Page{Definition: def, Renderer: renderer}

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<form id="signup"`) {
		t.Fatalf("GET: unexpected response %d\n%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, postForm("/signup", url.Values{"name": {"a"}, "email": {"hong@example.com"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid POST: want 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "이름은 2자 이상이어야 합니다") || !strings.Contains(body, `value="hong@example.com"`) {
		t.Fatalf("expected re-rendered form with errors and values\n%s", body)
	}

	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, postForm("/signup", url.Values{"name": {"홍길동"}, "email": {"hong@example.com"}, "agree": {"true"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid POST: want 200, got %d", rec.Code)
	}
	want := `{"values":{"agree":true,"email":"hong@example.com","gender":"male","message":"","name":"홍길동","plan":"basic"}}`
	if diff := cmp.Diff(want, rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_ResetRestoresDefaults(t *testing.T) {
	def := testsupport.MustSignupDefinition(t)
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := &httpform.Page{Definition: def, Renderer: renderer}

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, postForm("/signup", url.Values{"name": {"a"}, "gender": {"female"}, "agree": {"on"}}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid POST: want 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<button type="submit" name="_action" value="reset" formnovalidate`) {
		t.Fatalf("served page should reset through the server\n%s", body)
	}
	if strings.Contains(body, `type="reset"`) {
		t.Fatalf("served page must not use a native reset\n%s", body)
	}

	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, postForm("/signup", url.Values{
		"_action": {"reset"},
		"name":    {"a"},
		"gender":  {"female"},
		"agree":   {"on"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("reset POST: want 200, got %d", rec.Code)
	}
	body = rec.Body.String()
	for _, fragment := range []string{`name="name" type="text" value=""`, `value="male" checked`} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected defaults %q after reset\n%s", fragment, body)
		}
	}
	for _, fragment := range []string{`role="alert"`, `value="female" checked`, `type="checkbox" value="true" checked`} {
		if strings.Contains(body, fragment) {
			t.Fatalf("unexpected %q after reset\n%s", fragment, body)
		}
	}
}
