package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formlight/pkg/form"
)

const (
	nameMessage  = "이름은 2자 이상이어야 합니다"
	emailMessage = "올바른 이메일 형식이 아닙니다"
)

func signupRules() form.Rules {
	return form.Rules{
		"name":  form.MustRule(`^.{2,}$`, nameMessage),
		"email": form.MustRule(`^[^\s@]+@[^\s@]+\.[^\s@]+$`, emailMessage),
	}
}

func newSignupForm(t *testing.T) *form.Form {
	t.Helper()
	return form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Rules:    signupRules(),
	})
}

type recordingEvent struct {
	prevented int
}

func (e *recordingEvent) PreventDefault() { e.prevented++ }

func change(t *testing.T, f *form.Form, name, value string) {
	t.Helper()
	f.Register(name).OnChange(context.Background(), form.ChangeEvent{Value: value})
}

func TestBinder_ValidatesOnChange(t *testing.T) {
	f := newSignupForm(t)

	change(t, f, "name", "a")
	if got := f.Errors()["name"]; got != nameMessage {
		t.Fatalf("name error: want %q, got %q", nameMessage, got)
	}

	change(t, f, "name", "ab")
	if got, ok := f.Errors()["name"]; ok {
		t.Fatalf("expected name error cleared, got %q", got)
	}

	change(t, f, "email", "invalid-email")
	if got := f.Errors()["email"]; got != emailMessage {
		t.Fatalf("email error: want %q, got %q", emailMessage, got)
	}

	change(t, f, "email", "test@example.com")
	if diff := cmp.Diff(form.Errors{}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_ClearsErrorForFieldWithoutRule(t *testing.T) {
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "message": ""},
		Rules:    form.Rules{"name": form.MustRule(`^.{2,}$`, nameMessage)},
	})

	f.Register("message").OnChange(context.Background(), form.ChangeEvent{Value: "hello"})

	if diff := cmp.Diff(form.Values{"name": "", "message": "hello"}, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", f.Errors())
	}
}

func TestBinder_PerFieldIsolation(t *testing.T) {
	f := newSignupForm(t)

	change(t, f, "email", "nope")
	before := f.State()

	change(t, f, "name", "x")
	after := f.State()

	if after.Values["email"] != before.Values["email"] {
		t.Fatalf("email value changed: %v -> %v", before.Values["email"], after.Values["email"])
	}
	if after.Errors["email"] != before.Errors["email"] {
		t.Fatalf("email error changed: %q -> %q", before.Errors["email"], after.Errors["email"])
	}
}

func TestBinder_ToggleAndChoice(t *testing.T) {
	f := form.New(form.Config{
		Defaults: form.Values{"gender": "male", "agree": false},
		Kinds:    map[string]form.FieldKind{"gender": form.KindChoice},
	})
	ctx := context.Background()

	agree := f.Register("agree")
	if agree.Kind != form.KindToggle {
		t.Fatalf("expected bool default to infer toggle, got %s", agree.Kind)
	}
	agree.OnChange(ctx, form.ChangeEvent{Checked: true})

	gender := f.Register("gender")
	gender.OnChange(ctx, form.ChangeEvent{Value: "female", Checked: false})
	if got := f.Watch("gender"); got != "male" {
		t.Fatalf("unchecked choice must be ignored, got %v", got)
	}
	gender.OnChange(ctx, form.ChangeEvent{Value: "female", Checked: true})

	want := form.Values{"gender": "female", "agree": true}
	if diff := cmp.Diff(want, f.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	fresh := f.Register("gender")
	if !fresh.Checked("female") || fresh.Checked("male") {
		t.Fatalf("choice checked state not derived from value: %+v", fresh)
	}
	if !f.Register("agree").Checked("") {
		t.Fatalf("toggle checked state not derived from value")
	}
}

func TestBinder_WithKindOverridesConfig(t *testing.T) {
	f := form.New(form.Config{Defaults: form.Values{"plan": "basic"}})

	b := f.Register("plan", form.WithKind(form.KindChoice))
	if b.Kind != form.KindChoice {
		t.Fatalf("expected choice kind, got %s", b.Kind)
	}
	if !b.Checked("basic") {
		t.Fatalf("expected basic to be checked")
	}
}

func TestHandleSubmit_InvokesCallbackWhenValid(t *testing.T) {
	f := newSignupForm(t)
	change(t, f, "name", "test")
	change(t, f, "email", "test@example.com")

	var calls []form.Values
	submit := f.HandleSubmit(func(_ context.Context, values form.Values) {
		calls = append(calls, values)
	})

	ev := &recordingEvent{}
	if ok := submit(context.Background(), ev); !ok {
		t.Fatalf("expected submission to succeed, errors: %v", f.Errors())
	}
	if ev.prevented != 1 {
		t.Fatalf("expected PreventDefault once, got %d", ev.prevented)
	}

	want := []form.Values{{"name": "test", "email": "test@example.com"}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("callback calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleSubmit_BlocksInvalid(t *testing.T) {
	f := newSignupForm(t)
	change(t, f, "name", "test")

	called := false
	submit := f.HandleSubmit(func(context.Context, form.Values) { called = true })

	ev := &recordingEvent{}
	if ok := submit(context.Background(), ev); ok {
		t.Fatalf("expected submission to be blocked")
	}
	if called {
		t.Fatalf("callback must not run for invalid form")
	}
	if ev.prevented != 1 {
		t.Fatalf("default action must be suppressed even when invalid")
	}
	if f.Errors()["email"] == "" {
		t.Fatalf("expected email error after blocked submit")
	}
}

func TestHandleSubmit_WithoutValidationAlwaysSubmits(t *testing.T) {
	f := form.New(form.Config{Defaults: form.Values{"name": "", "email": ""}})

	var got form.Values
	submit := f.HandleSubmit(func(_ context.Context, values form.Values) { got = values })
	if ok := submit(context.Background(), nil); !ok {
		t.Fatalf("expected submission without validation")
	}
	if diff := cmp.Diff(form.Values{"name": "", "email": ""}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if f.Strategy() != form.StrategyNone {
		t.Fatalf("expected no strategy, got %s", f.Strategy())
	}
}

func TestValidate_Idempotent(t *testing.T) {
	f := newSignupForm(t)
	change(t, f, "name", "a")

	ctx := context.Background()
	first := f.Validate(ctx)
	firstErrors := f.Errors()
	second := f.Validate(ctx)

	if first != second {
		t.Fatalf("validity changed between passes: %v then %v", first, second)
	}
	if diff := cmp.Diff(firstErrors, f.Errors()); diff != "" {
		t.Fatalf("errors changed between passes (-first +second):\n%s", diff)
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	f := newSignupForm(t)
	change(t, f, "name", "a")
	f.SetValue("email", "x@y.z")

	f.Reset()

	if diff := cmp.Diff(form.Values{"name": "", "email": ""}, f.Watch("")); diff != "" {
		t.Fatalf("values after reset mismatch (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected errors cleared, got %v", f.Errors())
	}

	// Defaults stay independent of later writes.
	f.SetValue("name", "changed")
	f.Reset()
	if got := f.Watch("name"); got != "" {
		t.Fatalf("defaults were mutated: %v", got)
	}
}

func TestSetValue_BypassesValidation(t *testing.T) {
	f := newSignupForm(t)
	f.SetValue("name", "a")

	if got := f.Watch("name"); got != "a" {
		t.Fatalf("watch: want a, got %v", got)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("SetValue must not validate, got %v", f.Errors())
	}
}

func TestValues_SnapshotIsIndependent(t *testing.T) {
	f := newSignupForm(t)
	snapshot := f.Values()
	snapshot["name"] = "mutated"

	if got := f.Watch("name"); got != "" {
		t.Fatalf("snapshot mutation leaked into store: %v", got)
	}
}

func TestResolver_TakesPrecedenceOverRules(t *testing.T) {
	resolver := func(_ context.Context, values form.Values) (form.Result, error) {
		return form.Result{Values: values, Errors: form.Errors{"email": "resolver says no"}}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Rules:    signupRules(),
		Resolver: resolver,
	})

	if f.Strategy() != form.StrategyResolver {
		t.Fatalf("expected resolver strategy, got %s", f.Strategy())
	}
	if f.Validate(context.Background()) {
		t.Fatalf("expected invalid result")
	}
	if diff := cmp.Diff(form.Errors{"email": "resolver says no"}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_ReplacesErrorsWholesale(t *testing.T) {
	pass := false
	resolver := func(_ context.Context, _ form.Values) (form.Result, error) {
		if pass {
			return form.Result{}, nil
		}
		return form.Result{Errors: form.Errors{"name": "too short", "email": "bad"}}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Resolver: resolver,
	})

	ctx := context.Background()
	if f.Validate(ctx) {
		t.Fatalf("expected first pass to fail")
	}
	pass = true
	if !f.Validate(ctx) {
		t.Fatalf("expected second pass to succeed")
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected errors replaced by empty map, got %v", f.Errors())
	}
}

func TestResolver_FailureIsRecovered(t *testing.T) {
	cases := map[string]form.Resolver{
		"error": func(context.Context, form.Values) (form.Result, error) {
			return form.Result{}, errors.New("boom")
		},
		"panic": func(context.Context, form.Values) (form.Result, error) {
			panic("boom")
		},
	}

	for name, resolver := range cases {
		t.Run(name, func(t *testing.T) {
			f := form.New(form.Config{
				Defaults: form.Values{"name": "ok"},
				Resolver: resolver,
			})

			called := false
			submit := f.HandleSubmit(func(context.Context, form.Values) { called = true })
			if submit(context.Background(), nil) {
				t.Fatalf("expected submission blocked")
			}
			if called {
				t.Fatalf("callback must not run")
			}
			want := form.Errors{form.FormErrorKey: form.GenericValidationMessage}
			if diff := cmp.Diff(want, f.Errors()); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(form.Values{"name": "ok"}, f.Values()); diff != "" {
				t.Fatalf("values must be untouched (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolver_AdoptsTransformedValues(t *testing.T) {
	resolver := func(_ context.Context, values form.Values) (form.Result, error) {
		out := values.Clone()
		out["email"] = "TEST@EXAMPLE.COM"
		out["extra"] = "dropped"
		return form.Result{Values: out}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"email": "test@example.com"},
		Resolver: resolver,
	})

	var got form.Values
	f.HandleSubmit(func(_ context.Context, values form.Values) { got = values })(context.Background(), nil)

	if diff := cmp.Diff(form.Values{"email": "TEST@EXAMPLE.COM"}, got); diff != "" {
		t.Fatalf("callback values mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_FieldLevelOnlyTouchesChangedField(t *testing.T) {
	resolver := func(_ context.Context, values form.Values) (form.Result, error) {
		errs := form.Errors{}
		for name, value := range values {
			if value == "" {
				errs[name] = name + " required"
			}
		}
		return form.Result{Values: values, Errors: errs}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Resolver: resolver,
	})

	change(t, f, "name", "")
	if diff := cmp.Diff(form.Errors{"name": "name required"}, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	change(t, f, "name", "Ada")
	if len(f.Errors()) != 0 {
		t.Fatalf("expected name error cleared without touching email, got %v", f.Errors())
	}
}

func TestResolver_FieldLevelFailureClearsOnNextSuccess(t *testing.T) {
	resolver := func(_ context.Context, values form.Values) (form.Result, error) {
		name, _ := values["name"].(string)
		if len(name) < 2 {
			return form.Result{}, errors.New("upstream unavailable")
		}
		return form.Result{Values: values}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Resolver: resolver,
	})

	change(t, f, "name", "a")
	want := form.Errors{form.FormErrorKey: form.GenericValidationMessage}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors after failed pass mismatch (-want +got):\n%s", diff)
	}

	change(t, f, "name", "ab")
	if diff := cmp.Diff(form.Errors{}, f.Errors()); diff != "" {
		t.Fatalf("errors after successful pass mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_FieldLevelKeepsResolverFormError(t *testing.T) {
	resolver := func(context.Context, form.Values) (form.Result, error) {
		return form.Result{Errors: form.Errors{form.FormErrorKey: "quota exceeded", "email": "taken"}}, nil
	}
	f := form.New(form.Config{
		Defaults: form.Values{"name": "", "email": ""},
		Resolver: resolver,
	})

	change(t, f, "name", "Ada")
	want := form.Errors{form.FormErrorKey: "quota exceeded"}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	f := newSignupForm(t)

	var states []form.State
	cancel := f.Subscribe(func(s form.State) { states = append(states, s) })

	f.SetValue("name", "Ada")
	cancel()
	f.SetValue("name", "Grace")

	if len(states) != 1 {
		t.Fatalf("expected one notification before cancel, got %d", len(states))
	}
	if got := states[0].Values["name"]; got != "Ada" {
		t.Fatalf("snapshot value: want Ada, got %v", got)
	}
}

func TestConcurrentWritesAreNotLost(t *testing.T) {
	defaults := form.Values{}
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, name := range names {
		defaults[name] = ""
	}
	f := form.New(form.Config{Defaults: defaults})

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			f.Register(name).OnChange(context.Background(), form.ChangeEvent{Value: name + "!"})
		}(name)
	}
	wg.Wait()

	for _, name := range names {
		if got := f.Watch(name); got != name+"!" {
			t.Fatalf("field %s: want %q, got %v", name, name+"!", got)
		}
	}
}

func TestRuleMatchesStringFormOfBool(t *testing.T) {
	f := form.New(form.Config{
		Defaults: form.Values{"agree": false},
		Rules:    form.Rules{"agree": form.MustRule(`^true$`, "must agree")},
	})

	if f.Validate(context.Background()) {
		t.Fatalf("expected unchecked agree to fail")
	}
	f.Register("agree").OnChange(context.Background(), form.ChangeEvent{Checked: true})
	if !f.Validate(context.Background()) {
		t.Fatalf("expected checked agree to pass, errors: %v", f.Errors())
	}
}

func TestWithIDAndStrategyOverride(t *testing.T) {
	f := form.New(form.Config{
		Defaults: form.Values{"name": ""},
		Rules:    signupRules(),
	}, form.WithID("signup"), form.WithStrategy(form.NoValidation()))

	if f.ID() != "signup" {
		t.Fatalf("id: want signup, got %s", f.ID())
	}
	if !f.Validate(context.Background()) {
		t.Fatalf("forced NoValidation must pass")
	}
}
