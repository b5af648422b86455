package httpform

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formlight/pkg/definition"
	"github.com/goliatone/go-formlight/pkg/form"
	"github.com/goliatone/go-formlight/pkg/render"
)

// Factory returns a fresh form per request.
type Factory func() (*form.Form, error)

// ValidFunc receives the values of a submission that passed validation.
type ValidFunc func(w http.ResponseWriter, r *http.Request, values form.Values)

// InvalidFunc receives the form of a submission that failed validation.
type InvalidFunc func(w http.ResponseWriter, r *http.Request, f *form.Form)

// Handler binds each POST to a new form from newForm and calls onValid when
// validation passes, onInvalid otherwise. A nil onInvalid answers 422 with
// the errors as JSON. Methods other than POST answer 405.
func Handler(newForm Factory, onValid ValidFunc, onInvalid InvalidFunc) http.Handler {
	if onInvalid == nil {
		onInvalid = WriteErrors
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		process(w, r, newForm, onValid, onInvalid)
	})
}

func process(w http.ResponseWriter, r *http.Request, newForm Factory, onValid ValidFunc, onInvalid InvalidFunc) {
	f, err := newForm()
	if err == nil && f == nil {
		err = ErrNilForm
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	if err := Bind(ctx, f, r); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUnsupportedMediaType) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(w, err.Error(), status)
		return
	}

	submit := f.HandleSubmit(func(_ context.Context, values form.Values) {
		if onValid != nil {
			onValid(w, r, values)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if !submit(ctx, nil) {
		onInvalid(w, r, f)
	}
}

// WriteErrors answers 422 with {"errors": {...}}.
func WriteErrors(w http.ResponseWriter, _ *http.Request, f *form.Form) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": f.Errors()})
}

// WriteValues answers 200 with {"values": {...}}.
func WriteValues(w http.ResponseWriter, _ *http.Request, values form.Values) {
	writeJSON(w, http.StatusOK, map[string]any{"values": values})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Page serves a definition: GET renders a fresh form, POST binds and
// submits it, re-rendering with errors (status 422) when validation fails.
// The reset control posts render.ActionReset, which answers with the form
// restored to its defaults.
type Page struct {
	Definition definition.Definition
	Renderer   render.Renderer
	Options    render.RenderOptions
	// OnSubmit handles valid submissions; WriteValues when nil.
	OnSubmit ValidFunc
	// FormOptions are applied to every form the page creates.
	FormOptions []form.Option
	Logger      *slog.Logger
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		f, err := p.newForm()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		p.render(w, r, f, http.StatusOK)
	case http.MethodPost:
		if resetRequested(r) {
			f, err := p.newForm()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			f.Reset()
			p.render(w, r, f, http.StatusOK)
			return
		}
		onValid := p.OnSubmit
		if onValid == nil {
			onValid = WriteValues
		}
		process(w, r, p.newForm, onValid, func(w http.ResponseWriter, r *http.Request, f *form.Form) {
			p.render(w, r, f, http.StatusUnprocessableEntity)
		})
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (p *Page) newForm() (*form.Form, error) {
	options := p.FormOptions
	if p.Logger != nil {
		options = append([]form.Option{form.WithLogger(p.Logger)}, options...)
	}
	return p.Definition.New(options...)
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, f *form.Form, status int) {
	if p.Renderer == nil {
		http.Error(w, "httpform: page renderer is nil", http.StatusInternalServerError)
		return
	}
	options := p.Options
	options.ServerReset = true
	out, err := p.Renderer.Render(r.Context(), render.BuildView(p.Definition, f), options)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Error("render form", "form", p.Definition.ID, "error", err)
		}
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", p.Renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// resetRequested reports whether a form body carries the reset action.
// JSON bodies are left unread for Bind.
func resetRequested(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return r.PostFormValue(render.ActionField) == render.ActionReset
	default:
		return false
	}
}
