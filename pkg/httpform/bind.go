package httpform

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formlight/pkg/form"
)

const maxBodyBytes = 1 << 20

// Bind applies the request's fields to every declared field of f through
// its binding, so each write is validated like a widget change. Form bodies
// (urlencoded or multipart) and JSON objects are accepted. Toggle fields
// absent from a form body are unchecked, matching browser checkbox
// semantics; other absent fields keep their current value.
func Bind(ctx context.Context, f *form.Form, r *http.Request) error {
	if f == nil {
		return ErrNilForm
	}

	fields, isJSON, err := readFields(r)
	if err != nil {
		return err
	}

	for name := range f.Defaults() {
		binding := f.Register(name)
		raw, present := fields[name]

		switch binding.Kind {
		case form.KindToggle:
			if !present && isJSON {
				continue
			}
			binding.OnChange(ctx, form.ChangeEvent{Checked: present && truthy(raw)})
		case form.KindChoice:
			if !present {
				continue
			}
			binding.OnChange(ctx, form.ChangeEvent{Value: raw, Checked: true})
		default:
			if !present {
				continue
			}
			binding.OnChange(ctx, form.ChangeEvent{Value: raw})
		}
	}
	return nil
}

func readFields(r *http.Request) (map[string]string, bool, error) {
	if r == nil {
		return nil, false, fmt.Errorf("httpform: request is nil")
	}

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, false, fmt.Errorf("httpform: parse content type: %w", err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		fields, err := readJSON(r)
		return fields, true, err
	case "", "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return nil, false, fmt.Errorf("httpform: parse multipart form: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, false, fmt.Errorf("httpform: parse form: %w", err)
		}
		fields := make(map[string]string, len(r.PostForm))
		for name, values := range r.PostForm {
			if len(values) > 0 {
				fields[name] = values[len(values)-1]
			}
		}
		return fields, false, nil
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func readJSON(r *http.Request) (map[string]string, error) {
	if r.Body == nil {
		return map[string]string{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("httpform: read body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]string{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("httpform: decode json: %w", err)
	}
	fields := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case nil:
			fields[name] = ""
		case string:
			fields[name] = v
		case bool:
			if v {
				fields[name] = "true"
			} else {
				fields[name] = "false"
			}
		default:
			fields[name] = fmt.Sprint(v)
		}
	}
	return fields, nil
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
