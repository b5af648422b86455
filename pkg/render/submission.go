package render

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// MethodOverrideField is the hidden input carrying verbs that HTML forms
// cannot submit directly.
const MethodOverrideField = "_method"

// ActionField names the submit button value that selects what a POST does.
// ActionReset asks the server to restore the form defaults instead of
// submitting.
const (
	ActionField = "_action"
	ActionReset = "reset"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields. Use the helpers (CSRFToken, VersionField) to add common fields
// without repeating boilerplate.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token. Callers
// supply the input name to match their backend expectations (for example,
// "_csrf" or "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField constructs a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}

// ResolveMethod returns the method to put on the form element plus the
// override value for MethodOverrideField ("" when none is needed).
func ResolveMethod(method string) (formMethod, override string) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	switch upper {
	case "", http.MethodPost:
		return "post", ""
	case http.MethodGet:
		return "get", ""
	default:
		return "post", upper
	}
}
