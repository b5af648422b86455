package vanilla

// ChromeClass is a typed identifier for the classes applied in default style.
type ChromeClass string

const (
	ClassForm      ChromeClass = "formlight-form"
	ClassTitle     ChromeClass = "formlight-title"
	ClassFormError ChromeClass = "formlight-form-error"
	ClassField     ChromeClass = "formlight-field"
	ClassLabel     ChromeClass = "formlight-label"
	ClassControl   ChromeClass = "formlight-control"
	ClassChoice    ChromeClass = "formlight-choice"
	ClassGroup     ChromeClass = "formlight-group"
	ClassHelp      ChromeClass = "formlight-help"
	ClassError     ChromeClass = "formlight-error"
	ClassActions   ChromeClass = "formlight-actions"
	ClassButton    ChromeClass = "formlight-button"
)

// chromeClasses returns the template class map. Headless mode yields an
// empty map so templates omit every class attribute.
func chromeClasses(headless bool, extra map[string]string) map[string]string {
	if headless {
		return map[string]string{}
	}
	classes := map[string]string{
		"form":       string(ClassForm),
		"title":      string(ClassTitle),
		"form_error": string(ClassFormError),
		"field":      string(ClassField),
		"label":      string(ClassLabel),
		"control":    string(ClassControl),
		"choice":     string(ClassChoice),
		"group":      string(ClassGroup),
		"help":       string(ClassHelp),
		"error":      string(ClassError),
		"actions":    string(ClassActions),
		"button":     string(ClassButton),
	}
	for slot, value := range extra {
		if value = sanitizeClassList(value); value != "" {
			classes[slot] = classes[slot] + " " + value
		}
	}
	return classes
}
