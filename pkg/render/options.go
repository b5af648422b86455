package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StyleMode selects whether renderers emit their built-in classes.
type StyleMode string

const (
	// StyleDefault applies the renderer's own classes.
	StyleDefault StyleMode = "default"
	// StyleHeadless emits bare markup so callers can style it themselves.
	StyleHeadless StyleMode = "headless"
)

// ParseStyle maps user input onto a StyleMode. Unknown or empty values fall
// back to StyleDefault.
func ParseStyle(raw string) StyleMode {
	if StyleMode(strings.ToLower(strings.TrimSpace(raw))) == StyleHeadless {
		return StyleHeadless
	}
	return StyleDefault
}

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form.
type RenderOptions struct {
	// Style selects default or headless markup.
	Style StyleMode
	// Theme carries resolved theme tokens; see ThemeConfig.
	Theme *theme.RendererConfig
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Action is the form action URL.
	Action string
	// Method overrides the submission method. Renderers translate verbs other
	// than GET/POST into POST plus a hidden _method input.
	Method string
	// ServerReset renders the reset control as a submission of ActionReset
	// so the server restores defaults. Otherwise it is a native reset, which
	// only restores the values the page was rendered with.
	ServerReset bool
}

// Headless reports whether the options request headless markup.
func (o RenderOptions) Headless() bool {
	return o.Style == StyleHeadless
}
