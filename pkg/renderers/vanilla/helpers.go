package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func controlID(formID, name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if formID = strings.TrimSpace(formID); formID != "" {
		return "fl-" + formID + "-" + trimmed
	}
	return "fl-" + trimmed
}

// sanitizeClassList drops the reserved formlight- prefix so callers cannot
// spoof built-in chrome.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "formlight-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// sanitizeMarkup keeps inline formatting in labels and help text and strips
// everything else.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(markupSanitizer().Sanitize(trimmed))
}

func markupSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "small", "code", "br", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AllowURLSchemes("http", "https", "mailto")
		labelPolicy = policy
	})
	return labelPolicy
}
