package layoutcheck

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// defaultLabelPolicy allows the inline markup the platform renders in
// LABEL elements and strips anything script-capable.
func defaultLabelPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"b", "i", "u", "s", "em", "strong", "span", "div", "p", "br",
			"ul", "ol", "li", "font",
		)
		policy.AllowAttrs("style").OnElements("span", "div", "p", "font")
		policy.AllowAttrs("color", "size").OnElements("font")
		labelPolicy = policy
	})
	return labelPolicy
}

func sanitizeLabelMarkup(policy *bluemonday.Policy, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw, false
	}
	cleaned := strings.TrimSpace(policy.Sanitize(trimmed))
	return cleaned, cleaned != trimmed
}
