// Package sanitize strips markup from user input using bluemonday policies.
package sanitize

import (
	"strings"

	"academy/internal/domain/service"

	"github.com/microcosm-cc/bluemonday"
)

type policySanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer that allows no tags at all.
func NewSanitizer() service.Sanitizer {
	return &policySanitizer{policy: bluemonday.StrictPolicy()}
}

// Text strips every tag and trims the result. The output stays HTML-escaped,
// so "&" is stored as "&amp;".
func (s *policySanitizer) Text(input string) string {
	if input == "" {
		return ""
	}

	return strings.TrimSpace(s.policy.Sanitize(input))
}
