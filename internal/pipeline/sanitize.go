package pipeline

import "github.com/microcosm-cc/bluemonday"

// ContainerClass is the fixed class on the top-level section wrapping
// every rendered document. It is the root selector for container-level
// theme rules.
const ContainerClass = "md-container"

// Sanitizer strips disallowed tags and attributes from raw HTML.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy,
// additionally allowing section elements and the class/id/style
// attributes the styling pipeline depends on.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("section")
	p.AllowAttrs("class", "id", "style").Globally()
	return &Sanitizer{policy: p}
}

// Sanitize returns the sanitized HTML.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// WrapContainer wraps sanitized HTML in the single top-level section
// container all theme rules hang off.
func WrapContainer(html string) string {
	return `<section class="` + ContainerClass + `">` + html + `</section>`
}
