package pipeline

import "regexp"

// lookbackWindow bounds how far back the patcher searches for an
// enclosing li rule. Large enough for a typical rule opening; deeply
// nested or unusually formatted rules can be misclassified, which is an
// accepted approximation rather than a correctness guarantee.
const lookbackWindow = 200

var (
	displayBlockPattern = regexp.MustCompile(`(?i)display\s*:\s*block`)

	// An li selector whose rule body is still open at the end of the
	// window (no intervening closing brace).
	openLiRulePattern = regexp.MustCompile(`(?i)(?:^|[\s,{}>+~;])li\s*\{[^}]*$`)
)

// PatchListDisplay rewrites display:block declarations back to
// display:list-item when they appear inside an li rule body. Themes
// frequently set li to block display, which hides list markers once the
// styles are inlined; all other display:block declarations are left
// untouched.
func PatchListDisplay(css string) string {
	matches := displayBlockPattern.FindAllStringIndex(css, -1)
	if len(matches) == 0 {
		return css
	}

	var b []byte
	last := 0
	for _, loc := range matches {
		start := loc[0] - lookbackWindow
		if start < 0 {
			start = 0
		}
		if !openLiRulePattern.MatchString(css[start:loc[0]]) {
			continue
		}
		b = append(b, css[last:loc[0]]...)
		b = append(b, "display: list-item"...)
		last = loc[1]
	}
	b = append(b, css[last:]...)
	return string(b)
}
