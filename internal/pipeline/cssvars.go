package pipeline

import (
	"regexp"
	"strings"
)

// Literal substitutions for theme compatibility. A handful of variable
// names are known to appear as hsl() arguments or to carry values that
// render poorly inline, so they are pinned to literals instead of being
// run through generic substitution.
const (
	foregroundLiteral = "hsl(0, 0%, 13%)"
	backgroundLiteral = "hsl(0, 0%, 100%)"
	blockquoteLiteral = "rgba(0, 0, 0, 0.05)"
	containerColor    = "#222222"
)

// Precompiled patterns for the rewrite passes.
var (
	// :root block with a multi-line body. Non-greedy so a stylesheet with
	// several rules after :root only loses the first block.
	rootBlockPattern = regexp.MustCompile(`(?s):root\s*\{(.*?)\}`)

	// Custom property declarations inside the :root body.
	varDeclPattern = regexp.MustCompile(`--([\w-]+)\s*:\s*([^;}]+)`)

	// Any remaining var() reference, optionally carrying a fallback
	// argument (one nesting level of parentheses tolerated inside it),
	// for the final sweep.
	anyVarPattern = regexp.MustCompile(`var\(\s*--[\w-]+\s*(?:,\s*((?:[^()]|\([^()]*\))*))?\)`)

	// Structural shims: variables used as hsl() arguments in source themes.
	hslForegroundPattern = regexp.MustCompile(`hsl\(\s*var\(\s*--foreground\s*\)\s*\)`)
	hslBackgroundPattern = regexp.MustCompile(`hsl\(\s*var\(\s*--background\s*\)\s*\)`)
	blockquoteVarPattern = regexp.MustCompile(`var\(\s*--blockquote-background\s*\)`)
)

// variableDecl is one custom-property definition from the :root block,
// in source order.
type variableDecl struct {
	name  string
	value string
}

// ResolveVariables rewrites a stylesheet so that no var() reference
// survives: the :root block is removed, every defined variable is
// substituted with its literal value, and anything left over falls back
// to its fallback argument when one is present, else to the literal
// "inherit". When the theme defines font variables a
// .md-container rule pinning them is prepended, since several source
// themes declare the variables but never consume them on the container.
func ResolveVariables(css string) string {
	decls := extractRootBlock(&css)

	// The blockquote background is pinned before generic substitution so
	// the literal wins regardless of what the theme defines.
	css = blockquoteVarPattern.ReplaceAllString(css, blockquoteLiteral)

	for _, d := range decls {
		pattern := regexp.MustCompile(`var\(\s*` + regexp.QuoteMeta("--"+d.name) + `\s*(?:,\s*(?:[^()]|\([^()]*\))*)?\)`)
		css = pattern.ReplaceAllLiteralString(css, d.value)
	}

	// hsl(var(--x)) shims catch references left unresolved above.
	css = hslForegroundPattern.ReplaceAllString(css, foregroundLiteral)
	css = hslBackgroundPattern.ReplaceAllString(css, backgroundLiteral)

	// Last-resort sweep: the inliner has no notion of CSS variables, so
	// nothing var-shaped may survive. Runs even when no :root exists.
	css = resolveLeftoverVars(css)

	if container := buildContainerRule(decls); container != "" {
		css = container + css
	}

	return css
}

// resolveLeftoverVars rewrites every remaining var() reference to its
// fallback argument when one is present, otherwise to inherit. Repeats
// until stable so a fallback that is itself a var() reference collapses
// too; each pass removes at least one reference, so the loop terminates.
func resolveLeftoverVars(css string) string {
	for {
		next := anyVarPattern.ReplaceAllStringFunc(css, func(ref string) string {
			m := anyVarPattern.FindStringSubmatch(ref)
			if fallback := strings.TrimSpace(m[1]); fallback != "" {
				return fallback
			}
			return "inherit"
		})
		if next == css {
			return next
		}
		css = next
	}
}

// extractRootBlock removes the first :root block from the stylesheet and
// returns its custom-property declarations in source order. Absence of a
// :root block is "nothing to do", not an error.
func extractRootBlock(css *string) []variableDecl {
	loc := rootBlockPattern.FindStringSubmatchIndex(*css)
	if loc == nil {
		return nil
	}

	body := (*css)[loc[2]:loc[3]]
	*css = (*css)[:loc[0]] + (*css)[loc[1]:]

	matches := varDeclPattern.FindAllStringSubmatch(body, -1)
	decls := make([]variableDecl, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if name == "" || value == "" {
			continue
		}
		decls = append(decls, variableDecl{name: name, value: value})
	}
	return decls
}

// buildContainerRule synthesizes a .md-container rule when the theme
// defines font variables. First definition wins; the rule pins
// line-height and a near-black text color alongside the fonts.
func buildContainerRule(decls []variableDecl) string {
	var fontFamily, fontSize string
	for _, d := range decls {
		if fontFamily == "" && strings.HasSuffix(d.name, "font-family") {
			fontFamily = d.value
		}
		if fontSize == "" && strings.HasSuffix(d.name, "font-size") {
			fontSize = d.value
		}
	}
	if fontFamily == "" && fontSize == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(".md-container {\n")
	if fontFamily != "" {
		b.WriteString("  font-family: " + fontFamily + ";\n")
	}
	if fontSize != "" {
		b.WriteString("  font-size: " + fontSize + ";\n")
	}
	b.WriteString("  line-height: 1.8;\n")
	b.WriteString("  color: " + containerColor + ";\n")
	b.WriteString("}\n")
	return b.String()
}
