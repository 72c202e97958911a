package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	cssast "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// ErrInlineStyles indicates the style inlining transform failed.
var ErrInlineStyles = errors.New("style inlining failed")

// inlineShell wraps a fragment and its stylesheet in a minimal document
// so selectors resolve against a complete DOM.
const inlineShell = `<!DOCTYPE html><html><head><meta charset="utf-8"><style>%s</style></head><body>%s</body></html>`

// Precedence of a pre-existing inline style attribute: above any
// selector specificity, ordered after every stylesheet rule.
var inlineStyleSpecificity = cascadia.Specificity{1 << 12, 0, 0}

const inlineStyleOrderBase = 1 << 30

type styleDecl struct {
	property  string
	value     string
	important bool
}

type styleRule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	decls []styleDecl
	order int
}

type propState struct {
	value     string
	spec      cascadia.Specificity
	order     int
	important bool
}

// InlineStyles merges a variable-free stylesheet into an HTML fragment by
// writing the computed style of every matching element as an inline style
// attribute. Specificity and source order decide property collisions;
// rules that cannot be expressed as element-level styling (at-rules,
// pseudo-elements) are dropped silently. Any parse failure is returned as
// an error so the caller can fall back to embedding the stylesheet.
func InlineStyles(fragment, cssText string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		fmt.Sprintf(inlineShell, sanitizeCSS(cssText), fragment)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing document: %v", ErrInlineStyles, err)
	}

	var rules []styleRule
	order := 0
	var styleErr error
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if styleErr != nil {
			return
		}
		parsed, ord, err := parseStyleRules(s.Text(), order)
		if err != nil {
			styleErr = err
			return
		}
		rules = append(rules, parsed...)
		order = ord
	})
	if styleErr != nil {
		return "", styleErr
	}

	var applyErr error
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		if applyErr != nil || len(s.Nodes) == 0 {
			return
		}
		style, err := computeStyle(s.Nodes[0], rules)
		if err != nil {
			applyErr = err
			return
		}
		if style != "" {
			s.SetAttr("style", style)
		}
	})
	if applyErr != nil {
		return "", applyErr
	}

	doc.Find("style").Remove()

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("%w: extracting body: %v", ErrInlineStyles, err)
	}
	return out, nil
}

// parseStyleRules converts stylesheet text into matchable rules with
// specificity and source order. At-rules are skipped: the target surface
// cannot honor them and they cannot be expressed per element.
func parseStyleRules(cssText string, startOrder int) ([]styleRule, int, error) {
	sheet, err := parser.Parse(cssText)
	if err != nil {
		return nil, startOrder, fmt.Errorf("%w: parsing stylesheet: %v", ErrInlineStyles, err)
	}

	rules := make([]styleRule, 0, len(sheet.Rules))
	order := startOrder
	for _, rule := range sheet.Rules {
		if rule == nil || rule.Kind != cssast.QualifiedRule {
			continue
		}
		decls := convertDeclarations(rule.Declarations)
		if len(decls) == 0 || len(rule.Selectors) == 0 {
			continue
		}
		group, err := cascadia.ParseGroupWithPseudoElements(strings.Join(rule.Selectors, ","))
		if err != nil {
			return nil, startOrder, fmt.Errorf("%w: selector %q: %v", ErrInlineStyles, strings.Join(rule.Selectors, ","), err)
		}
		for _, sel := range group {
			if sel == nil || sel.PseudoElement() != "" {
				continue
			}
			rules = append(rules, styleRule{
				sel:   sel,
				spec:  sel.Specificity(),
				decls: decls,
				order: order,
			})
			order++
		}
	}
	return rules, order, nil
}

func convertDeclarations(list []*cssast.Declaration) []styleDecl {
	out := make([]styleDecl, 0, len(list))
	for _, d := range list {
		if d == nil {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		val := strings.TrimSpace(d.Value)
		if prop == "" || val == "" {
			continue
		}
		out = append(out, styleDecl{property: prop, value: val, important: d.Important})
	}
	return out
}

// computeStyle resolves the cascade for one element and serializes the
// winning declarations in first-seen property order.
func computeStyle(n *html.Node, rules []styleRule) (string, error) {
	props := map[string]propState{}
	var keys []string

	apply := func(d styleDecl, spec cascadia.Specificity, order int) {
		entry := propState{value: d.value, spec: spec, order: order, important: d.important}
		prev, seen := props[d.property]
		if !seen {
			props[d.property] = entry
			keys = append(keys, d.property)
			return
		}
		if prev.important && !d.important {
			return
		}
		if d.important && !prev.important {
			props[d.property] = entry
			return
		}
		if prev.spec.Less(spec) || (!spec.Less(prev.spec) && order >= prev.order) {
			props[d.property] = entry
		}
	}

	for _, rule := range rules {
		if rule.sel == nil || !rule.sel.Match(n) {
			continue
		}
		for _, d := range rule.decls {
			apply(d, rule.spec, rule.order)
		}
	}

	if inline := strings.TrimSpace(attrValue(n, "style")); inline != "" {
		decls, err := parser.ParseDeclarations(inline)
		if err != nil {
			return "", fmt.Errorf("%w: inline style %q: %v", ErrInlineStyles, inline, err)
		}
		for i, d := range convertDeclarations(decls) {
			apply(d, inlineStyleSpecificity, inlineStyleOrderBase+i)
		}
	}

	if len(keys) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+props[k].value)
	}
	return strings.Join(parts, "; "), nil
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// EmbedStylesheet prepends the stylesheet to the fragment in a <style>
// block. Used for the html output format and as the recovery path when
// inlining fails.
func EmbedStylesheet(fragment, cssText string) string {
	if cssText == "" {
		return fragment
	}
	return "<style>" + sanitizeCSS(cssText) + "</style>" + fragment
}

// sanitizeCSS escapes sequences that could close the surrounding <style>
// block prematurely.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
