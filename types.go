package wemark

import (
	"fmt"
	"strings"
)

// Format selects the terminal output shape of a render.
type Format string

// Output formats.
const (
	// FormatWeChat inlines every style onto the matching elements and
	// returns HTML only. Default.
	FormatWeChat Format = "wechat"
	// FormatHTML embeds the processed stylesheet in a <style> tag
	// prepended to the HTML and returns HTML only.
	FormatHTML Format = "html"
	// FormatHTMLPlain returns the HTML and the processed stylesheet as
	// two separate outputs.
	FormatHTMLPlain Format = "html-plain"
)

// ParseFormat resolves a caller-supplied discriminator to a Format.
// Empty means FormatWeChat.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return FormatWeChat, nil
	case FormatWeChat:
		return FormatWeChat, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatHTMLPlain:
		return FormatHTMLPlain, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// RenderOptions carries per-render presentation options. Several fields
// are accepted for wire compatibility with existing clients but not yet
// acted on; they are documented as placeholders.
type RenderOptions struct {
	CiteStatus       bool   `json:"citeStatus"`       // placeholder, unused
	CountStatus      bool   `json:"countStatus"`      // placeholder, unused
	IsMacCodeBlock   bool   `json:"isMacCodeBlock"`   // decorate code blocks with a three-dot header
	IsShowLineNumber bool   `json:"isShowLineNumber"` // placeholder, unused
	Legend           string `json:"legend"`           // placeholder, unused
	CodeTheme        string `json:"codeTheme"`        // named highlight palette, default github-dark
}

// Input contains render parameters.
type Input struct {
	Markdown string        // Markdown content (required)
	ThemeID  string        // Theme identifier (optional, unknown means default theme)
	Format   Format        // Output shape (optional, empty means wechat)
	Options  RenderOptions // Presentation options (optional)
}

// RenderResult is the outcome of one render.
type RenderResult struct {
	HTML        string      `json:"html"`
	CSS         string      `json:"css,omitempty"`
	ReadingTime ReadingTime `json:"readingTime"`
}

// ThemeLoader resolves a theme id to its stylesheet text. Implementations
// return ErrThemeNotFound for unknown ids; the renderer treats that as
// "use default stylesheet", not as an error.
type ThemeLoader interface {
	ThemeCSS(id string) (string, error)
}
