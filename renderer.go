package wemark

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alekzhu/wemark/internal/assets"
	"github.com/alekzhu/wemark/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Renderer orchestrates the Markdown-to-styled-HTML pipeline. Create with
// New; Render is safe for concurrent use, all per-render state is local
// to one call.
type Renderer struct {
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	sanitizer    *pipeline.Sanitizer
	themes       ThemeLoader
	logger       *log.Logger

	baseCSS         string
	defaultThemeCSS string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithThemeLoader sets the theme store collaborator used to resolve
// Input.ThemeID. Without one, every render uses the default theme.
func WithThemeLoader(l ThemeLoader) Option {
	return func(r *Renderer) { r.themes = l }
}

// WithLogger sets the logger used for recovered internal failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithDefaultTheme overrides the embedded default theme stylesheet.
func WithDefaultTheme(css string) Option {
	return func(r *Renderer) { r.defaultThemeCSS = css }
}

// New creates a Renderer with default configuration. Returns an error if
// the embedded stylesheets cannot be loaded.
func New(opts ...Option) (*Renderer, error) {
	base, err := assets.LoadStyle(assets.BaseStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading base stylesheet: %w", err)
	}
	defaultTheme, err := assets.LoadStyle(assets.DefaultThemeName)
	if err != nil {
		return nil, fmt.Errorf("loading default theme: %w", err)
	}

	r := &Renderer{
		preprocessor:    &pipeline.CommonMarkPreprocessor{},
		converter:       pipeline.NewGoldmarkConverter(),
		sanitizer:       pipeline.NewSanitizer(),
		logger:          log.New(os.Stderr, "", log.LstdFlags),
		baseCSS:         base,
		defaultThemeCSS: defaultTheme,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Render runs the full pipeline. The context is used for cancellation.
func (r *Renderer) Render(ctx context.Context, input Input) (*RenderResult, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	format, err := ParseFormat(string(input.Format))
	if err != nil {
		return nil, err
	}

	codeTheme := input.Options.CodeTheme
	if codeTheme == "" {
		codeTheme = pipeline.DefaultCodeTheme
	}

	// Reading time is derived from the raw input, before preprocessing.
	readingTime := NewReadingTime(input.Markdown)

	mdContent := r.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := r.converter.ToHTML(ctx, mdContent, input.Options.IsMacCodeBlock)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	fragment = pipeline.WrapContainer(r.sanitizer.Sanitize(fragment))

	themeCSS, err := r.themeCSS(input.ThemeID)
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", input.ThemeID, err)
	}

	// Order matters: base first, theme can override, highlight palette last.
	combined := strings.Join([]string{r.baseCSS, themeCSS, pipeline.HighlightCSS(codeTheme)}, "\n")
	css := pipeline.PatchListDisplay(pipeline.ResolveVariables(combined))

	res := &RenderResult{ReadingTime: readingTime}

	switch format {
	case FormatWeChat:
		inlined, err := pipeline.InlineStyles(fragment, css)
		if err != nil {
			// The single recovery-from-internal-failure path: trade
			// platform compatibility for correctness of content.
			r.logger.Printf("[render] style inlining failed, embedding stylesheet: %v", err)
			res.HTML = pipeline.EmbedStylesheet(fragment, css)
			return res, nil
		}
		res.HTML = inlined
	case FormatHTML:
		res.HTML = pipeline.EmbedStylesheet(fragment, css)
	case FormatHTMLPlain:
		res.HTML = fragment
		res.CSS = css
	}

	return res, nil
}

// themeCSS resolves the theme stylesheet for a render. An empty id or an
// unknown id yields the default theme; other loader errors propagate.
func (r *Renderer) themeCSS(id string) (string, error) {
	if id == "" || r.themes == nil {
		return r.defaultThemeCSS, nil
	}
	css, err := r.themes.ThemeCSS(id)
	if errors.Is(err, ErrThemeNotFound) {
		return r.defaultThemeCSS, nil
	}
	if err != nil {
		return "", err
	}
	return css, nil
}
