package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string, macCodeBlock bool) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// Two preconfigured instances cover the plain and Mac-decorated code
// block variants; both are safe for concurrent use.
type GoldmarkConverter struct {
	plain goldmark.Markdown
	mac   goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions
// and class-based syntax highlighting. Highlight colors come from a
// chroma theme stylesheet appended later in the pipeline, so the
// highlighter emits classes rather than inline colors.
func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		plain: newGoldmark(false),
		mac:   newGoldmark(true),
	}
}

func newGoldmark(macCodeBlock bool) goldmark.Markdown {
	highlightOpts := []highlighting.Option{
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(true),
		),
	}
	if macCodeBlock {
		highlightOpts = append(highlightOpts,
			highlighting.WithWrapperRenderer(macCodeBlockWrapper))
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(highlightOpts...),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
		),
	)
}

// ToHTML converts Markdown content to an HTML fragment. Supports context
// cancellation via goroutine + select pattern since goldmark doesn't
// natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string, macCodeBlock bool) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := c.plain
	if macCodeBlock {
		md = c.mac
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
