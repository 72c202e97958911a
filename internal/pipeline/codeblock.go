package pipeline

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/util"
)

// Fixed dot colors for the Mac-style code block header.
const (
	macDotRed    = "#ff5f56"
	macDotYellow = "#ffbd2e"
	macDotGreen  = "#27c93f"
)

// DefaultCodeTheme is the highlight palette used when none is requested.
const DefaultCodeTheme = "github-dark"

// macCodeBlockWrapper decorates highlighted code with a header strip of
// three colored dots. The styles are written inline at render time on
// purpose: this is a structural HTML augmentation, not a stylesheet-driven
// style, so it must survive even if the downstream inliner is bypassed.
func macCodeBlockWrapper(w util.BufWriter, _ highlighting.CodeBlockContext, entering bool) {
	if entering {
		_, _ = w.WriteString(`<section class="mac-code-block" style="border-radius: 8px; overflow: hidden; margin: 16px 0;">`)
		_, _ = w.WriteString(`<span style="display: block; padding: 10px 14px; background-color: #21252b; line-height: 0;">`)
		writeMacDot(w, macDotRed)
		writeMacDot(w, macDotYellow)
		writeMacDot(w, macDotGreen)
		_, _ = w.WriteString(`</span>`)
		return
	}
	_, _ = w.WriteString(`</section>`)
}

func writeMacDot(w util.BufWriter, color string) {
	_, _ = w.WriteString(`<span style="display: inline-block; width: 12px; height: 12px; border-radius: 50%; margin-right: 8px; background-color: `)
	_, _ = w.WriteString(color)
	_, _ = w.WriteString(`;"></span>`)
}

// HighlightCSS renders the class-based stylesheet for a named chroma
// theme. Unknown names fall back to the default chroma style rather than
// erroring.
func HighlightCSS(theme string) string {
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return ""
	}
	return buf.String()
}
