// Package wemark converts Markdown to styled HTML suitable for platforms
// with restrictive CSS support, notably the WeChat official-account
// editor, which strips <style> tags and CSS custom properties.
//
// # Quick Start
//
// Create a renderer and render markdown:
//
//	r, err := wemark.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, wemark.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// # Pipeline
//
// A render runs these stages:
//
//  1. Markdown preprocessing (line normalization)
//  2. Markdown to HTML via Goldmark (GFM, hard line breaks, syntax
//     highlighting, optional Mac-style code block decoration)
//  3. HTML sanitization (bluemonday) and container wrapping
//  4. CSS variable resolution on the combined stylesheet
//     (base + theme + highlight palette)
//  5. li display patching
//  6. format selection: styles inlined per element (wechat), embedded in
//     a <style> tag (html), or returned separately (html-plain)
//
// If style inlining fails the renderer falls back to embedding the
// stylesheet; the failure is logged, not returned.
//
// # Themes
//
// Themes are plain CSS, optionally declaring a palette as custom
// properties in a :root block. Provide a ThemeLoader (for example the
// on-disk store in internal/themestore, used by cmd/wemarkd) to resolve
// Input.ThemeID; unknown ids fall back to the built-in default theme.
package wemark
