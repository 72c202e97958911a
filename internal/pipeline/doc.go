// Package pipeline implements the Markdown-to-styled-HTML pipeline.
//
// This package handles the stages between raw Markdown and the final
// platform-safe HTML:
//   - Markdown preprocessing (line normalization)
//   - Markdown to HTML conversion via Goldmark (GFM, syntax highlighting,
//     optional Mac-style code block decoration)
//   - HTML sanitization via bluemonday
//   - CSS variable resolution (:root extraction and var() substitution)
//   - li display patching (display:block back to display:list-item)
//   - style inlining (selector matching with specificity and source-order
//     cascade), with an embedded-<style> fallback
//
// The variable resolver and li patcher are deliberately textual pattern
// rewrites rather than a CSS parser: downstream theme compatibility
// depends on their exact rewrite rules, including the hardcoded
// --foreground/--background/--blockquote-background substitutions.
package pipeline
