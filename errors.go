package wemark

import (
	"errors"

	"github.com/alekzhu/wemark/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInvalidFormat = errors.New("invalid output format")
	ErrThemeNotFound = errors.New("theme not found")

	// ErrHTMLConversion marks markdown-to-HTML conversion failures
	// surfaced through Render.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
)
