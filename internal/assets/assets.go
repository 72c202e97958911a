// Package assets provides the embedded stylesheets shipped with the
// renderer: the base stylesheet applied to every document and the
// default theme used when no theme is requested or found.
package assets

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed styles/*
var styles embed.FS

// ErrStyleNotFound indicates a named embedded style does not exist.
var ErrStyleNotFound = errors.New("style not found")

// Built-in style names.
const (
	BaseStyleName    = "base"
	DefaultThemeName = "default"
)

// LoadStyle loads an embedded CSS style by name, without the .css
// extension.
func LoadStyle(name string) (string, error) {
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}
