package server

import (
	"errors"
	"fmt"

	wemark "github.com/alekzhu/wemark"
	"github.com/alekzhu/wemark/internal/themestore"
)

// ThemeSource adapts the on-disk theme store to the renderer's
// ThemeLoader contract, translating the store's not-found error into the
// sentinel the renderer treats as "use default stylesheet".
type ThemeSource struct {
	store *themestore.Store
}

// NewThemeSource creates a ThemeSource backed by the given store.
func NewThemeSource(store *themestore.Store) *ThemeSource {
	return &ThemeSource{store: store}
}

// ThemeCSS returns the stylesheet text for a theme id.
func (t *ThemeSource) ThemeCSS(id string) (string, error) {
	_, css, err := t.store.Get(id)
	if errors.Is(err, themestore.ErrNotFound) {
		return "", fmt.Errorf("%w: %q", wemark.ErrThemeNotFound, id)
	}
	if err != nil {
		return "", err
	}
	return css, nil
}

// Compile-time interface check.
var _ wemark.ThemeLoader = (*ThemeSource)(nil)
