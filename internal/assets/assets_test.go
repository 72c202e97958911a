package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		style        string
		wantContains string
	}{
		{name: "base stylesheet", style: BaseStyleName, wantContains: ".md-container"},
		{name: "default theme", style: DefaultThemeName, wantContains: ":root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadStyle(tt.style)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("LoadStyle(%q) missing %q", tt.style, tt.wantContains)
			}
		})
	}
}

func TestLoadStyle_NotFound(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle("no-such-style"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
	}
}
