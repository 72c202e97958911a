package pipeline

import (
	"strings"
	"testing"
)

func TestPatchListDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "li rule is patched",
			input: "li { display: block; margin: 4px; }",
			wantContains: []string{
				"li { display: list-item; margin: 4px; }",
			},
			wantNot: []string{"display: block"},
		},
		{
			name:  "other selectors are untouched",
			input: "p { display: block; }\ndiv { display: block; }",
			wantContains: []string{
				"p { display: block; }",
				"div { display: block; }",
			},
			wantNot: []string{"list-item"},
		},
		{
			name:  "only the li occurrence changes",
			input: "li { display: block; }\np { display: block; }",
			wantContains: []string{
				"li { display: list-item; }",
				"p { display: block; }",
			},
		},
		{
			name:  "descendant li selector",
			input: ".md-container li { display: block; }",
			wantContains: []string{
				".md-container li { display: list-item; }",
			},
		},
		{
			name:  "grouped selector ending in li",
			input: "ul, li { display: block; }",
			wantContains: []string{
				"ul, li { display: list-item; }",
			},
		},
		{
			name:  "case insensitive match",
			input: "LI { DISPLAY : BLOCK; }",
			wantContains: []string{
				"LI { display: list-item; }",
			},
		},
		{
			name:  "closed li rule before the declaration is ignored",
			input: "li { color: red; }\np { display: block; }",
			wantContains: []string{
				"p { display: block; }",
			},
			wantNot: []string{"list-item"},
		},
		{
			name:  "selector merely containing li is ignored",
			input: "blockline { display: block; }",
			wantContains: []string{
				"blockline { display: block; }",
			},
			wantNot: []string{"list-item"},
		},
		{
			name:    "no display block declarations",
			input:   "li { color: red; }",
			wantNot: []string{"list-item"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := PatchListDisplay(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("PatchListDisplay() missing %q\ngot: %s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("PatchListDisplay() should not contain %q\ngot: %s", not, got)
				}
			}
		})
	}
}

func TestPatchListDisplay_LookbackBound(t *testing.T) {
	t.Parallel()

	// The declaration sits beyond the lookback window, so the enclosing
	// li rule is not seen and the declaration stays as-is.
	padding := strings.Repeat("/* x */ ", 40)
	input := "li { " + padding + "display: block; }"
	got := PatchListDisplay(input)
	if strings.Contains(got, "list-item") {
		t.Errorf("PatchListDisplay() patched a declaration outside the lookback window:\n%s", got)
	}
}

func TestPatchListDisplay_Unchanged(t *testing.T) {
	t.Parallel()

	input := "ul { margin: 0; }\nol { padding: 0; }"
	if got := PatchListDisplay(input); got != input {
		t.Errorf("PatchListDisplay() = %q, want input unchanged", got)
	}
}
