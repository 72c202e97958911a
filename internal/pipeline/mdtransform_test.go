package pipeline

import (
	"context"
	"testing"
)

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf normalized",
			input: "a\r\nb",
			want:  "a\nb",
		},
		{
			name:  "bare cr normalized",
			input: "a\rb",
			want:  "a\nb",
		},
		{
			name:  "blank lines compressed to two",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "two blank lines kept",
			input: "a\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "plain content unchanged",
			input: "# hi\ntext",
			want:  "# hi\ntext",
		},
	}

	p := &CommonMarkPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
