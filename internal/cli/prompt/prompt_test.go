package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"long yes", "YES\n", true},
		{"whitespace", "  y  \n", true},
		{"no", "n\n", false},
		{"default", "\n", false},
		{"other", "sure\n", false},
		{"eof", "", false},
		{"no trailing newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Confirm("Install it?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.HasPrefix(buf.String(), "Install it? [y/N]: ") {
				t.Errorf("unexpected prompt %q", buf.String())
			}
		})
	}
}

func TestSelect_EmptyList(t *testing.T) {
	t.Parallel()

	p := NewWithIO(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Select("go", nil)
	if !errors.Is(err, ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
}

func TestSelect_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithIO(strings.NewReader(""), &buf)

	idx, err := p.Select("go", []string{"instructions/go.instructions.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected 0, got %d", idx)
	}
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	labels := []string{"instructions/go.instructions.md", "prompts/go-review.prompt.md"}

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "explicit first", input: "1\n", want: 0},
		{name: "explicit second", input: "2\n", want: 1},
		{name: "default on empty", input: "\n", want: 0},
		{name: "whitespace trimmed", input: "  2  \n", want: 1},
		{name: "not a number", input: "abc\n", wantErr: ErrInvalidSelection},
		{name: "out of range", input: "3\n", wantErr: ErrInvalidSelection},
		{name: "zero", input: "0\n", wantErr: ErrInvalidSelection},
		{name: "eof", input: "", wantErr: ErrSelectionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &buf)

			got, err := p.Select("go", labels)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %d, want %d", got, tt.want)
			}
			if !strings.Contains(buf.String(), "[2] prompts/go-review.prompt.md") {
				t.Errorf("labels not listed: %q", buf.String())
			}
		})
	}
}
