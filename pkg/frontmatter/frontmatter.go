package frontmatter

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

var (
	// ErrNoFrontmatter is returned by MustParse when the file does not start
	// with a "---" line.
	ErrNoFrontmatter = errors.New("no frontmatter found")
	// ErrUnterminated means the opening delimiter has no closing partner.
	ErrUnterminated = errors.New("missing closing frontmatter delimiter")
	// ErrInvalidYAML means the header is present but does not decode.
	ErrInvalidYAML = errors.New("invalid frontmatter YAML")
)

// Matter holds the header fields Copilot chat modes, instructions, prompts,
// and agents use. Unknown keys are kept in Extra.
type Matter struct {
	Title       string         `yaml:"title,omitempty" json:"title,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	ApplyTo     string         `yaml:"applyTo,omitempty" json:"applyTo,omitempty"`
	Mode        string         `yaml:"mode,omitempty" json:"mode,omitempty"`
	Model       string         `yaml:"model,omitempty" json:"model,omitempty"`
	Tools       []string       `yaml:"tools,omitempty" json:"tools,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// Parse decodes the front matter of r into matter and returns the body.
// Without front matter, matter is left untouched and the whole content is
// the body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but fails with ErrNoFrontmatter when the header
// is absent.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

// Split separates raw header bytes from the body without decoding.
// ok is false when content has no complete front matter block.
func Split(content []byte) (header, body []byte, ok bool) {
	rest, found := cutOpening(content)
	if !found {
		return nil, content, false
	}

	// The header may be empty: "---\n---\n".
	if closing, found := cutDelimiterLine(rest); found {
		return nil, closing, true
	}

	for offset := 0; ; {
		idx := bytes.Index(rest[offset:], []byte("\n---"))
		if idx < 0 {
			break
		}
		idx += offset
		if after, found := cutDelimiterLine(rest[idx+1:]); found {
			return rest[:idx+1], after, true
		}
		offset = idx + 1
	}
	return nil, content, false
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}

	if _, found := cutOpening(content); !found {
		if required {
			return nil, ErrNoFrontmatter
		}
		return content, nil
	}

	header, body, ok := Split(content)
	if !ok {
		return nil, ErrUnterminated
	}
	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, matter); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding frontmatter"), ErrInvalidYAML)
		}
	}
	return body, nil
}

// cutOpening strips a leading "---" line.
func cutOpening(content []byte) ([]byte, bool) {
	for _, open := range [][]byte{[]byte("---\n"), []byte("---\r\n")} {
		if rest, found := bytes.CutPrefix(content, open); found {
			return rest, true
		}
	}
	return nil, false
}

// cutDelimiterLine strips a "---" line at the start of b, accepting a
// missing final newline.
func cutDelimiterLine(b []byte) ([]byte, bool) {
	rest, found := bytes.CutPrefix(b, []byte("---"))
	if !found {
		return nil, false
	}
	switch {
	case len(rest) == 0:
		return rest, true
	case bytes.HasPrefix(rest, []byte("\r\n")):
		return rest[2:], true
	case rest[0] == '\n':
		return rest[1:], true
	default:
		return nil, false
	}
}
