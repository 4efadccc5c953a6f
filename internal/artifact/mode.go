package artifact

import (
	"strings"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// Mode is the closed category an artifact belongs to.
// The zero value is Undefined, which is never a valid search or install target.
type Mode int

// Mode constants, in enumeration order. Ranking relies on this order.
const (
	Undefined Mode = iota
	ChatModes
	Instructions
	Prompts
	Agents
)

// modeInfo is the wire-name table. Index i describes Mode(i).
var modeInfo = [...]struct {
	name     string
	dir      string
	kind     string
	suffixes []string
}{
	Undefined:    {name: "undefined"},
	ChatModes:    {name: "chatmodes", dir: "chatmodes", kind: "chat-mode", suffixes: []string{".chatmode.md"}},
	Instructions: {name: "instructions", dir: "instructions", kind: "instruction", suffixes: []string{".instructions.md", ".instruction.md"}},
	Prompts:      {name: "prompts", dir: "prompts", kind: "prompt", suffixes: []string{".prompt.md"}},
	Agents:       {name: "agents", dir: "agents", kind: "agent", suffixes: []string{".agent.md"}},
}

// aliases maps every accepted spelling to its mode.
var aliases = map[string]Mode{
	"chatmodes":    ChatModes,
	"chatmode":     ChatModes,
	"chat-mode":    ChatModes,
	"chat-modes":   ChatModes,
	"instructions": Instructions,
	"instruction":  Instructions,
	"prompts":      Prompts,
	"prompt":       Prompts,
	"agents":       Agents,
	"agent":        Agents,
}

// Modes returns every installable mode in enumeration order.
func Modes() []Mode {
	return []Mode{ChatModes, Instructions, Prompts, Agents}
}

// ParseMode converts a wire name or kind spelling into a Mode.
// Matching is case-insensitive. "undefined" and unknown tags are rejected.
func ParseMode(s string) (Mode, error) {
	if m, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return Undefined, errors.WithDetail(
		errors.InvalidArgumentf("unknown mode %q", s),
		"valid modes: chatmodes, instructions, prompts, agents",
	)
}

// Valid reports whether m is an installable mode.
func (m Mode) Valid() bool {
	return m > Undefined && int(m) < len(modeInfo)
}

// String returns the wire name of m.
func (m Mode) String() string {
	if m < Undefined || int(m) >= len(modeInfo) {
		return modeInfo[Undefined].name
	}
	return modeInfo[m].name
}

// Dir returns the local subdirectory that holds artifacts of mode m,
// or an empty string for Undefined.
func (m Mode) Dir() string {
	if !m.Valid() {
		return ""
	}
	return modeInfo[m].dir
}

// Kind returns the singular kind name used by collection items.
func (m Mode) Kind() string {
	if !m.Valid() {
		return ""
	}
	return modeInfo[m].kind
}

// HasConventionalSuffix reports whether filename ends in one of the suffixes
// conventionally used for mode m.
func (m Mode) HasConventionalSuffix(filename string) bool {
	if !m.Valid() {
		return false
	}
	lower := strings.ToLower(filename)
	for _, s := range modeInfo[m].suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// "undefined" decodes to Undefined; any other unknown tag is an error.
func (m *Mode) UnmarshalText(text []byte) error {
	if strings.EqualFold(string(text), modeInfo[Undefined].name) {
		*m = Undefined
		return nil
	}
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
