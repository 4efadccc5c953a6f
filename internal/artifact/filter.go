package artifact

import "strings"

// ModeFilter restricts a search to one mode, or to none.
type ModeFilter struct {
	mode Mode
	any  bool
}

// AnyMode disables mode filtering.
var AnyMode = ModeFilter{any: true}

// OnlyMode restricts results to m. OnlyMode(Undefined) matches nothing.
func OnlyMode(m Mode) ModeFilter {
	return ModeFilter{mode: m}
}

// ParseModeFilter parses "any", the empty string, or a mode name.
func ParseModeFilter(s string) (ModeFilter, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "any") {
		return AnyMode, nil
	}
	if strings.EqualFold(trimmed, Undefined.String()) {
		return OnlyMode(Undefined), nil
	}
	m, err := ParseMode(trimmed)
	if err != nil {
		return ModeFilter{}, err
	}
	return OnlyMode(m), nil
}

// IsAny reports whether the filter disables mode filtering.
func (f ModeFilter) IsAny() bool { return f.any }

// Mode returns the mode the filter restricts to. It is meaningless when IsAny is true.
func (f ModeFilter) Mode() Mode { return f.mode }

// Allows reports whether an artifact of mode m passes the filter.
func (f ModeFilter) Allows(m Mode) bool {
	if f.any {
		return true
	}
	return f.mode.Valid() && f.mode == m
}

// String returns "any" or the filtered mode's wire name.
func (f ModeFilter) String() string {
	if f.any {
		return "any"
	}
	return f.mode.String()
}
