package search

import "strings"

// Tier is a relevance bucket. Higher is better.
type Tier int

const (
	// TierNone means the item did not match.
	TierNone Tier = iota
	// TierRelated is a filename, collection id, or tag match.
	TierRelated
	// TierDescription is a description match.
	TierDescription
	// TierTitle is a title or collection name match.
	TierTitle
)

// String names the field class that produced the tier.
func (t Tier) String() string {
	switch t {
	case TierTitle:
		return "title"
	case TierDescription:
		return "description"
	case TierRelated:
		return "related"
	default:
		return "none"
	}
}

// Stars renders the tier as one to three asterisks.
func (t Tier) Stars() string {
	if t <= TierNone {
		return ""
	}
	return strings.Repeat("*", int(t))
}
