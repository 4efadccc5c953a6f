package search

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
)

// ArtifactHit is a matched artifact.
type ArtifactHit struct {
	Artifact artifact.Artifact
	Tier     Tier
}

// CollectionHit is a matched collection with its members resolved against
// the same index. Members are display context and are not ranked.
type CollectionHit struct {
	Collection artifact.Collection
	Tier       Tier
	Members    []artifact.Artifact
	Missing    []artifact.Key
}

// Hit is one entry of a combined result. Exactly one of Artifact and
// Collection is set.
type Hit struct {
	Tier       Tier
	Artifact   *ArtifactHit
	Collection *CollectionHit
}

// Search ranks artifacts and collections of idx against keyword.
//
// Hits are ordered by tier, highest first. Within a tier artifacts come
// before collections, artifacts are ordered by mode then filename, and
// collections by id. A specific mode filter restricts artifact hits to that
// mode and leaves collections out; filtering on Undefined matches nothing.
func Search(idx *metadata.Index, keyword string, filter artifact.ModeFilter) ([]Hit, error) {
	arts, err := Artifacts(idx, keyword, filter)
	if err != nil {
		return nil, err
	}

	var cols []CollectionHit
	if filter.IsAny() {
		if cols, err = Collections(idx, keyword); err != nil {
			return nil, err
		}
	}

	hits := make([]Hit, 0, len(arts)+len(cols))
	for i := range arts {
		hits = append(hits, Hit{Tier: arts[i].Tier, Artifact: &arts[i]})
	}
	for i := range cols {
		hits = append(hits, Hit{Tier: cols[i].Tier, Collection: &cols[i]})
	}

	// Both halves are already ordered; a stable sort on tier interleaves them
	// without disturbing the within-tier order.
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Tier, a.Tier)
	})
	return hits, nil
}

// Artifacts returns the ranked artifact hits for keyword.
func Artifacts(idx *metadata.Index, keyword string, filter artifact.ModeFilter) ([]ArtifactHit, error) {
	m, err := newMatcher(keyword)
	if err != nil {
		return nil, err
	}
	if !filter.IsAny() && !filter.Mode().Valid() {
		return []ArtifactHit{}, nil
	}

	hits := []ArtifactHit{}
	for _, a := range idx.Artifacts() {
		if !filter.Allows(a.Mode) {
			continue
		}
		if tier := m.artifactTier(a); tier > TierNone {
			hits = append(hits, ArtifactHit{Artifact: a, Tier: tier})
		}
	}

	slices.SortStableFunc(hits, func(a, b ArtifactHit) int {
		if c := cmp.Compare(b.Tier, a.Tier); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Artifact.Mode, b.Artifact.Mode); c != 0 {
			return c
		}
		return strings.Compare(a.Artifact.Filename, b.Artifact.Filename)
	})
	return hits, nil
}

// Collections returns the ranked collection hits for keyword.
func Collections(idx *metadata.Index, keyword string) ([]CollectionHit, error) {
	m, err := newMatcher(keyword)
	if err != nil {
		return nil, err
	}

	hits := []CollectionHit{}
	for _, c := range idx.Collections() {
		tier := m.collectionTier(c)
		if tier == TierNone {
			continue
		}
		members, missing := idx.Members(c)
		hits = append(hits, CollectionHit{
			Collection: c,
			Tier:       tier,
			Members:    members,
			Missing:    missing,
		})
	}

	slices.SortStableFunc(hits, func(a, b CollectionHit) int {
		if c := cmp.Compare(b.Tier, a.Tier); c != 0 {
			return c
		}
		return strings.Compare(a.Collection.ID, b.Collection.ID)
	})
	return hits, nil
}

// matcher holds a folded keyword. A cases.Caser is stateful, so each search
// builds its own.
type matcher struct {
	fold    cases.Caser
	keyword string
}

// ValidateKeyword rejects a keyword that is empty after trimming whitespace.
// It needs no index, so callers can check input before loading one.
func ValidateKeyword(keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return errors.WithDetail(
			errors.InvalidArgumentf("search keyword is empty"),
			"pass a word that appears in an artifact title, description, or filename",
		)
	}
	return nil
}

func newMatcher(keyword string) (*matcher, error) {
	if err := ValidateKeyword(keyword); err != nil {
		return nil, err
	}
	m := &matcher{fold: cases.Fold()}
	m.keyword = m.fold.String(strings.TrimSpace(keyword))
	return m, nil
}

func (m *matcher) contains(field string) bool {
	return field != "" && strings.Contains(m.fold.String(field), m.keyword)
}

func (m *matcher) artifactTier(a artifact.Artifact) Tier {
	switch {
	case m.contains(a.Title):
		return TierTitle
	case m.contains(a.Description):
		return TierDescription
	case m.contains(a.Filename):
		return TierRelated
	default:
		return TierNone
	}
}

func (m *matcher) collectionTier(c artifact.Collection) Tier {
	switch {
	case m.contains(c.Name):
		return TierTitle
	case m.contains(c.Description):
		return TierDescription
	case m.contains(c.ID), slices.ContainsFunc(c.Tags, m.contains):
		return TierRelated
	default:
		return TierNone
	}
}
