package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
)

// Index is an immutable snapshot of every known artifact and collection.
type Index struct {
	byKey       map[artifact.Key]artifact.Artifact
	artifacts   []artifact.Artifact
	collections []artifact.Collection
	byID        map[string]int
	fingerprint string
	warnings    []Warning
}

// NewIndex builds an index from already-validated artifacts and collections.
// When two artifacts share a key, or two collections share an id, the first wins.
func NewIndex(artifacts []artifact.Artifact, collections []artifact.Collection) *Index {
	return newIndex(artifacts, collections, nil)
}

func newIndex(artifacts []artifact.Artifact, collections []artifact.Collection, warnings []Warning) *Index {
	idx := &Index{
		byKey:    make(map[artifact.Key]artifact.Artifact, len(artifacts)),
		byID:     make(map[string]int, len(collections)),
		warnings: warnings,
	}

	for _, a := range artifacts {
		if _, dup := idx.byKey[a.Key()]; dup {
			continue
		}
		if a.Locator == "" {
			a.Locator = a.Key().String()
		}
		idx.byKey[a.Key()] = a
		idx.artifacts = append(idx.artifacts, a)
	}
	slices.SortFunc(idx.artifacts, func(a, b artifact.Artifact) int {
		switch {
		case a.Key().Less(b.Key()):
			return -1
		case b.Key().Less(a.Key()):
			return 1
		}
		return 0
	})

	for _, c := range collections {
		if _, dup := idx.byID[c.ID]; dup {
			continue
		}
		idx.byID[c.ID] = -1
		idx.collections = append(idx.collections, c)
	}
	slices.SortFunc(idx.collections, func(a, b artifact.Collection) int {
		return strings.Compare(a.ID, b.ID)
	})
	for i, c := range idx.collections {
		idx.byID[c.ID] = i
	}

	idx.fingerprint = fingerprint(idx.artifacts, idx.collections)
	return idx
}

// fingerprint hashes the sorted contents so unchanged listings can be detected.
func fingerprint(artifacts []artifact.Artifact, collections []artifact.Collection) string {
	h := sha256.New()
	for _, a := range artifacts {
		for _, s := range []string{a.Mode.String(), a.Filename, a.Title, a.Description, a.Locator} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
	}
	h.Write([]byte{1})
	for _, c := range collections {
		tags := slices.Clone(c.Tags)
		slices.Sort(tags)
		for _, s := range []string{c.ID, c.Name, c.Description, strings.Join(tags, "\x01")} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
		for _, k := range c.Items {
			h.Write([]byte(k.String()))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Len returns the number of artifacts.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.artifacts)
}

// Lookup returns the artifact with the given key.
func (idx *Index) Lookup(k artifact.Key) (artifact.Artifact, bool) {
	if idx == nil {
		return artifact.Artifact{}, false
	}
	a, ok := idx.byKey[k]
	return a, ok
}

// Artifacts returns every artifact ordered by mode, then filename.
// The returned slice must not be modified.
func (idx *Index) Artifacts() []artifact.Artifact {
	if idx == nil {
		return nil
	}
	return idx.artifacts
}

// Collections returns every collection ordered by id.
// The returned slice must not be modified.
func (idx *Index) Collections() []artifact.Collection {
	if idx == nil {
		return nil
	}
	return idx.collections
}

// Collection returns the collection with the given id.
func (idx *Index) Collection(id string) (artifact.Collection, bool) {
	if idx == nil {
		return artifact.Collection{}, false
	}
	i, ok := idx.byID[id]
	if !ok {
		return artifact.Collection{}, false
	}
	return idx.collections[i], true
}

// Members resolves a collection's items against this index. Items the index
// does not know are returned in missing, in collection order.
func (idx *Index) Members(c artifact.Collection) (members []artifact.Artifact, missing []artifact.Key) {
	for _, k := range c.Items {
		if a, ok := idx.Lookup(k); ok {
			members = append(members, a)
		} else {
			missing = append(missing, k)
		}
	}
	return members, missing
}

// CountByMode returns the number of artifacts per mode.
func (idx *Index) CountByMode() map[artifact.Mode]int {
	counts := make(map[artifact.Mode]int)
	for _, a := range idx.Artifacts() {
		counts[a.Mode]++
	}
	return counts
}

// Fingerprint returns a stable hash of the index contents.
func (idx *Index) Fingerprint() string {
	if idx == nil {
		return ""
	}
	return idx.fingerprint
}

// Warnings returns the entries skipped or flagged while parsing the listing.
func (idx *Index) Warnings() []Warning {
	if idx == nil {
		return nil
	}
	return idx.warnings
}
