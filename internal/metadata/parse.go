package metadata

import (
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// collectionsSection is the listing key holding collections.
const collectionsSection = "collections"

// Warning describes a listing entry that was skipped or looked suspicious.
type Warning struct {
	// Section is the listing key the entry came from, e.g. "instructions".
	Section string `json:"section"`
	// Entry is the zero-based position within the section, or -1 for the section itself.
	Entry int `json:"entry"`
	// Message explains the problem.
	Message string `json:"message"`
	// Skipped is true when the entry was left out of the index.
	Skipped bool `json:"skipped"`
}

// String formats the warning for logs.
func (w Warning) String() string {
	if w.Entry < 0 {
		return fmt.Sprintf("%s: %s", w.Section, w.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", w.Section, w.Entry, w.Message)
}

type artifactEntry struct {
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"`
}

type collectionEntry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Items       json.RawMessage `json:"items"`
}

type collectionItemEntry struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Parse builds an index from a raw remote listing.
//
// The listing is a JSON object with one array per mode wire name and a
// "collections" array. Malformed entries are skipped and recorded as
// warnings on the returned index. Parse fails with a parse error only when the
// document as a whole is not a JSON object.
func Parse(data []byte) (*Index, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, errors.Parse(err, "decoding remote listing")
	}

	p := &parser{seen: make(map[artifact.Key]bool)}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		raw := sections[name]
		if name == collectionsSection {
			p.parseCollections(raw)
			continue
		}
		mode, ok := sectionMode(name)
		if !ok {
			p.warn(name, -1, "unknown section ignored", true)
			continue
		}
		p.parseArtifacts(name, mode, raw)
	}

	return newIndex(p.artifacts, p.collections, p.warnings), nil
}

// sectionMode matches a listing key against the mode wire names exactly.
func sectionMode(name string) (artifact.Mode, bool) {
	for _, m := range artifact.Modes() {
		if m.String() == name {
			return m, true
		}
	}
	return artifact.Undefined, false
}

type parser struct {
	artifacts   []artifact.Artifact
	collections []artifact.Collection
	warnings    []Warning
	seen        map[artifact.Key]bool
	seenIDs     map[string]bool
}

func (p *parser) warn(section string, entry int, msg string, skipped bool) {
	p.warnings = append(p.warnings, Warning{Section: section, Entry: entry, Message: msg, Skipped: skipped})
}

func (p *parser) entries(section string, raw json.RawMessage) ([]json.RawMessage, bool) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		p.warn(section, -1, "section is not an array", true)
		return nil, false
	}
	return entries, true
}

func (p *parser) parseArtifacts(section string, mode artifact.Mode, raw json.RawMessage) {
	entries, ok := p.entries(section, raw)
	if !ok {
		return
	}

	for i, rawEntry := range entries {
		var e artifactEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			p.warn(section, i, "malformed entry: "+err.Error(), true)
			continue
		}
		filename := strings.TrimSpace(e.Filename)
		if err := artifact.ValidateFilename(filename); err != nil {
			p.warn(section, i, err.Error(), true)
			continue
		}
		key := artifact.Key{Mode: mode, Filename: filename}
		if p.seen[key] {
			p.warn(section, i, fmt.Sprintf("duplicate filename %q", filename), true)
			continue
		}

		locator := key.String()
		if e.Path != "" {
			cleaned := path.Clean(strings.TrimPrefix(e.Path, "/"))
			if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
				p.warn(section, i, fmt.Sprintf("path %q escapes the repository", e.Path), true)
				continue
			}
			locator = cleaned
		}

		if !mode.HasConventionalSuffix(filename) {
			p.warn(section, i, fmt.Sprintf("filename %q does not use the %s suffix convention", filename, mode), false)
		}

		p.seen[key] = true
		p.artifacts = append(p.artifacts, artifact.Artifact{
			Mode:        mode,
			Filename:    filename,
			Title:       strings.TrimSpace(e.Title),
			Description: strings.TrimSpace(e.Description),
			Locator:     locator,
		})
	}
}

func (p *parser) parseCollections(raw json.RawMessage) {
	entries, ok := p.entries(collectionsSection, raw)
	if !ok {
		return
	}
	if p.seenIDs == nil {
		p.seenIDs = make(map[string]bool)
	}

	for i, rawEntry := range entries {
		var e collectionEntry
		if err := json.Unmarshal(rawEntry, &e); err != nil {
			p.warn(collectionsSection, i, "malformed entry: "+err.Error(), true)
			continue
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			p.warn(collectionsSection, i, "collection id is required", true)
			continue
		}
		if p.seenIDs[id] {
			p.warn(collectionsSection, i, fmt.Sprintf("duplicate collection id %q", id), true)
			continue
		}
		p.seenIDs[id] = true

		c := artifact.Collection{
			ID:          id,
			Name:        strings.TrimSpace(e.Name),
			Description: strings.TrimSpace(e.Description),
			Tags:        compactTags(e.Tags),
		}
		c.Items = p.parseItems(i, e.Items)
		p.collections = append(p.collections, c)
	}
}

func (p *parser) parseItems(entry int, raw json.RawMessage) []artifact.Key {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		p.warn(collectionsSection, entry, "items is not an array", false)
		return nil
	}

	var keys []artifact.Key
	seen := make(map[artifact.Key]bool, len(items))
	for _, rawItem := range items {
		var item collectionItemEntry
		if err := json.Unmarshal(rawItem, &item); err != nil {
			p.warn(collectionsSection, entry, "malformed item: "+err.Error(), false)
			continue
		}
		key, err := artifact.ParseItemPath(item.Path, item.Kind)
		if err != nil {
			p.warn(collectionsSection, entry, fmt.Sprintf("item %q skipped: %v", item.Path, err), false)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// compactTags trims tags and drops empties and case-insensitive duplicates,
// keeping the first spelling and the original order.
func compactTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
