package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajilantony/copilot-agentops-mcp/internal/artifact"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

func TestParse_Sample(t *testing.T) {
	idx, err := Parse([]byte(sampleListing))
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())
	assert.Empty(t, idx.Warnings())

	a, ok := idx.Lookup(artifact.Key{Mode: artifact.Instructions, Filename: "dotnet-best-practices.instruction.md"})
	require.True(t, ok)
	assert.Equal(t, "DotNet Best Practices", a.Title)
	assert.Equal(t, "instructions/dotnet-best-practices.instruction.md", a.Locator)

	c, ok := idx.Collection("dotnet")
	require.True(t, ok)
	assert.Equal(t, []string{"csharp", "dotnet"}, c.Tags)
	assert.Equal(t, []artifact.Key{
		{Mode: artifact.Instructions, Filename: "dotnet-best-practices.instruction.md"},
		{Mode: artifact.Prompts, Filename: "review.prompt.md"},
	}, c.Items)
}

func TestParse_ArtifactsSorted(t *testing.T) {
	idx, err := Parse([]byte(sampleListing))
	require.NoError(t, err)

	var got []string
	for _, a := range idx.Artifacts() {
		got = append(got, a.Key().String())
	}
	assert.Equal(t, []string{
		"chatmodes/planner.chatmode.md",
		"instructions/dotnet-best-practices.instruction.md",
		"instructions/go.instructions.md",
		"prompts/review.prompt.md",
	}, got)
}

func TestParse_SkipsBadEntries(t *testing.T) {
	listing := `{
	  "instructions": [
	    {"filename": "good.instructions.md", "title": "Good"},
	    {"filename": ""},
	    {"filename": "../evil.instructions.md"},
	    {"filename": "good.instructions.md", "title": "Duplicate"},
	    "not an object",
	    {"filename": "odd.md", "title": "Odd suffix"},
	    {"filename": "moved.instructions.md", "path": "../../outside"}
	  ],
	  "prompts": {"filename": "x"},
	  "skills": [],
	  "collections": [
	    {"id": "", "name": "no id"},
	    {"id": "c1", "items": [{"path": "instructions/good.instructions.md", "kind": "instruction"}, {"path": "x/y.md", "kind": "widget"}]},
	    {"id": "c1", "name": "duplicate"}
	  ]
	}`

	idx, err := Parse([]byte(listing))
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len(), "good and odd-suffix entries survive")
	dup, _ := idx.Lookup(artifact.Key{Mode: artifact.Instructions, Filename: "good.instructions.md"})
	assert.Equal(t, "Good", dup.Title, "first duplicate wins")

	var skipped, flagged int
	for _, w := range idx.Warnings() {
		if w.Skipped {
			skipped++
		} else {
			flagged++
		}
	}
	// empty filename, traversal, duplicate, non-object, escaping path,
	// prompts not an array, unknown section, empty id, duplicate id
	assert.Equal(t, 9, skipped)
	// odd suffix, unknown item kind
	assert.Equal(t, 2, flagged)

	c, ok := idx.Collection("c1")
	require.True(t, ok)
	assert.Len(t, c.Items, 1)
}

func TestParse_NotAnObject(t *testing.T) {
	for _, in := range []string{"", "[1,2]", "<html>", `"text"`} {
		_, err := Parse([]byte(in))
		if !errors.Is(err, errors.ErrParse) {
			t.Errorf("Parse(%q) err = %v, want parse error", in, err)
		}
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Section: "prompts", Entry: 3, Message: "bad"}
	assert.Equal(t, "prompts[3]: bad", w.String())
	w.Entry = -1
	assert.Equal(t, "prompts: bad", w.String())
}

func TestIndex_FingerprintIgnoresOrder(t *testing.T) {
	a := []artifact.Artifact{
		{Mode: artifact.Prompts, Filename: "a.prompt.md", Title: "A"},
		{Mode: artifact.Agents, Filename: "b.agent.md", Title: "B"},
	}
	b := []artifact.Artifact{a[1], a[0]}
	c1 := []artifact.Collection{{ID: "x", Tags: []string{"one", "two"}}}
	c2 := []artifact.Collection{{ID: "x", Tags: []string{"two", "one"}}}

	assert.Equal(t, NewIndex(a, c1).Fingerprint(), NewIndex(b, c2).Fingerprint())

	changed := []artifact.Artifact{a[0], {Mode: artifact.Agents, Filename: "b.agent.md", Title: "B2"}}
	assert.NotEqual(t, NewIndex(a, c1).Fingerprint(), NewIndex(changed, c1).Fingerprint())
}

func TestIndex_Members(t *testing.T) {
	idx, err := Parse([]byte(strings.Replace(sampleListing,
		`{"path": "prompts/review.prompt.md", "kind": "prompt"}`,
		`{"path": "prompts/gone.prompt.md", "kind": "prompt"}`, 1)))
	require.NoError(t, err)

	c, _ := idx.Collection("dotnet")
	members, missing := idx.Members(c)
	require.Len(t, members, 1)
	assert.Equal(t, "dotnet-best-practices.instruction.md", members[0].Filename)
	assert.Equal(t, []artifact.Key{{Mode: artifact.Prompts, Filename: "gone.prompt.md"}}, missing)
}

func TestIndex_NilSafe(t *testing.T) {
	var idx *Index
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Artifacts())
	_, ok := idx.Lookup(artifact.Key{})
	assert.False(t, ok)
}
