package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"describedir/internal/schema"
)

func TestRenderTreeConnectors(t *testing.T) {
	a := &schema.Node{Name: "a.txt", Type: schema.TypeFile, Path: "a.txt", Description: "First file."}
	b := &schema.Node{Name: "b.txt", Type: schema.TypeFile, Path: "b.txt", Description: "Last file."}
	root := &schema.Node{
		Name: "proj", Type: schema.TypeDirectory, Path: ".",
		Description: "A project.",
		Children:    []*schema.Node{a, b},
	}

	out := RenderTree(root)

	assert.Contains(t, out, "proj/")
	assert.Contains(t, out, "├── a.txt")
	assert.Contains(t, out, "└── b.txt")
	// The non-last sibling's description is indented under the vertical rule.
	assert.Contains(t, out, "│   ")
	assert.Contains(t, out, "First file.")
	assert.Contains(t, out, "Last file.")
}

func TestRenderHeader(t *testing.T) {
	doc := &schema.Document{
		Schema: schema.SchemaVersion, Root: "/tmp/proj",
		GeneratedAt: "2026-08-31T10:00:00Z", Model: "m",
		Tree: &schema.Node{Name: "proj", Type: schema.TypeDirectory, Path: "."},
	}
	out := RenderHeader(doc)
	assert.Contains(t, out, "proj")
	assert.Contains(t, out, "/tmp/proj")
	assert.Contains(t, out, "2026-08-31T10:00:00Z")
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	require.Equal(t, []string{"one two", "three", "four five"}, lines)

	assert.Nil(t, wrap("", 10))
	assert.Equal(t, []string{"word"}, wrap("word", 2))
}

func TestWrapKeepsAllWords(t *testing.T) {
	text := strings.Repeat("word ", 40)
	lines := wrap(text, 20)
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}
}
