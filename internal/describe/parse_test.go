package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatchReplyDirect(t *testing.T) {
	m, err := parseBatchReply(`{"a.go": "Parses flags.", "b.go": "Runs the server."}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a.go": "Parses flags.",
		"b.go": "Runs the server.",
	}, m)
}

func TestParseBatchReplyFenced(t *testing.T) {
	replies := []string{
		"```json\n{\"a.go\": \"Parses flags.\"}\n```",
		"```JSON\n{\"a.go\": \"Parses flags.\"}\n```",
		"```\n{\"a.go\": \"Parses flags.\"}\n```",
	}
	for _, raw := range replies {
		m, err := parseBatchReply(raw)
		require.NoError(t, err, "reply: %q", raw)
		assert.Equal(t, "Parses flags.", m["a.go"])
	}
}

func TestParseBatchReplyEmbedded(t *testing.T) {
	raw := "Here are the descriptions you asked for:\n\n" +
		`{"a.go": "Parses flags.", "b.go": "Runs the server."}` +
		"\n\nLet me know if you need anything else!"
	m, err := parseBatchReply(raw)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestParseBatchReplyBracesInValues(t *testing.T) {
	raw := `Sure: {"a.go": "Defines type Config struct{} with \"quoted\" docs."}`
	m, err := parseBatchReply(raw)
	require.NoError(t, err)
	assert.Equal(t, `Defines type Config struct{} with "quoted" docs.`, m["a.go"])
}

func TestParseBatchReplyPicksLargestCandidate(t *testing.T) {
	raw := `{"note": "ignored"} and then {"a.go": "Parses flags.", "b.go": "Runs the server.", "c.go": "Helpers."}`
	m, err := parseBatchReply(raw)
	require.NoError(t, err)
	assert.Len(t, m, 3)
}

func TestParseBatchReplyRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"I am unable to describe these files.",
		"{}",
		`["a.go", "b.go"]`,
		`{"a.go": {"nested": true}}`,
	} {
		_, err := parseBatchReply(raw)
		assert.Error(t, err, "reply: %q", raw)
	}
}

func TestStripFence(t *testing.T) {
	s, changed := stripFence("```json\n{\"a\": \"b\"}\n```")
	assert.True(t, changed)
	assert.Equal(t, `{"a": "b"}`, s)

	s, changed = stripFence(`{"a": "b"}`)
	assert.False(t, changed)
	assert.Equal(t, `{"a": "b"}`, s)
}
