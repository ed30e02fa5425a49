package describe

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// parseBatchReply extracts the path-to-description mapping from a batch
// reply. Models are instructed to return a bare JSON object, but replies
// arrive fenced or buried in prose often enough that three rungs are tried:
// direct parse, parse after stripping a single fenced block, then the largest
// balanced object embedded in the text.
func parseBatchReply(raw string) (map[string]string, error) {
	trimmed := strings.TrimSpace(raw)

	if m, err := decodeMapping(trimmed); err == nil {
		return m, nil
	}
	if stripped, ok := stripFence(trimmed); ok {
		if m, err := decodeMapping(stripped); err == nil {
			return m, nil
		}
	}
	candidates := findJSONCandidates(trimmed)
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, c := range candidates {
		if m, err := decodeMapping(c); err == nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no parseable mapping in model reply")
}

func decodeMapping(s string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("empty mapping")
	}
	return m, nil
}

// stripFence removes one leading/trailing markdown code fence. The second
// return value reports whether anything changed, so callers only re-parse
// when the strip did something.
func stripFence(s string) (string, bool) {
	stripped := s
	for _, prefix := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(stripped, prefix) {
			stripped = strings.TrimPrefix(stripped, prefix)
			break
		}
	}
	stripped = strings.TrimSuffix(strings.TrimSpace(stripped), "```")
	stripped = strings.TrimSpace(stripped)
	return stripped, stripped != s
}

// findJSONCandidates scans the input for top-level balanced JSON objects,
// tracking string and escape state so braces inside values do not split a
// candidate. Byte iteration is safe for the ASCII delimiters involved.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}
