package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"describedir/internal/config"
	"describedir/internal/scan"
	"describedir/internal/schema"
)

type recordedCall struct {
	system string
	user   string
}

// fakeCaller records every prompt and answers through handle.
type fakeCaller struct {
	calls  []recordedCall
	handle func(system, user string) (string, error)
}

func (f *fakeCaller) Call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls = append(f.calls, recordedCall{system: systemPrompt, user: userPrompt})
	return f.handle(systemPrompt, userPrompt)
}

func isBatchPrompt(system string) bool     { return strings.Contains(system, "JSON object") }
func isDirectoryPrompt(system string) bool { return strings.Contains(system, "directory name") }

var batchHeaderRe = regexp.MustCompile(`(?m)^=== File: (.+?)(?: \[TRUNCATED\])? ===$`)

// answerBatch builds a valid mapping reply covering every path in the prompt.
func answerBatch(user string) (string, error) {
	mapping := map[string]string{}
	for _, m := range batchHeaderRe.FindAllStringSubmatch(user, -1) {
		mapping[m[1]] = "Batch description of " + m[1] + "."
	}
	data, err := json.Marshal(mapping)
	return string(data), err
}

// dispatch answers every prompt kind with a plausible reply.
func dispatch(system, user string) (string, error) {
	switch {
	case isBatchPrompt(system):
		return answerBatch(user)
	case isDirectoryPrompt(system):
		return "Directory summary.", nil
	default:
		return "Single description.", nil
	}
}

func testConfig(batchSize int) config.Config {
	cfg := config.Config{BatchSize: batchSize}
	cfg.Resolve()
	return cfg
}

// makeFiles writes n small text files under root and returns their nodes.
func makeFiles(t *testing.T, root string, n int) []*schema.Node {
	t.Helper()
	nodes := make([]*schema.Node, n)
	for i := range nodes {
		name := fmt.Sprintf("file%02d.txt", i)
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("content "+name), 0644))
		nodes[i] = &schema.Node{Name: name, Type: schema.TypeFile, Path: name, SizeBytes: int64(8 + len(name))}
	}
	return nodes
}

func TestDescribeFilesChunking(t *testing.T) {
	root := t.TempDir()
	nodes := makeFiles(t, root, 5)

	caller := &fakeCaller{handle: dispatch}
	d := New(caller, root, testConfig(2), nil)

	require.NoError(t, d.DescribeFiles(context.Background(), nodes))

	// Five readable files with a batch size of two: two batch calls for the
	// full chunks, one individual call for the leftover.
	var batch, single int
	for _, c := range caller.calls {
		if isBatchPrompt(c.system) {
			batch++
		} else {
			single++
		}
	}
	assert.Equal(t, 2, batch)
	assert.Equal(t, 1, single)

	for _, n := range nodes {
		assert.NotEmpty(t, n.Description, "node %s", n.Path)
		require.NotNil(t, n.Skipped, "node %s", n.Path)
		assert.False(t, *n.Skipped, "node %s", n.Path)
	}
}

func TestDescribeFilesUnparseableBatchFallsBack(t *testing.T) {
	root := t.TempDir()
	nodes := makeFiles(t, root, 3)

	caller := &fakeCaller{handle: func(system, user string) (string, error) {
		if isBatchPrompt(system) {
			return "I'm sorry, I cannot produce JSON today.", nil
		}
		return "Recovered individually.", nil
	}}
	d := New(caller, root, testConfig(3), nil)

	require.NoError(t, d.DescribeFiles(context.Background(), nodes))

	// One failed batch call, then one individual call per chunk item.
	require.Len(t, caller.calls, 4)
	assert.True(t, isBatchPrompt(caller.calls[0].system))
	for _, c := range caller.calls[1:] {
		assert.False(t, isBatchPrompt(c.system))
	}
	for _, n := range nodes {
		assert.Equal(t, "Recovered individually.", n.Description)
	}
}

func TestDescribeFilesOmittedPathFallsBack(t *testing.T) {
	root := t.TempDir()
	nodes := makeFiles(t, root, 3)
	omitted := nodes[1].Path

	caller := &fakeCaller{handle: func(system, user string) (string, error) {
		if isBatchPrompt(system) {
			reply, err := answerBatch(user)
			if err != nil {
				return "", err
			}
			var m map[string]string
			if err := json.Unmarshal([]byte(reply), &m); err != nil {
				return "", err
			}
			delete(m, omitted)
			data, err := json.Marshal(m)
			return string(data), err
		}
		return "Fallback description.", nil
	}}
	d := New(caller, root, testConfig(3), nil)

	require.NoError(t, d.DescribeFiles(context.Background(), nodes))

	// Exactly one extra call, for the omitted path only.
	require.Len(t, caller.calls, 2)
	assert.Contains(t, caller.calls[1].user, omitted)

	assert.Equal(t, "Fallback description.", nodes[1].Description)
	assert.Equal(t, "Batch description of "+nodes[0].Path+".", nodes[0].Description)
	assert.Equal(t, "Batch description of "+nodes[2].Path+".", nodes[2].Description)
}

func TestDescribeFilesSkipsBinary(t *testing.T) {
	root := t.TempDir()
	nodes := makeFiles(t, root, 2)

	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.png"), []byte{0x89, 'P', 'N', 'G', 0x00}, 0644))
	binary := &schema.Node{Name: "logo.png", Type: schema.TypeFile, Path: "logo.png", SizeBytes: 5}
	nodes = append(nodes, binary)

	caller := &fakeCaller{handle: dispatch}
	d := New(caller, root, testConfig(10), nil)

	require.NoError(t, d.DescribeFiles(context.Background(), nodes))

	assert.Equal(t, "Binary file (image/png).", binary.Description)
	require.NotNil(t, binary.Skipped)
	assert.True(t, *binary.Skipped)
	assert.Equal(t, SkipReasonBinary, binary.SkipReason)

	// The binary file never reaches a prompt.
	for _, c := range caller.calls {
		assert.NotContains(t, c.user, "logo.png")
	}
}

func TestDescribeSingleEncodingError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "latin1.txt"), []byte{'c', 'a', 'f', 0xe9}, 0644))
	node := &schema.Node{Name: "latin1.txt", Type: schema.TypeFile, Path: "latin1.txt", SizeBytes: 4}

	caller := &fakeCaller{handle: dispatch}
	d := New(caller, root, testConfig(10), nil)

	require.NoError(t, d.DescribeSingle(context.Background(), node))
	assert.Empty(t, caller.calls)
	assert.Equal(t, "Could not read file.", node.Description)
	assert.Equal(t, SkipReasonEncoding, node.SkipReason)
}

func TestDescribeSingleTruncationNote(t *testing.T) {
	root := t.TempDir()
	content := strings.Repeat("x", 50)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), []byte(content), 0644))
	node := &schema.Node{Name: "big.txt", Type: schema.TypeFile, Path: "big.txt", SizeBytes: 50}

	caller := &fakeCaller{handle: dispatch}
	cfg := testConfig(10)
	cfg.MaxFileSize = 10
	d := New(caller, root, cfg, nil)

	require.NoError(t, d.DescribeSingle(context.Background(), node))
	require.Len(t, caller.calls, 1)
	assert.Contains(t, caller.calls[0].user, "truncated")
	assert.Contains(t, caller.calls[0].user, "Original size: 50 bytes")
}

func TestDescribeDirectoryEmpty(t *testing.T) {
	caller := &fakeCaller{handle: dispatch}
	d := New(caller, t.TempDir(), testConfig(10), nil)

	dir := &schema.Node{Name: "empty", Type: schema.TypeDirectory, Path: "empty"}
	require.NoError(t, d.DescribeDirectory(context.Background(), dir))

	assert.Equal(t, EmptyDirDescription, dir.Description)
	assert.Empty(t, caller.calls)
}

func TestDescribeDirectoryPrompt(t *testing.T) {
	caller := &fakeCaller{handle: dispatch}
	d := New(caller, t.TempDir(), testConfig(10), nil)

	child := &schema.Node{Name: "a.txt", Type: schema.TypeFile, Path: "src/a.txt"}
	child.SetDescription("Notes on apples.")
	sub := &schema.Node{Name: "deep", Type: schema.TypeDirectory, Path: "src/deep", Description: "Deep things."}
	dir := &schema.Node{Name: "src", Type: schema.TypeDirectory, Path: "src", Children: []*schema.Node{child, sub}}

	require.NoError(t, d.DescribeDirectory(context.Background(), dir))
	require.Len(t, caller.calls, 1)

	c := caller.calls[0]
	// Directory summaries get a larger word budget than files do.
	assert.Contains(t, c.system, fmt.Sprintf("max %d words", config.DefaultFileMaxWords+config.DirExtraWords))
	assert.Contains(t, c.user, "Directory: src/")
	assert.Contains(t, c.user, "[file] a.txt: Notes on apples.")
	assert.Contains(t, c.user, "[dir] deep: Deep things.")
	assert.Equal(t, "Directory summary.", dir.Description)
}

func TestRunDescribesEveryNode(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"readme.md":    "# Project\n",
		"src/a.go":     "package src\n",
		"src/b.go":     "package src\n",
		"assets/x.png": "\x00\x01\x02",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0755))

	tree, err := scan.BuildTree(root, nil)
	require.NoError(t, err)

	caller := &fakeCaller{handle: dispatch}
	d := New(caller, root, testConfig(30), nil)

	stats, err := d.Run(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 4, Directories: 4}, stats)

	var check func(n *schema.Node)
	check = func(n *schema.Node) {
		assert.NotEmpty(t, n.Description, "node %s left undescribed", n.Path)
		if n.Type == schema.TypeFile {
			assert.NotNil(t, n.Skipped, "file %s missing skip marker", n.Path)
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(tree)

	assert.Equal(t, EmptyDirDescription, tree.Find("empty").Description)

	png := tree.Find("assets/x.png")
	require.NotNil(t, png)
	assert.True(t, *png.Skipped)

	// Directory prompts include child descriptions, so children must have
	// been described first.
	for _, c := range caller.calls {
		if isDirectoryPrompt(c.system) && strings.Contains(c.user, "Directory: src/") {
			assert.Contains(t, c.user, "Batch description of src/a.go.")
		}
	}
}

func TestRunAbortsOnCallError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0644))

	tree, err := scan.BuildTree(root, nil)
	require.NoError(t, err)

	caller := &fakeCaller{handle: func(system, user string) (string, error) {
		return "", fmt.Errorf("model call failed after 3 attempts")
	}}
	d := New(caller, root, testConfig(30), nil)

	_, err = d.Run(context.Background(), tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}
