package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"describedir/internal/schema"
)

func dir(path string, children ...*schema.Node) *schema.Node {
	name := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			name = path[i+1:]
			break
		}
	}
	return &schema.Node{Name: name, Type: schema.TypeDirectory, Path: path, Children: children}
}

func file(path string) *schema.Node {
	return &schema.Node{Name: path, Type: schema.TypeFile, Path: path}
}

func TestWalkBottomUpSingleNode(t *testing.T) {
	root := dir(".")
	order := WalkBottomUp(root)
	require.Len(t, order, 1)
	assert.Equal(t, root, order[0])
}

func TestWalkBottomUpDeepChain(t *testing.T) {
	d3 := dir("a/b/c")
	d2 := dir("a/b", d3)
	d1 := dir("a", d2)
	root := dir(".", d1)

	order := WalkBottomUp(root)
	require.Len(t, order, 4)
	assert.Equal(t, []string{"a/b/c", "a/b", "a", "."}, paths(order))
}

func TestWalkBottomUpAncestorsAfterDescendants(t *testing.T) {
	tree := dir(".",
		dir("a",
			dir("a/deep",
				dir("a/deep/deeper"),
			),
			file("a/f.txt"),
		),
		dir("b",
			file("b/g.txt"),
		),
		file("top.txt"),
	)

	order := WalkBottomUp(tree)

	pos := map[string]int{}
	for i, n := range order {
		assert.True(t, n.IsDir(), "file node %s emitted", n.Path)
		pos[n.Path] = i
	}
	require.Len(t, pos, 5)

	// Every directory appears after all of its descendant directories.
	assert.Less(t, pos["a/deep/deeper"], pos["a/deep"])
	assert.Less(t, pos["a/deep"], pos["a"])
	assert.Less(t, pos["a"], pos["."])
	assert.Less(t, pos["b"], pos["."])
}

func TestLevelsBottomUpGroupsByDepth(t *testing.T) {
	tree := dir(".",
		dir("a", dir("a/x")),
		dir("b", dir("b/y")),
	)

	levels := LevelsBottomUp(tree)
	require.Len(t, levels, 3)
	assert.Equal(t, []string{"a/x", "b/y"}, paths(levels[0]))
	assert.Equal(t, []string{"a", "b"}, paths(levels[1]))
	assert.Equal(t, []string{"."}, paths(levels[2]))
}

func TestLevelsBottomUpFileRoot(t *testing.T) {
	assert.Nil(t, LevelsBottomUp(file("lone.txt")))
}

func paths(nodes []*schema.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path
	}
	return out
}
