package scan

import "describedir/internal/schema"

// LevelsBottomUp groups the tree's directory nodes by depth and returns the
// groups deepest first. Within a group, insertion order (the scan's sorted
// sibling order) is preserved. File nodes are never emitted; they are handled
// as part of their parent directory's step.
//
// The ordering guarantees that when a directory is reached, every descendant
// directory has already been visited, so child descriptions a summary prompt
// depends on are always present.
func LevelsBottomUp(root *schema.Node) [][]*schema.Node {
	levels := map[int][]*schema.Node{}
	maxDepth := -1

	var collect func(n *schema.Node, depth int)
	collect = func(n *schema.Node, depth int) {
		if !n.IsDir() {
			return
		}
		levels[depth] = append(levels[depth], n)
		if depth > maxDepth {
			maxDepth = depth
		}
		for _, c := range n.Children {
			collect(c, depth+1)
		}
	}
	collect(root, 0)

	if maxDepth < 0 {
		return nil
	}
	out := make([][]*schema.Node, 0, maxDepth+1)
	for d := maxDepth; d >= 0; d-- {
		out = append(out, levels[d])
	}
	return out
}

// WalkBottomUp flattens LevelsBottomUp into a single deepest-first sequence
// of directory nodes.
func WalkBottomUp(root *schema.Node) []*schema.Node {
	var out []*schema.Node
	for _, level := range LevelsBottomUp(root) {
		out = append(out, level...)
	}
	return out
}
