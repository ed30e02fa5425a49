// Package schema defines the description tree model and the on-disk
// document format produced by describedir.
package schema

// Node kinds.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
)

// RootPath is the sentinel path of the scan root node.
const RootPath = "."

// Node represents one filesystem entry in the description tree.
//
// The structural fields (Name, Type, Path, SizeBytes, Children) are fixed at
// scan time; only Description, Skipped and SkipReason are filled in by the
// description pipeline. Paths are relative to the scan root, use forward
// slashes, and every non-root node's path is parent path + "/" + name.
type Node struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Path        string  `json:"path"`
	Description string  `json:"description,omitempty"`
	SizeBytes   int64   `json:"size_bytes,omitempty"`
	Skipped     *bool   `json:"skipped,omitempty"`
	SkipReason  string  `json:"skip_reason,omitempty"`
	Children    []*Node `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Type == TypeDirectory
}

// SetDescription records a model-generated description and clears the skip
// marker. Skipped is set to an explicit false so the serialized node shows
// the file was a description candidate that succeeded.
func (n *Node) SetDescription(desc string) {
	skipped := false
	n.Description = desc
	n.Skipped = &skipped
	n.SkipReason = ""
}

// MarkSkipped records a placeholder description together with the reason no
// model-generated description was produced.
func (n *Node) MarkSkipped(placeholder, reason string) {
	skipped := true
	n.Description = placeholder
	n.Skipped = &skipped
	n.SkipReason = reason
}

// FileChildren returns the file entries among the node's immediate children,
// preserving their scan order.
func (n *Node) FileChildren() []*Node {
	var files []*Node
	for _, c := range n.Children {
		if c.Type == TypeFile {
			files = append(files, c)
		}
	}
	return files
}

// Find returns the node with the given relative path, searching the subtree
// rooted at n, or nil if no such node exists.
func (n *Node) Find(path string) *Node {
	if n.Path == path {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(path); found != nil {
			return found
		}
	}
	return nil
}
