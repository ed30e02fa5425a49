package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SchemaVersion identifies the document format.
const SchemaVersion = "describedir-v1"

// Document is the serialization root written to disk after a run.
// It is constructed once the pipeline completes (or immediately in
// structure-only mode) and never mutated after serialization.
type Document struct {
	Schema      string `json:"$schema"`
	Root        string `json:"root"`
	GeneratedAt string `json:"generated_at"`
	Model       string `json:"model"`
	Tree        *Node  `json:"tree"`
}

// NewDocument wraps a described tree with run metadata. The generation
// timestamp is taken now, in UTC.
func NewDocument(root, model string, tree *Node) *Document {
	return &Document{
		Schema:      SchemaVersion,
		Root:        root,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Model:       model,
		Tree:        tree,
	}
}

// Marshal renders the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteFile serializes the document to the given path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadDocument reads and parses a previously written document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}
	if doc.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema %q in %s (want %s)", doc.Schema, path, SchemaVersion)
	}
	return &doc, nil
}
