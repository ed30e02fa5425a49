// Package describe runs the description pipeline: batching file children into
// model calls, summarizing directories bottom-up, and absorbing every failure
// that has a defined fallback.
package describe

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"describedir/internal/config"
	"describedir/internal/fileio"
	"describedir/internal/schema"
)

// Skip reasons recorded on nodes that never reach the model.
const (
	SkipReasonBinary   = "binary_file"
	SkipReasonEncoding = "encoding_error"
)

// Caller issues one model request with retry handled beneath it.
// *llm.Executor satisfies this.
type Caller interface {
	Call(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Describer fills in description fields on an already-scanned tree. It holds
// no reference to any node past its own call; the pipeline driver owns the
// tree throughout.
type Describer struct {
	caller      Caller
	root        string // absolute scan root, for reading file contents
	maxWords    int
	batchSize   int
	maxFileSize int
	truncateTo  int
	log         *zap.Logger
}

// New creates a Describer for the tree rooted at the given absolute path.
func New(caller Caller, root string, cfg config.Config, log *zap.Logger) *Describer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Describer{
		caller:      caller,
		root:        root,
		maxWords:    cfg.MaxWords,
		batchSize:   cfg.BatchSize,
		maxFileSize: cfg.MaxFileSize,
		truncateTo:  config.TruncatedReadBytes,
		log:         log,
	}
}

// fullPath maps a node's slash-separated relative path onto the host
// filesystem.
func (d *Describer) fullPath(node *schema.Node) string {
	return filepath.Join(d.root, filepath.FromSlash(node.Path))
}

// readable pairs a file node with the excerpt that will go into a prompt.
type readable struct {
	node    *schema.Node
	excerpt fileio.Excerpt
}

// classify applies the content reader to one file node. Unreadable nodes get
// their placeholder and skip marker immediately and are reported not ok;
// these outcomes are permanent for the file and never retried.
func (d *Describer) classify(node *schema.Node) (fileio.Excerpt, bool) {
	full := d.fullPath(node)

	if fileio.IsBinary(full) {
		mt := fileio.MIMEType(full)
		if mt == "" {
			mt = "unknown type"
		}
		node.MarkSkipped(fmt.Sprintf("Binary file (%s).", mt), SkipReasonBinary)
		return fileio.Excerpt{}, false
	}

	excerpt, err := fileio.ReadContent(full, d.maxFileSize, d.truncateTo)
	if err != nil {
		d.log.Debug("file not readable as text",
			zap.String("path", node.Path), zap.Error(err))
		node.MarkSkipped("Could not read file.", SkipReasonEncoding)
		return fileio.Excerpt{}, false
	}
	return excerpt, true
}
