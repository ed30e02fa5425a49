package describe

import (
	"context"
	"strings"

	"describedir/internal/schema"
)

// DescribeSingle describes one file node through an individual model call.
// This is both the chunk-of-one path and the per-item fallback when a batch
// reply is unusable. The node is classified fresh: if it is binary or
// unreadable it gets its skip marker here and no call is made.
//
// The reply is free-form text, not structured; the trimmed response becomes
// the description.
func (d *Describer) DescribeSingle(ctx context.Context, node *schema.Node) error {
	excerpt, ok := d.classify(node)
	if !ok {
		return nil
	}

	resp, err := d.caller.Call(ctx,
		fileSystemPrompt(d.maxWords),
		singleFileUserPrompt(node, excerpt.Content, excerpt.Truncated))
	if err != nil {
		return err
	}
	node.SetDescription(strings.TrimSpace(resp))
	return nil
}
