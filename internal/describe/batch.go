package describe

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"describedir/internal/schema"
)

// DescribeFiles describes a directory's file children, batching readable
// ones into combined model calls.
//
// Unreadable nodes (binary content, decode failure) receive their placeholder
// immediately and never reach a prompt. The readable set is split into chunks
// of at most the configured batch size; chunks are processed independently,
// so one chunk's fallback does not disturb another's results.
func (d *Describer) DescribeFiles(ctx context.Context, nodes []*schema.Node) error {
	var batchable []readable
	for _, node := range nodes {
		if excerpt, ok := d.classify(node); ok {
			batchable = append(batchable, readable{node: node, excerpt: excerpt})
		}
	}

	for start := 0; start < len(batchable); start += d.batchSize {
		end := start + d.batchSize
		if end > len(batchable) {
			end = len(batchable)
		}
		if err := d.describeChunk(ctx, batchable[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// describeChunk sends one combined prompt for a chunk and applies the reply.
//
// A chunk of one skips batching entirely: a structured reply for a single
// item adds parsing risk for no round-trip savings. When the combined reply
// cannot be parsed, any partial mapping it may hold is discarded and every
// item is re-described individually; when it parses but omits a path, only
// that item falls back. Errors from the calls themselves have no fallback
// and propagate.
func (d *Describer) describeChunk(ctx context.Context, chunk []readable) error {
	if len(chunk) == 1 {
		return d.DescribeSingle(ctx, chunk[0].node)
	}

	raw, err := d.caller.Call(ctx, batchSystemPrompt(d.maxWords), batchUserPrompt(chunk))
	if err != nil {
		return err
	}

	mapping, err := parseBatchReply(raw)
	if err != nil {
		d.log.Warn("batch reply not parseable, describing files individually",
			zap.Int("chunk_size", len(chunk)), zap.Error(err))
		for _, item := range chunk {
			if err := d.DescribeSingle(ctx, item.node); err != nil {
				return err
			}
		}
		return nil
	}

	for _, item := range chunk {
		desc, ok := mapping[item.node.Path]
		if !ok {
			d.log.Warn("path missing from batch reply, falling back",
				zap.String("path", item.node.Path))
			if err := d.DescribeSingle(ctx, item.node); err != nil {
				return err
			}
			continue
		}
		item.node.SetDescription(strings.TrimSpace(desc))
	}
	return nil
}
