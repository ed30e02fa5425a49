package describe

import (
	"context"

	"go.uber.org/zap"

	"describedir/internal/scan"
	"describedir/internal/schema"
)

// Stats counts what a pipeline run described.
type Stats struct {
	Files       int
	Directories int
}

// Run drives the whole pipeline over a scanned tree: directories are visited
// deepest first, each one's file children are described in batches, then the
// directory itself is summarized from its now-complete children. Processing
// is sequential; the only suspension points are the model calls and their
// backoff sleeps.
//
// Errors reaching here have no remaining fallback (retry exhaustion,
// non-retryable request failures) and abort the run.
func (d *Describer) Run(ctx context.Context, root *schema.Node) (Stats, error) {
	var stats Stats

	for _, dir := range scan.WalkBottomUp(root) {
		files := dir.FileChildren()
		if len(files) > 0 {
			d.log.Info("describing files",
				zap.String("dir", dir.Path),
				zap.Int("count", len(files)))
			if err := d.DescribeFiles(ctx, files); err != nil {
				return stats, err
			}
			stats.Files += len(files)
		}

		d.log.Debug("describing directory", zap.String("dir", dir.Path))
		if err := d.DescribeDirectory(ctx, dir); err != nil {
			return stats, err
		}
		stats.Directories++
	}
	return stats, nil
}
