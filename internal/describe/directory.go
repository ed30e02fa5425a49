package describe

import (
	"context"
	"strings"

	"describedir/internal/config"
	"describedir/internal/schema"
)

// EmptyDirDescription is assigned to childless directories without a call.
const EmptyDirDescription = "Empty directory."

// DescribeDirectory summarizes a directory from its children's descriptions.
// Every child must already carry a description, which the bottom-up walk
// guarantees. The word budget is the file budget plus a margin, since a
// directory summary synthesizes more information than a single file's.
func (d *Describer) DescribeDirectory(ctx context.Context, dir *schema.Node) error {
	if len(dir.Children) == 0 {
		dir.Description = EmptyDirDescription
		return nil
	}

	resp, err := d.caller.Call(ctx,
		directorySystemPrompt(d.maxWords+config.DirExtraWords),
		directoryUserPrompt(dir))
	if err != nil {
		return err
	}
	dir.Description = strings.TrimSpace(resp)
	return nil
}
