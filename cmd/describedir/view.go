package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"describedir/cmd/describedir/ui"
	"describedir/internal/config"
	"describedir/internal/schema"
)

var (
	viewFile    string
	viewSummary bool
)

// viewCmd renders a previously generated document as a formatted tree.
var viewCmd = &cobra.Command{
	Use:   "view [path]",
	Short: "Render a generated description document",
	Long: `Loads a description document and prints the tree with descriptions.
An optional path argument restricts output to one subtree, e.g.:

  describedir view src
  describedir view src/app.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVarP(&viewFile, "file", "f", config.OutputFilename, "path to the description document")
	viewCmd.Flags().BoolVarP(&viewSummary, "summary", "s", false, "show only the project summary")
}

func runView(cmd *cobra.Command, args []string) error {
	doc, err := schema.LoadDocument(viewFile)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderHeader(doc))

	if viewSummary {
		fmt.Print(ui.RenderSummary(doc))
		return nil
	}

	node := doc.Tree
	if len(args) > 0 {
		if node = doc.Tree.Find(args[0]); node == nil {
			return fmt.Errorf("path %q not found in document", args[0])
		}
	}
	fmt.Print(ui.RenderTree(node))
	return nil
}
