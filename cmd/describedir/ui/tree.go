package ui

import (
	"fmt"
	"strings"

	"describedir/internal/schema"
)

const descWrapWidth = 72

// RenderHeader formats the document's run metadata.
func RenderHeader(doc *schema.Document) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Project: "+doc.Tree.Name) + "\n")
	sb.WriteString(metaLine("Root", doc.Root))
	sb.WriteString(metaLine("Model", doc.Model))
	sb.WriteString(metaLine("Generated", doc.GeneratedAt))
	sb.WriteString("\n")
	return sb.String()
}

func metaLine(label, value string) string {
	return MetaLabelStyle.Render(label+":") + " " + MetaValueStyle.Render(value) + "\n"
}

// RenderSummary formats just the root description.
func RenderSummary(doc *schema.Document) string {
	return DescStyle.Render(doc.Tree.Description) + "\n"
}

// RenderTree formats a node and its subtree with box-drawing connectors,
// each entry followed by its wrapped description.
func RenderTree(node *schema.Node) string {
	var sb strings.Builder
	renderNode(&sb, node, "", true, true)
	return sb.String()
}

func renderNode(sb *strings.Builder, node *schema.Node, prefix string, isLast, isRoot bool) {
	connector := ""
	childPrefix := prefix
	if !isRoot {
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		} else {
			connector = "├── "
			childPrefix = prefix + "│   "
		}
	}

	sb.WriteString(prefix + connector + renderName(node) + "\n")

	if node.Description != "" {
		for _, line := range wrap(node.Description, descWrapWidth) {
			sb.WriteString(childPrefix + DescStyle.Render(line) + "\n")
		}
	}

	for i, child := range node.Children {
		renderNode(sb, child, childPrefix, i == len(node.Children)-1, false)
	}
}

func renderName(node *schema.Node) string {
	switch {
	case node.IsDir():
		return DirStyle.Render(node.Name + "/")
	case node.Skipped != nil && *node.Skipped:
		return SkippedStyle.Render(node.Name)
	default:
		return FileStyle.Render(node.Name)
	}
}

// wrap splits text into lines of at most width characters, breaking on
// spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = fmt.Sprintf("%s %s", line, word)
	}
	return append(lines, line)
}
