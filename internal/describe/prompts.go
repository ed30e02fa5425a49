package describe

import (
	"fmt"
	"strings"

	"describedir/internal/schema"
)

func fileSystemPrompt(maxWords int) string {
	return fmt.Sprintf(
		"You are a technical documentation assistant. "+
			"Given a file's path and contents, produce a single concise sentence "+
			"(max %d words) describing what this file does or contains. "+
			"Be specific and technical. Do not start with 'This file'.",
		maxWords)
}

func batchSystemPrompt(maxWords int) string {
	return fmt.Sprintf(
		"You are a technical documentation assistant. "+
			"You will be given multiple files with their paths and contents. "+
			"For each file, produce a concise description (max %d words). "+
			"Be specific and technical. Do not start descriptions with 'This file'. "+
			"Return your answer as a JSON object mapping file paths to descriptions. "+
			`Example: {"src/app.py": "Flask application entry point...", ...}`,
		maxWords)
}

func directorySystemPrompt(maxWords int) string {
	return fmt.Sprintf(
		"You are a technical documentation assistant. "+
			"Given a directory name and descriptions of its immediate children, "+
			"produce a single concise sentence (max %d words) summarizing "+
			"the purpose and contents of this directory. "+
			"Be specific. Do not start with 'This directory'.",
		maxWords)
}

// singleFileUserPrompt carries the excerpt plus an explicit truncation note
// so the model knows partial content is partial.
func singleFileUserPrompt(node *schema.Node, excerpt string, truncated bool) string {
	prompt := fmt.Sprintf("File: %s\n\n```\n%s\n```", node.Path, excerpt)
	if truncated {
		prompt += fmt.Sprintf(
			"\n\n[NOTE: This file was truncated. Original size: %d bytes. "+
				"Only the first portion is shown.]", node.SizeBytes)
	}
	return prompt
}

// batchUserPrompt delimits every chunk item with a header block carrying its
// path and, when applicable, a truncation marker.
func batchUserPrompt(chunk []readable) string {
	parts := make([]string, 0, len(chunk))
	for _, item := range chunk {
		marker := ""
		if item.excerpt.Truncated {
			marker = " [TRUNCATED]"
		}
		parts = append(parts, fmt.Sprintf("=== File: %s%s ===\n%s\n", item.node.Path, marker, item.excerpt.Content))
	}
	return strings.Join(parts, "\n")
}

// directoryUserPrompt lists each immediate child's kind, name and its own
// description. The scheduler's ordering guarantees those descriptions exist.
func directoryUserPrompt(dir *schema.Node) string {
	lines := make([]string, 0, len(dir.Children))
	for _, child := range dir.Children {
		prefix := "[file]"
		if child.IsDir() {
			prefix = "[dir]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s: %s", prefix, child.Name, child.Description))
	}
	return fmt.Sprintf("Directory: %s/\n\nContents:\n%s", dir.Path, strings.Join(lines, "\n"))
}
