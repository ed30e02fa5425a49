package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"describedir/cmd/describedir/ui"
	"describedir/internal/config"
	"describedir/internal/scan"
	"describedir/internal/schema"
)

var watchFile string

// watchCmd shows a live dashboard of the description document, tracking
// files that changed since it was generated.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard over a generated description document",
	Long: `Watches the document's scan root and displays the described tree together
with the set of files modified since generation. Regenerating the document
resets the change set.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", config.OutputFilename, "path to the description document")
}

func runWatch(cmd *cobra.Command, args []string) error {
	docPath, err := filepath.Abs(watchFile)
	if err != nil {
		return err
	}
	doc, err := schema.LoadDocument(docPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// fsnotify watches are not recursive; register every directory under the
	// scan root, skipping ignored ones.
	err = filepath.WalkDir(doc.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees just go unwatched
		}
		if !d.IsDir() {
			return nil
		}
		if path != doc.Root && scan.ShouldIgnore(d.Name(), config.DefaultIgnorePatterns) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", doc.Root, err)
	}

	program := tea.NewProgram(ui.NewDashboard(doc), tea.WithAltScreen())

	go forwardEvents(program, watcher, doc.Root, docPath)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// forwardEvents translates watcher events into dashboard messages until the
// watcher closes.
func forwardEvents(program *tea.Program, watcher *fsnotify.Watcher, root, docPath string) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Name == docPath {
				if doc, err := schema.LoadDocument(docPath); err == nil {
					program.Send(ui.DocReloadedMsg{Doc: doc})
				}
				continue
			}
			if scan.ShouldIgnore(filepath.Base(event.Name), config.DefaultIgnorePatterns) {
				continue
			}

			rel, err := filepath.Rel(root, event.Name)
			if err != nil {
				rel = event.Name
			}
			program.Send(ui.FileChangedMsg{Path: filepath.ToSlash(rel)})

			// Newly created directories need their own watch.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() && event.Op&fsnotify.Create != 0 {
				_ = watcher.Add(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			program.Send(ui.WatchErrMsg{Err: err})
		}
	}
}
