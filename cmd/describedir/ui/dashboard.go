package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"describedir/internal/schema"
)

// Dashboard depth limit keeps the live tree summary readable.
const summaryMaxDepth = 3

// FileChangedMsg reports a filesystem change under the watched root.
type FileChangedMsg struct {
	Path string // relative to the scan root
}

// DocReloadedMsg carries a freshly re-read description document.
type DocReloadedMsg struct {
	Doc *schema.Document
}

// WatchErrMsg carries a watcher failure; the dashboard surfaces it and keeps
// running.
type WatchErrMsg struct {
	Err error
}

// Dashboard is the bubbletea model behind the watch command: a live view of
// the description document with the set of files changed since generation.
type Dashboard struct {
	doc        *schema.Document
	changed    map[string]struct{}
	lastUpdate time.Time
	spinner    spinner.Model
	err        error
	width      int
}

// NewDashboard creates the watch dashboard around an already-loaded document.
func NewDashboard(doc *schema.Document) Dashboard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle
	return Dashboard{
		doc:        doc,
		changed:    make(map[string]struct{}),
		lastUpdate: time.Now(),
		spinner:    sp,
		width:      100,
	}
}

func (m Dashboard) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case FileChangedMsg:
		m.changed[msg.Path] = struct{}{}

	case DocReloadedMsg:
		// A regenerated document supersedes the accumulated change set.
		m.doc = msg.Doc
		m.changed = make(map[string]struct{})
		m.lastUpdate = time.Now()
		m.err = nil

	case WatchErrMsg:
		m.err = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("describedir live dashboard") + "\n\n")
	sb.WriteString(metaLine("Project", m.doc.Tree.Name))
	sb.WriteString(metaLine("Root", m.doc.Root))
	sb.WriteString(metaLine("Model", m.doc.Model))
	sb.WriteString(metaLine("Last updated", m.lastUpdate.Format("2006-01-02 15:04:05")))

	if desc := m.doc.Tree.Description; desc != "" {
		sb.WriteString("\n" + DescStyle.Render(desc) + "\n")
	}

	if m.err != nil {
		sb.WriteString("\n" + ChangedStyle.Render(fmt.Sprintf("watch error: %v", m.err)) + "\n")
	}

	if len(m.changed) > 0 {
		sb.WriteString("\n" + ChangedStyle.Render(fmt.Sprintf("Changed files (%d):", len(m.changed))) + "\n")
		for _, path := range sortedPaths(m.changed) {
			sb.WriteString("  • " + path + "\n")
		}
	} else {
		sb.WriteString("\n" + DescStyle.Render("No changes detected") + "\n")
	}

	sb.WriteString("\n")
	m.renderSummary(&sb, m.doc.Tree, 0)

	sb.WriteString("\n" + m.spinner.View() + FooterStyle.Render(" watching for changes (press q to quit)") + "\n")
	return sb.String()
}

// renderSummary prints a depth-limited tree with changed files highlighted.
func (m Dashboard) renderSummary(sb *strings.Builder, node *schema.Node, depth int) {
	if depth > summaryMaxDepth {
		return
	}
	indent := strings.Repeat("  ", depth)
	name := renderName(node)
	if _, ok := m.changed[node.Path]; ok {
		name = ChangedStyle.Render(node.Name)
	}
	sb.WriteString(indent + name + "\n")
	for _, child := range node.Children {
		m.renderSummary(sb, child, depth+1)
	}
}

func sortedPaths(set map[string]struct{}) []string {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
