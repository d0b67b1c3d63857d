package tui

import (
	"fmt"
	"strings"
	"time"

	"rem-cli/internal/app"
	"rem-cli/internal/model"
	"rem-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	listPaneMinWidth = 24
	listPanePercent  = 30
)

// previewCache remembers what the viewport was last filled with.
type previewCache struct {
	rev   int
	width int
	id    string
}

// paneSizes splits the window into the list pane, the preview pane and the body
// height left above the footer.
func (m appModel) paneSizes() (listWidth, previewWidth, bodyHeight int) {
	width, height := m.size()
	bodyHeight = height - lipgloss.Height(m.footerView(width))
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	listWidth = width * listPanePercent / 100
	if listWidth < listPaneMinWidth {
		listWidth = listPaneMinWidth
	}
	if listWidth > width {
		listWidth = width
	}
	previewWidth = width - listWidth - 1
	if previewWidth < 0 {
		previewWidth = 0
	}
	return listWidth, previewWidth, bodyHeight
}

// size is the window size, with a fallback until the first WindowSizeMsg.
func (m appModel) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

func (m appModel) View() string {
	listWidth, previewWidth, bodyHeight := m.paneSizes()

	body := normalizePane(m.listView(listWidth), listWidth, bodyHeight)
	if previewWidth > 0 {
		sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", bodyHeight), "\n"))
		right := normalizePane(m.viewport.View(), previewWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, sep, right)
	}
	width, _ := m.size()
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footerView(width))
}

func (m appModel) listView(width int) string {
	var b strings.Builder
	selected := m.state.SelectedIndex()
	idx := 0
	for i, st := range model.Statuses {
		if i > 0 {
			b.WriteString("\n")
		}
		tasks := m.state.Tasks(st)
		if st == model.StatusDone && !m.state.ShowDone() {
			hint := "d to show"
			if m.state.DoneLoaded() {
				hint = fmt.Sprintf("%d hidden, d to show", len(tasks))
			}
			b.WriteString(headerStyle.Render(st.Label()) + " " + mutedStyle.Render("("+hint+")") + "\n")
			continue
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", st.Label(), len(tasks))) + "\n")
		if len(tasks) == 0 {
			b.WriteString(mutedStyle.Render("  no tasks") + "\n")
		}
		for _, t := range tasks {
			b.WriteString(renderTaskLine(t, width, idx == selected) + "\n")
			idx++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskLine(t store.Task, width int, selected bool) string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		name = t.ID
	}
	name = xansi.Truncate(name, width-2, "…")
	if selected {
		return selectedStyle.Width(width).Render("> " + name)
	}
	return "  " + name
}

// syncPreview resizes the viewport and re-renders the selected task when the
// preview revision, the width or the task changed. Scroll resets on a new task.
func (m *appModel) syncPreview() {
	_, width, height := m.paneSizes()
	m.viewport.Width = width
	m.viewport.Height = height

	t, ok := m.state.Selected()
	rev := m.state.PreviewRevision()
	if m.preview.rev == rev && m.preview.width == width && m.preview.id == t.ID {
		return
	}
	newTask := m.preview.id != t.ID
	m.preview = previewCache{rev: rev, width: width, id: t.ID}

	if !ok {
		m.viewport.SetContent(mutedStyle.Render("No task selected. Press a to add one."))
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(renderPreview(t, width, m.mdStyle))
	if newTask {
		m.viewport.GotoTop()
	}
}

func renderPreview(t store.Task, width int, mdStyle string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(xansi.Truncate(t.Name, width, "…")) + "\n")
	b.WriteString(mutedStyle.Render(xansi.Truncate(fmt.Sprintf("%s · created %s · updated %s",
		t.Status(), fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt)), width, "…")) + "\n\n")
	if body := renderMarkdown(t.Body, width, mdStyle); body != "" {
		b.WriteString(body)
	} else {
		b.WriteString(mutedStyle.Render("(empty, press e to edit)"))
	}
	return b.String()
}

func (m appModel) footerView(width int) string {
	var lines []string
	if err := m.state.LastError(); err != nil {
		lines = append(lines, errorStyle.Render(xansi.Truncate("error: "+err.Error(), width, "…")))
	}
	if m.state.Mode() == app.ModeEditing {
		in := m.input
		in.Width = width - lipgloss.Width(in.Prompt) - 1
		in.SetValue(m.state.Draft())
		in.CursorEnd()
		lines = append(lines, in.View(), m.help.View(m.draftKeys))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
