package tui

import (
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// View renders the picker.
func (m *Model) View() string {
	var b strings.Builder

	if m.task == nil {
		if m.err != nil {
			b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
			return b.String()
		}
		return m.styles.Muted.Render("Loading...") + "\n"
	}

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("Move #%d %s under:", m.task.ID, m.task.Name)))
	b.WriteString("\n")

	if len(m.choices) == 0 {
		b.WriteString(m.styles.Muted.Render("  No other task in this project can be its parent."))
		b.WriteString("\n")
	}

	for i, e := range m.visibleRange() {
		idx := i + m.offset()
		line := fmt.Sprintf("#%-4d %s", e.ID, e.Label)
		if m.task.HasParent(e.ID) {
			line += m.styles.Current.Render("  (current)")
		}
		if idx == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	if m.task.IsRoot() {
		b.WriteString(m.styles.Muted.Render("\n  Currently a root task."))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// listHeight is the number of rows available for choices.
func (m *Model) listHeight() int {
	if m.height <= 0 {
		return len(m.choices)
	}
	// Header, blank lines, status and help.
	return max(m.height-8, 1)
}

// offset is the index of the first visible choice, keeping the cursor in view.
func (m *Model) offset() int {
	h := m.listHeight()
	if m.cursor < h {
		return 0
	}
	return m.cursor - h + 1
}

func (m *Model) visibleRange() []hierarchy.Entry {
	start := m.offset()
	end := min(start+m.listHeight(), len(m.choices))
	return m.choices[start:end]
}
