package tui

import (
	"fmt"
	"strings"

	"github.com/aezell/docsync/internal/diff"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/nav"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// modalState is the issue detail overlay. It is rebuilt on every open.
type modalState struct {
	index int
	issue model.Issue
	panes *diff.SideBySide // nil when the issue carries no code
	vp    viewport.Model
}

// openIssue shows the issue at index, replacing whatever the modal showed.
// It reports false when there is no such issue.
func (m *Model) openIssue(index int) bool {
	is, ok := m.store.Issue(index)
	if !ok {
		return false
	}
	st := &modalState{index: index, issue: is, vp: viewport.New(1, 1)}
	if is.HasCode() {
		panes := diff.RenderDiff(is.CodeBefore, is.CodeAfter)
		st.panes = &panes
	}
	m.modal = st
	m.layoutModal()
	return true
}

// closeModal hides the modal. Closing a closed modal is a no-op.
func (m *Model) closeModal() {
	m.modal = nil
}

// modalBox returns the modal's outer rectangle in screen cells.
func (m Model) modalBox() (x, y, w, h int) {
	w = max(min(m.width-4, 120), min(m.width, 30))
	h = max(min(m.height-2, 40), min(m.height, 10))
	return (m.width - w) / 2, (m.height - h) / 2, w, h
}

func (m *Model) layoutModal() {
	_, _, w, h := m.modalBox()
	m.modal.vp.Width = max(w-4, 1)
	m.modal.vp.Height = max(h-3, 1)
	m.modal.vp.SetContent(m.modalContent(m.modal.vp.Width))
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.modal != nil {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			x, y, w, h := m.modalBox()
			if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
				m.closeModal()
				return m, nil
			}
		}
		m.modal.vp, cmd = m.modal.vp.Update(msg)
		return m, cmd
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.X < sidebarWidth {
		if i := msg.Y - sidebarFirstRow; i >= 0 && i < len(nav.Views) {
			return m.navigate(nav.Views[i])
		}
		return m, nil
	}

	if m.nav.Current() == nav.ViewReadme {
		m.readme, cmd = m.readme.Update(msg)
	}
	return m, cmd
}

func (m Model) renderModal() string {
	x, y, w, h := m.modalBox()
	footer := helpBarStyle.Render(fmt.Sprintf("issue %d/%d   esc/q close   ↑/↓ scroll", m.modal.index+1, m.store.IssueCount()))
	box := modalStyle.
		Width(w - 2).
		Height(h - 2).
		Render(m.modal.vp.View() + "\n" + footer)
	return overlay(box, x, y)
}

// overlay offsets a rendered block to column x, row y.
func overlay(block string, x, y int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(y, 0)))
	pad := strings.Repeat(" ", max(x, 0))
	for i, line := range strings.Split(block, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pad)
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) modalContent(width int) string {
	is := m.modal.issue
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(titleStyle.Render(is.Title))
	b.WriteByte('\n')

	meta := severityBadge(is.Severity)
	if is.LocationLabel != "" {
		meta += "  " + dimStyle.Render(is.LocationLabel)
	}
	if is.Filepath != "" && is.Filepath != is.LocationLabel {
		meta += "  " + dimStyle.Render(is.Filepath)
	}
	b.WriteString(meta)
	b.WriteString("\n\n")

	if is.Problem != "" {
		b.WriteString(labelStyle.Render("Problem"))
		b.WriteByte('\n')
		b.WriteString(wrap.Render(is.Problem))
		b.WriteString("\n\n")
	}
	if is.Suggestion != "" {
		b.WriteString(labelStyle.Render("Suggestion"))
		b.WriteByte('\n')
		b.WriteString(wrap.Render(is.Suggestion))
		b.WriteString("\n\n")
	}
	if is.Category != "" {
		b.WriteString(tagStyle.Render(is.Category))
		b.WriteString("\n\n")
	}

	if m.modal.panes != nil {
		b.WriteString(m.renderPanes(*m.modal.panes, width))
	} else if !is.HasDetails() {
		b.WriteString(dimStyle.Render("No further details were provided for this issue."))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderPanes lays the two panes out side by side. Panes keep their own
// row counts; the shorter one is padded with blank cells.
func (m Model) renderPanes(p diff.SideBySide, width int) string {
	half := max((width-3)/2, 8)
	var b strings.Builder

	b.WriteString(removedHeaderStyle.Render(padRight("- before", half)))
	b.WriteString(" │ ")
	b.WriteString(addedHeaderStyle.Render("+ after"))

	for i := 0; i < p.Rows(); i++ {
		b.WriteByte('\n')
		b.WriteString(m.paneCell(p.Removed, i, half, removedPaneStyle))
		b.WriteString(" │ ")
		b.WriteString(m.paneCell(p.Added, i, half, addedPaneStyle))
	}
	return b.String()
}

func (m Model) paneCell(lines []diff.DiffLine, i, width int, base lipgloss.Style) string {
	if i >= len(lines) {
		return strings.Repeat(" ", width)
	}
	l := lines[i]
	num := lineNumberStyle.Render(fmt.Sprintf("%d", l.Number))
	code := m.paint(l.Tokens, max(width-lipgloss.Width(num)-1, 1), base)
	return num + " " + code
}

// paint colours tokens with the palette and fits them to width cells.
func (m Model) paint(tokens []diff.Token, width int, base lipgloss.Style) string {
	var b strings.Builder
	used := 0
	for _, tok := range tokens {
		text := strings.ReplaceAll(tok.Text, "\t", "  ")
		w := runewidth.StringWidth(text)
		cut := used+w > width
		if cut {
			text = runewidth.Truncate(text, width-used, "…")
			w = runewidth.StringWidth(text)
		}
		style := base
		if c := m.palette.Color(tok.Class); c != "" {
			style = style.Foreground(lipgloss.Color(c))
		}
		b.WriteString(style.Render(text))
		used += w
		if cut {
			break
		}
	}
	b.WriteString(base.Render(strings.Repeat(" ", max(width-used, 0))))
	return b.String()
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-runewidth.StringWidth(s), 0))
}
