package tui

import (
	"fmt"
	"strings"

	"github.com/aezell/docsync/internal/analysis"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/nav"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// sidebarFirstRow is the screen row of the first navigation entry: border,
// brand line and its bottom padding come first.
const sidebarFirstRow = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.renderModal()
	}

	bodyHeight := m.height - 1
	mainWidth := m.width - sidebarWidth - 1

	sidebar := m.renderSidebar(bodyHeight)
	main := panelStyle.
		Width(mainWidth - 2).
		Height(bodyHeight - 2).
		Render(m.renderMain(mainWidth-4, bodyHeight-2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(brandStyle.Render("docsync"))
	b.WriteByte('\n')

	for i, e := range m.nav.Entries() {
		line := fmt.Sprintf("F%d %s", i+1, e.Label)
		switch {
		case e.Active:
			b.WriteString(navItemActiveStyle.Width(sidebarWidth - 4).Render("▸ " + line))
		case e.Locked:
			b.WriteString(navItemLockedStyle.Render("  " + line + " ✕"))
		default:
			b.WriteString(navItemStyle.Render("  " + line))
		}
		b.WriteByte('\n')
	}

	if m.store.Completed() {
		b.WriteByte('\n')
		name := runewidth.Truncate(m.store.DisplayName(), sidebarWidth-4, "…")
		b.WriteString(labelStyle.Render(name))
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d issues", m.store.IssueCount())))
	}

	return sidebarStyle.Width(sidebarWidth - 2).Height(height - 2).Render(b.String())
}

func (m Model) renderMain(width, height int) string {
	switch m.nav.Current() {
	case nav.ViewReadme:
		return m.renderReadme()
	case nav.ViewIssues:
		return m.renderIssues(width, height)
	case nav.ViewComplexity:
		return m.renderComplexity()
	default:
		return m.renderInput()
	}
}

func (m Model) renderInput() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Analyze a repository"))
	b.WriteByte('\n')
	b.WriteString("Enter a repository URL to generate its README and list the issues found in it.")
	b.WriteString("\n\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n\n")

	if m.requireConsent {
		box := "[ ]"
		if m.consent {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s I agree to send this repository URL to the analysis service ", box))
		b.WriteString(dimStyle.Render("(ctrl+t)"))
		b.WriteString("\n\n")
	}

	if m.orch.Analyzing() {
		b.WriteString(m.spinner.View())
		b.WriteString(" Analyzing repository...")
	} else {
		b.WriteString(dimStyle.Render("enter to analyze"))
	}

	if m.serviceBase != "" {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Service: " + m.serviceBase))
	}
	return b.String()
}

func (m Model) renderReadme() string {
	var b strings.Builder
	title := "README"
	if name := m.store.DisplayName(); name != "" {
		title += " · " + name
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')

	if m.typing == nil || (m.typing.Done() && m.frame == "") {
		b.WriteString(dimStyle.Render("The service returned an empty document."))
	} else {
		b.WriteString(m.readme.View())
	}

	b.WriteString("\n")
	hint := "c copy · m commit · s skip typing · ↑/↓ scroll"
	if m.orch.Committing() {
		hint = m.spinner.View() + " committing..."
	}
	b.WriteString(helpBarStyle.Render(hint))
	return b.String()
}

func (m Model) renderIssues(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteByte('\n')

	issues := m.store.Issues()
	if len(issues) == 0 {
		b.WriteString(ratingGoodStyle.Render("No issues found"))
		b.WriteByte('\n')
		b.WriteString(dimStyle.Render("The analysis did not detect any problems in this repository."))
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%d issues: %s", len(issues), model.Summary(issues))))
	b.WriteString("\n\n")

	visible := max(height-5, 1)
	start := max(m.selected-visible+1, 0)
	end := min(start+visible, len(issues))
	for i := start; i < end; i++ {
		b.WriteString(m.renderIssueRow(issues[i], i == m.selected, width))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("enter details · ↑/↓ select"))
	return b.String()
}

func (m Model) renderIssueRow(is model.Issue, selected bool, width int) string {
	badge := severityBadge(is.Severity)
	avail := max(width-lipgloss.Width(badge)-1, 4)

	text := is.Title
	if is.LocationLabel != "" {
		text += "  " + is.LocationLabel
	}
	text = runewidth.Truncate(text, avail, "…")

	style := issueItemStyle
	if selected {
		style = issueItemSelectedStyle
	}
	return badge + " " + style.Render(text)
}

func severityBadge(s model.Severity) string {
	label := fmt.Sprintf("%-8s", strings.ToUpper(s.String()))
	switch s {
	case model.SeverityCritical:
		return severityCriticalStyle.Render(label)
	case model.SeverityMedium:
		return severityMediumStyle.Render(label)
	default:
		return severityLowStyle.Render(label)
	}
}

func (m Model) renderComplexity() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Complexity"))
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("Paste a snippet and press ctrl+r to estimate its time complexity."))
	b.WriteString("\n\n")
	b.WriteString(m.snippet.View())
	b.WriteString("\n\n")

	est := m.estimate
	if est == nil {
		return b.String()
	}

	b.WriteString("Complexity: ")
	b.WriteString(ratingStyle(est.Rating).Render(est.Complexity))
	b.WriteString(dimStyle.Render(" (" + string(est.Rating) + ")"))
	b.WriteString("\n\n")

	writeList(&b, "Bottlenecks", est.Bottlenecks)
	b.WriteByte('\n')
	writeList(&b, "Suggestions", est.Suggestions)
	return b.String()
}

func ratingStyle(r analysis.Rating) lipgloss.Style {
	switch r {
	case analysis.RatingGood:
		return ratingGoodStyle
	case analysis.RatingOK:
		return ratingOKStyle
	default:
		return ratingBadStyle
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString(labelStyle.Render(title))
	b.WriteByte('\n')
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteByte('\n')
		return
	}
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}

func (m Model) renderStatusBar() string {
	left := dimStyle.Render(m.nav.Current().Label())
	if m.notice != "" {
		if m.noticeErr {
			left = noticeErrorStyle.Render(m.notice)
		} else {
			left = noticeStyle.Render(m.notice)
		}
	}

	right := "? help  q quit "
	switch m.nav.Current() {
	case nav.ViewInput, nav.ViewComplexity:
		right = "tab views  ctrl+c quit "
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpHeaderStyle.Render("docsync: Keyboard Shortcuts"))
	b.WriteString("\n\n")

	helpItems := []struct{ key, desc string }{
		{"F1-F4", "Analyze / README / Issues / Complexity"},
		{"Tab/S-Tab", "Next / previous view"},
		{"Enter", "Analyze repository / open issue"},
		{"C-t", "Toggle consent"},
		{"C-r", "Estimate snippet complexity"},
		{"↑/k ↓/j", "Scroll / select"},
		{"c", "Copy document"},
		{"m", "Commit document"},
		{"s", "Skip typing animation"},
		{"Esc/q", "Close issue details"},
		{"?", "Toggle this help"},
		{"q / C-c", "Quit"},
	}

	for _, item := range helpItems {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Width(12).Render(item.key),
			item.desc,
		))
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}
