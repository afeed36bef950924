package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorGreen     = lipgloss.Color("#50fa7b")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorOrange    = lipgloss.Color("#ffb86c")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
	colorRemovedBg = lipgloss.Color("#3b2030")
	colorAddedBg   = lipgloss.Color("#1f3326")
)

// Style definitions.
var (
	// Sidebar
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	navItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	navItemActiveStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorHighlight).
				Bold(true)

	navItemLockedStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	brandStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 0, 1, 0)

	// Main panel
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	// Issue list
	issueItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	issueItemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorHighlight).
				Bold(true)

	severityCriticalStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	severityMediumStyle = lipgloss.NewStyle().
				Foreground(colorOrange)

	severityLowStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	// Modal
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorBgLight).
			Background(colorBlue).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(4).
			Align(lipgloss.Right)

	removedPaneStyle = lipgloss.NewStyle().
				Background(colorRemovedBg)

	addedPaneStyle = lipgloss.NewStyle().
			Background(colorAddedBg)

	removedHeaderStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	addedHeaderStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	// Complexity ratings
	ratingGoodStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	ratingOKStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	ratingBadStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	// Help
	helpHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
