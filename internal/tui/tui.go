// Package tui implements the Bubble Tea terminal user interface.
//
// The Model owns the session store, the navigator and the orchestrator and
// is their only caller, so every state change happens inside Update. Network
// requests run as commands and come back as messages that the orchestrator
// completes.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/aezell/docsync/internal/analysis"
	"github.com/aezell/docsync/internal/app"
	"github.com/aezell/docsync/internal/config"
	"github.com/aezell/docsync/internal/debug"
	"github.com/aezell/docsync/internal/diff"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/nav"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/session"
	"github.com/aezell/docsync/internal/typewriter"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 22

// Options configures a Model.
type Options struct {
	Service     app.Service
	ServiceBase string // shown on the input view
	Config      config.Config

	// Converter renders the document; defaults to a glamour renderer.
	Converter typewriter.Converter
	// Clipboard and OpenURL default to the system clipboard and browser.
	Clipboard func(string) error
	OpenURL   func(string) error
}

// Model is the top-level Bubble Tea model for docsync.
type Model struct {
	store *session.Store
	nav   *nav.Navigator
	orch  *app.Orchestrator

	conv           typewriter.Converter
	palette        diff.Palette
	cursor         string
	interval       time.Duration
	requireConsent bool
	serviceBase    string
	copyText       func(string) error
	openURL        func(string) error

	width  int
	height int

	// Input view
	urlInput textinput.Model
	consent  bool
	spinner  spinner.Model

	// Readme view
	readme viewport.Model
	typing *typewriter.Sequence
	frame  string

	// Issues view
	selected int

	// Complexity view
	snippet  textarea.Model
	estimate *analysis.Estimate

	modal    *modalState
	showHelp bool

	notice    string
	noticeErr bool
}

// New creates a Model with an empty session on the input view.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	conv := opts.Converter
	if conv == nil {
		c, err := typewriter.Terminal(cfg.UI.MarkdownStyle, cfg.UI.WordWrap)
		if err != nil {
			return Model{}, err
		}
		conv = c
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.OpenURL == nil {
		opts.OpenURL = OpenBrowser
	}
	cursor := cfg.Typing.Cursor
	if cursor == "" {
		cursor = typewriter.DefaultCursor
	}

	store := session.New()
	navigator := nav.New(store)

	ti := textinput.New()
	ti.Placeholder = "https://github.com/owner/repository"
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(analysis.BubbleSortSample)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = labelStyle

	return Model{
		store:          store,
		nav:            navigator,
		orch:           app.New(opts.Service, store, navigator),
		conv:           conv,
		palette:        diff.NewPalette(cfg.UI.Style),
		cursor:         cursor,
		interval:       cfg.TypingInterval(),
		requireConsent: cfg.ConsentRequired(),
		serviceBase:    opts.ServiceBase,
		copyText:       opts.Clipboard,
		openURL:        opts.OpenURL,
		urlInput:       ti,
		spinner:        sp,
		readme:         viewport.New(80, 20),
		snippet:        ta,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.orch.Analyzing() && !m.orch.Committing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisDoneMsg:
		return m.finishAnalysis(msg)

	case commitDoneMsg:
		return m.finishCommit(msg)

	case typeTickMsg:
		if m.typing == nil || msg.gen != m.typing.Generation() {
			debug.Log("dropping stale frame for generation %d", msg.gen)
			return m, nil
		}
		return m.advanceTyping()

	case copiedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("Could not copy the document: %v", msg.err), true)
		} else {
			m.setNotice("Document copied to the clipboard", false)
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("Could not open %s: %v", msg.url, msg.err), true)
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQ) {
		return m, tea.Quit
	}

	if m.modal != nil {
		switch {
		case key.Matches(msg, keys.Close):
			m.closeModal()
		default:
			var cmd tea.Cmd
			m.modal.vp, cmd = m.modal.vp.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, keys.Help, keys.Close) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Input):
		return m.navigate(nav.ViewInput)
	case key.Matches(msg, keys.Readme):
		return m.navigate(nav.ViewReadme)
	case key.Matches(msg, keys.Issues):
		return m.navigate(nav.ViewIssues)
	case key.Matches(msg, keys.Complex):
		return m.navigate(nav.ViewComplexity)
	case key.Matches(msg, keys.NextView):
		return m.step(m.nav.Next)
	case key.Matches(msg, keys.PrevView):
		return m.step(m.nav.Prev)
	}

	switch m.nav.Current() {
	case nav.ViewInput:
		return m.inputKey(msg)
	case nav.ViewReadme:
		return m.readmeKey(msg)
	case nav.ViewIssues:
		return m.issuesKey(msg)
	case nav.ViewComplexity:
		return m.complexityKey(msg)
	}
	return m, nil
}

func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		return m.startAnalysis()
	case key.Matches(msg, keys.Consent):
		m.consent = !m.consent
		return m, nil
	}
	if m.orch.Analyzing() {
		return m, nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) readmeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, keys.Skip):
		m.skipTyping()
		return m, nil
	case key.Matches(msg, keys.Copy):
		if m.store.Document() == "" {
			m.setNotice("There is no document to copy", true)
			return m, nil
		}
		return m, copyCmd(m.copyText, m.store.Document())
	case key.Matches(msg, keys.Commit):
		return m.startCommit()
	}
	var cmd tea.Cmd
	m.readme, cmd = m.readme.Update(msg)
	return m, cmd
}

func (m Model) issuesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = true
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < m.store.IssueCount()-1 {
			m.selected++
		}
	case key.Matches(msg, keys.Submit):
		m.openIssue(m.selected)
	}
	return m, nil
}

func (m Model) complexityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Estimate) {
		est, err := analysis.EstimateComplexity(m.snippet.Value())
		if err != nil {
			m.estimate = nil
			m.setError(err)
			return m, nil
		}
		m.estimate = est
		m.clearNotice()
		return m, nil
	}
	var cmd tea.Cmd
	m.snippet, cmd = m.snippet.Update(msg)
	return m, cmd
}

// forward hands non-key messages (cursor blinks and the like) to the
// focused component.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.nav.Current() {
	case nav.ViewInput:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case nav.ViewComplexity:
		m.snippet, cmd = m.snippet.Update(msg)
	}
	return m, cmd
}

func (m Model) navigate(target nav.View) (tea.Model, tea.Cmd) {
	return m.step(func() error { return m.nav.Request(target) })
}

func (m Model) step(move func() error) (tea.Model, tea.Cmd) {
	if err := move(); err != nil {
		m.setError(err)
		return m, nil
	}
	m.clearNotice()
	return m, m.focusCurrent()
}

// focusCurrent gives keyboard focus to the text field of the visible view.
func (m *Model) focusCurrent() tea.Cmd {
	m.urlInput.Blur()
	m.snippet.Blur()
	switch m.nav.Current() {
	case nav.ViewInput:
		return m.urlInput.Focus()
	case nav.ViewComplexity:
		return m.snippet.Focus()
	}
	return nil
}

func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.orch.Analyzing() {
		return m, nil
	}
	if m.requireConsent && !m.consent {
		m.setError(model.NewValidationError("consent", "confirm that the repository may be analyzed (ctrl+t) first"))
		return m, nil
	}
	t, err := m.orch.BeginAnalysis(m.urlInput.Value())
	if err != nil {
		m.setRequestError(err, analyzePrefix, service.GenericAnalyzeError)
		return m, nil
	}
	m.clearNotice()
	return m, tea.Batch(m.spinner.Tick, fetchCmd(m.orch, t))
}

func (m Model) finishAnalysis(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	out, err := m.orch.CompleteAnalysis(msg.ticket, msg.result, msg.err)
	if err != nil {
		m.setRequestError(err, analyzePrefix, service.GenericAnalyzeError)
		return m, nil
	}

	m.closeModal()
	m.selected = 0
	m.showHelp = false
	m.clearNotice()
	m.focusCurrent()
	m.frame = ""
	m.readme.SetContent("")
	m.readme.GotoTop()
	m.typing = typewriter.New(out.Generation, out.Document, m.conv, m.cursor)
	return m.advanceTyping()
}

// advanceTyping shows the next frame and schedules the one after it.
func (m Model) advanceTyping() (tea.Model, tea.Cmd) {
	f, ok := m.typing.Next()
	if !ok {
		return m, nil
	}
	m.showFrame(f)
	if f.Final {
		return m, nil
	}
	return m, typeTick(m.typing.Generation(), m.interval)
}

func (m *Model) skipTyping() {
	if m.typing == nil || m.typing.Done() {
		return
	}
	m.showFrame(m.typing.Skip())
}

func (m *Model) showFrame(f typewriter.Frame) {
	m.frame = f.Text
	m.readme.SetContent(f.Text)
	if !f.Final {
		m.readme.GotoBottom()
	}
}

func (m Model) startCommit() (tea.Model, tea.Cmd) {
	if m.orch.Committing() {
		return m, nil
	}
	t, err := m.orch.BeginCommit(m.store.RepoURL(), m.store.Document())
	if err != nil {
		m.setRequestError(err, commitPrefix, service.GenericCommitError)
		return m, nil
	}
	m.setNotice("Committing document...", false)
	return m, tea.Batch(m.spinner.Tick, commitCmd(m.orch, t))
}

func (m Model) finishCommit(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	res, err := m.orch.CompleteCommit(msg.ticket, msg.result, msg.err)
	if err != nil {
		m.setRequestError(err, commitPrefix, service.GenericCommitError)
		return m, nil
	}
	text := res.Message
	if text == "" {
		text = "Document committed"
	}
	m.setNotice(text, false)
	if res.URL == "" {
		return m, nil
	}
	return m, openCmd(m.openURL, res.URL)
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) clearNotice() {
	m.setNotice("", false)
}

const (
	analyzePrefix = "Error analyzing repository"
	commitPrefix  = "Error committing document"
)

// setError turns a validation or navigation failure into a notice.
func (m *Model) setError(err error) {
	m.setRequestError(err, "", "")
}

// setRequestError turns err into a notice. Service failures carry the
// service's message (or generic when there is none) behind prefix.
func (m *Model) setRequestError(err error, prefix, generic string) {
	var ve *model.ValidationError
	var se *service.ServiceError
	var text string
	switch {
	case errors.As(err, &ve):
		m.setNotice(ve.Message, true)
		return
	case errors.Is(err, nav.ErrNavigationDenied):
		m.setNotice(err.Error(), true)
		return
	case errors.Is(err, app.ErrBusy):
		text = "please wait for the current request to finish"
	case errors.As(err, &se):
		text = se.Message
	default:
		debug.Log("request failed: %v", err)
		text = generic
	}
	if text == "" {
		text = err.Error()
	}
	if prefix != "" {
		text = prefix + ": " + text
	}
	m.setNotice(text, true)
}

func (m *Model) resize() {
	mainW := m.width - sidebarWidth - 1
	innerW := max(mainW-4, 10)
	innerH := max(m.height-7, 3)

	m.urlInput.Width = max(innerW-4, 10)
	m.snippet.SetWidth(innerW)
	m.snippet.SetHeight(max(innerH/2, 3))
	m.readme.Width = innerW
	m.readme.Height = innerH
	if m.modal != nil {
		m.layoutModal()
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
