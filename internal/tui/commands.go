package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/aezell/docsync/internal/app"
	"github.com/aezell/docsync/internal/debug"
	"github.com/aezell/docsync/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type analysisDoneMsg struct {
	ticket app.AnalysisTicket
	result *service.AnalyzeResult
	err    error
}

type commitDoneMsg struct {
	ticket app.CommitTicket
	result *service.CommitResult
	err    error
}

// typeTickMsg asks for the next frame of the render tagged gen.
type typeTickMsg struct {
	gen uint64
}

type copiedMsg struct {
	err error
}

type openedMsg struct {
	url string
	err error
}

func fetchCmd(o *app.Orchestrator, t app.AnalysisTicket) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := o.Fetch(context.Background(), t)
		debug.LogTiming("analyze request", time.Since(start))
		return analysisDoneMsg{ticket: t, result: res, err: err}
	}
}

func commitCmd(o *app.Orchestrator, t app.CommitTicket) tea.Cmd {
	return func() tea.Msg {
		res, err := o.SendCommit(context.Background(), t)
		return commitDoneMsg{ticket: t, result: res, err: err}
	}
}

func typeTick(gen uint64, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return typeTickMsg{gen: gen}
	})
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: open(url)}
	}
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("xdg-open not found in PATH")
		}
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
