// Package debug provides conditional debug logging for docsync.
//
// Debug logging is enabled by setting DOCSYNC_DEBUG:
//
//	DOCSYNC_DEBUG=1 docsync analyze https://github.com/acme/widgets
//
// Messages go to stderr with timestamps. The interactive UI owns the
// terminal, so it redirects them to a file with ToFile. When disabled, every
// function here returns immediately.
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("DOCSYNC_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[DOCSYNC_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled turns debug logging on or off.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[DOCSYNC_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "[DOCSYNC_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// ToFile sends debug output to path for the lifetime of a full-screen
// program. The caller closes the returned file. It is a no-op returning nil
// when debug logging is disabled.
func ToFile(path string) (io.Closer, error) {
	if !Enabled() {
		return nil, nil
	}
	f, err := tea.LogToFile(path, "docsync")
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	Log("%s took %v", name, d)
}
