package cli

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// setupLogging directs log output to path so it does not corrupt the
// terminal. When the file cannot be opened logging is discarded.
func (a *app) setupLogging(path string) {
	if path == "" {
		log.SetOutput(io.Discard)
		return
	}
	path = a.path(path)
	f, err := tea.LogToFile(path, "lighthouse")
	if err != nil {
		fmt.Fprintf(a.env.Stderr, "Error opening log file '%s': %v\n", path, err)
		log.SetOutput(io.Discard)
		return
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	a.closers = append(a.closers, func() {
		log.SetOutput(io.Discard)
		f.Close()
	})
}
