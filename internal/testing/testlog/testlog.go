// Package testlog routes the standard logger into test output.
package testlog

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
)

// writer redirects log output to testing.T.Logf, one call per line.
type writer struct {
	t      testing.TB
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (w *writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.buffer.Write(p)
	for {
		line, err := w.buffer.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			if len(line) > 0 {
				w.buffer.WriteString(line)
			}
			break
		}
		if line = strings.TrimSuffix(line, "\n"); line != "" {
			w.t.Logf("%s", line)
		}
	}
	return n, nil
}

func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if rest := w.buffer.String(); rest != "" {
		w.t.Logf("%s", rest)
	}
	w.buffer.Reset()
}

// Setup redirects the standard log package output to t.Logf until the test
// ends.
func Setup(t testing.TB) {
	t.Helper()
	install(t, &writer{t: t})
}

// Capture redirects log output to t.Logf and also into the returned buffer.
func Capture(t testing.TB) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	install(t, &writer{t: t}, &buf)
	return &buf
}

func install(t testing.TB, w *writer, extra ...io.Writer) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	originalPrefix := log.Prefix()

	log.SetOutput(io.MultiWriter(append([]io.Writer{w}, extra...)...))
	log.SetFlags(log.Ltime | log.Lshortfile)

	t.Cleanup(func() {
		w.flush()
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
		log.SetPrefix(originalPrefix)
	})
}
