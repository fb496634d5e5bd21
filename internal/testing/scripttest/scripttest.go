// Package scripttest runs command line scripts against in-process commands
// with rsc.io/script.
//
// A script file is a txtar archive: the comment section is the script and
// the files are written to the script's working directory before it runs.
package scripttest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
	"rsc.io/script"
	rscscripttest "rsc.io/script/scripttest"
)

// Invocation describes one run of an in-process command.
type Invocation struct {
	Dir    string // the script's working directory
	Args   []string
	Getenv func(string) string
	Stdout io.Writer
	Stderr io.Writer
}

// Main runs a command line in-process.
type Main func(ctx context.Context, inv Invocation) error

// Command returns a script command named name backed by main. A failing run
// writes "Error: <err>" to stderr, the same way the binary reports it.
func Command(name string, main Main) script.Cmd {
	return script.Command(
		script.CmdUsage{
			Summary: "run " + name + " in-process",
			Args:    "[args...]",
		},
		func(s *script.State, args ...string) (script.WaitFunc, error) {
			var stdout, stderr bytes.Buffer
			inv := Invocation{
				Dir:  s.Getwd(),
				Args: args,
				Getenv: func(key string) string {
					v, _ := s.LookupEnv(key)
					return v
				},
				Stdout: &stdout,
				Stderr: &stderr,
			}
			err := main(s.Context(), inv)
			if err != nil {
				fmt.Fprintf(&stderr, "Error: %v\n", err)
			}
			return func(*script.State) (string, string, error) {
				return stdout.String(), stderr.String(), err
			}, nil
		},
	)
}

// Run runs the script at scriptPath with the default commands plus cmds. The
// working directory is a fresh temporary directory that is also $HOME and
// $WORK.
func Run(t *testing.T, scriptPath string, cmds map[string]script.Cmd) {
	t.Helper()
	archive, err := txtar.ParseFile(scriptPath)
	if err != nil {
		t.Fatalf("Failed to parse script %s: %v", scriptPath, err)
	}

	work := t.TempDir()
	for _, f := range archive.Files {
		path := filepath.Join(work, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", f.Name, err)
		}
	}

	engine := script.NewEngine()
	for name, cmd := range cmds {
		engine.Cmds[name] = cmd
	}
	env := []string{
		"HOME=" + work,
		"WORK=" + work,
		"PATH=" + os.Getenv("PATH"),
	}
	state, err := script.NewState(context.Background(), work, env)
	if err != nil {
		t.Fatalf("Failed to create script state: %v", err)
	}
	rscscripttest.Run(t, engine, state, scriptPath, bytes.NewReader(archive.Comment))
}
