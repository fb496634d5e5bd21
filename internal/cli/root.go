// Package cli implements the lighthouse command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tmc/lighthouse"
	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/config"
	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/settings"
)

var version = "dev"

// Env is the process environment the commands run in.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Dir resolves relative file arguments. Empty means the process directory.
	Dir string
	// Device replaces the system camera and microphone.
	Device media.Device
	// CheckinInterval is the countdown step of the check-in command.
	CheckinInterval time.Duration
	// ConfigureLogging redirects the standard logger to the configured log
	// file.
	ConfigureLogging bool
}

// DefaultEnv returns the environment of the running process.
func DefaultEnv() Env {
	return Env{
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		ConfigureLogging: true,
	}
}

type rootFlags struct {
	configPath string
	apiKey     string
	model      string
	logFile    string
	traceFile  string
	timeout    time.Duration
	noLogo     bool
}

// app carries state shared by the commands of one invocation.
type app struct {
	env     Env
	flags   rootFlags
	cfg     *config.Config
	client  *api.Client
	closers []func()
}

// Execute runs the command line of the current process and exits non-zero on
// failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := Run(ctx, DefaultEnv(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// Run executes the command line args in env.
func Run(ctx context.Context, env Env, args []string) error {
	a := &app{env: env}
	defer a.close()
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lighthouse",
		Short: "A terminal companion for hard nights",
		Long: `Lighthouse is a terminal companion for late-night anxiety and hard moments.

It offers a supportive chat, grounding exercises, a personal safety plan,
a mood log and a camera check-in. Crisis resources are always one key
away (ctrl+e).

Without an API key every reply is a gentle offline message; set
LIGHTHOUSE_API_KEY (or GEMINI_API_KEY) or a Vertex AI project to talk to a
model.

If you are in danger, call or text 988, or text HOME to 741741.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE:              a.runRoot,
	}
	cmd.SetIn(a.env.Stdin)
	cmd.SetOut(a.env.Stdout)
	cmd.SetErr(a.env.Stderr)
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	f := cmd.PersistentFlags()
	f.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.config/lighthouse/config.toml)")
	f.StringVar(&a.flags.apiKey, "api-key", "", "Gemini API key (overrides LIGHTHOUSE_API_KEY and GEMINI_API_KEY)")
	f.StringVar(&a.flags.model, "model", "", "model ID to use (default "+api.DefaultModel+")")
	f.StringVar(&a.flags.logFile, "log-file", "", "debug log file (default lighthouse-debug.log)")
	f.StringVar(&a.flags.traceFile, "trace-file", "", "write gateway trace spans as JSON to `file`")
	f.DurationVar(&a.flags.timeout, "timeout", 0, "timeout for each gateway request (e.g. 30s)")
	f.BoolVar(&a.flags.noLogo, "no-logo", false, "hide the logo in the header")

	cmd.AddCommand(
		a.chatCommand(),
		a.affirmCommand(),
		a.checkinCommand(),
		a.modelsCommand(),
	)
	return cmd
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadEnv(a.path(a.flags.configPath), a.env.Getenv)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = a.flags.apiKey
	}
	if flags.Changed("model") {
		cfg.Model = a.flags.model
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.flags.logFile
	}
	if flags.Changed("trace-file") {
		cfg.TraceFile = a.flags.traceFile
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = a.flags.timeout
	}
	if a.flags.noLogo {
		cfg.UI.ShowLogo = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.SystemPromptFile = a.path(cfg.SystemPromptFile)
	a.cfg = cfg

	if a.env.ConfigureLogging {
		a.setupLogging(cfg.LogFile)
	}
	if cfg.TraceFile != "" {
		if err := a.setupTracing(a.path(cfg.TraceFile)); err != nil {
			return err
		}
	}

	client, err := cfg.Client()
	if err != nil {
		return err
	}
	a.client = client
	a.closers = append(a.closers, func() {
		if err := client.Close(); err != nil {
			log.Printf("close gateway: %v", err)
		}
	})
	log.Printf("config: path=%q model=%q mode=%s api-key-set=%t timeout=%s",
		cfg.Path(), client.Model(), client.Mode(), cfg.APIKey != "", cfg.RequestTimeout)
	return nil
}

func (a *app) setupTracing(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}
	shutdown, err := api.SetupTracing(f)
	if err != nil {
		f.Close()
		return err
	}
	a.closers = append(a.closers, func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("flush traces: %v", err)
		}
		f.Close()
	})
	return nil
}

// close runs the cleanup functions in reverse order. It is safe to call more
// than once.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// path resolves p against Env.Dir.
func (a *app) path(p string) string {
	if p == "" || filepath.IsAbs(p) || a.env.Dir == "" {
		return p
	}
	return filepath.Join(a.env.Dir, p)
}

func (a *app) device() media.Device {
	if a.env.Device != nil {
		return a.env.Device
	}
	return &media.SystemDevice{
		AudioDevice:  a.cfg.Media.AudioDevice,
		CameraDevice: a.cfg.Media.CameraDevice,
		FFmpeg:       a.cfg.Media.FFmpeg,
	}
}

func (a *app) settingsPanel() settings.Model {
	panel := settings.New()
	panel.CurrentModel = a.client.Model()
	panel.GatewayMode = string(a.client.Mode())
	if d := a.cfg.Media.AudioDevice; d != "" {
		panel.AudioDevice = d
	}
	if d := a.cfg.Media.CameraDevice; d != "" {
		panel.CameraDevice = d
	}
	panel.ConfigPath = a.cfg.Path()
	if a.env.ConfigureLogging {
		panel.LogFile = a.cfg.LogFile
	}
	panel.ShowLogo = a.cfg.UI.ShowLogo
	return panel
}

// runRoot starts the terminal UI, or line mode when stdin is not a terminal.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	if !isTerminal(a.env.Stdin) {
		log.Println("stdin is not a terminal, using line mode")
		return a.lineMode(cmd.Context(), a.env.Stdin, "")
	}

	model := lighthouse.New(
		lighthouse.WithGateway(a.client),
		lighthouse.WithDevice(a.device()),
		lighthouse.WithLogo(a.cfg.UI.ShowLogo),
		lighthouse.WithMarkdown(a.cfg.UI.Markdown),
		lighthouse.WithSafetyPlan(a.cfg.SafetyPlan),
		lighthouse.WithSettings(a.settingsPanel()),
	)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(a.env.Stdin),
		tea.WithOutput(a.env.Stdout),
	)
	log.Println("--- Application Start ---")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Println("--- Application Exit ---")
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
