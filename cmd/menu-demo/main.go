// Command menu-demo walks through every menukit widget as a fake project
// setup wizard: a sectioned menu, a checkbox list, validated text inputs,
// a confirmation and a task runner.
//
// Usage:
//
//	go run ./cmd/menu-demo
//	go run ./cmd/menu-demo --plain
//	go run ./cmd/menu-demo --debug-log /tmp/menukit-demo.jsonl
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/daniellee2015/cli-menu-kit/pkg/menukit"
)

const version = "v0.1.0"

type options struct {
	ConfigPath string
	Plain      bool
	ASCII      bool
	Debug      bool
	DebugLog   string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "menu-demo",
		Short: "Interactive tour of the menukit widgets",
		Long: `menu-demo plays through a project setup wizard built from the stock
menukit widgets. Nothing is written to disk; the point is to kick the
tires on the renderer and the widgets from a real terminal.`,
		Example: `  # Run the wizard
  menu-demo

  # No colors, ASCII glyphs only
  menu-demo --plain

  # Record per-render stats while reproducing a glitch
  menu-demo --debug-log /tmp/menukit-demo.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to a menukit.toml (default: walk up from the working directory)")
	rootCmd.Flags().BoolVar(&opts.Plain, "plain", false, "Drop all colors and unicode glyphs")
	rootCmd.Flags().BoolVar(&opts.ASCII, "ascii", false, "Keep colors but use ASCII glyphs")
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging to "+demoLogPath())
	rootCmd.Flags().StringVar(&opts.DebugLog, "debug-log", "", "Write per-render JSONL stats to this file")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// Debug logs go to a file: stderr shares the terminal with the
	// wizard, and anything printed there stays smeared across the
	// alternate screen until the next full repaint.
	level := slog.LevelInfo
	logDst := io.Writer(os.Stderr)
	if opts.Debug {
		level = slog.LevelDebug
		f, err := os.OpenFile(demoLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close() //nolint:errcheck
		logDst = f
	}
	logger := slog.New(slog.NewTextHandler(logDst, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path, cfg, err := resolveConfig(opts)
	if err != nil {
		if opts.ConfigPath != "" {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: failed to load menukit.toml: %v\n", err)
	}
	if cfg != nil {
		ctx = menukit.ContextWithConfig(ctx, path, cfg)
		slog.Debug("loaded config", "path", path)
	}

	th := cfg.BuildTheme()
	switch {
	case opts.Plain:
		th = menukit.PlainTheme()
	case opts.ASCII:
		th = th.ASCII()
	}

	sessionOpts := []menukit.SessionOption{menukit.WithLayoutConfig(cfg.LayoutConfig())}
	if opts.DebugLog != "" {
		f, err := os.OpenFile(opts.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close() //nolint:errcheck // best-effort close of debug log
		sessionOpts = append(sessionOpts, menukit.WithDebugWriter(f))
	}

	session := menukit.NewSession(menukit.NewProcessTerminal(), sessionOpts...)
	defer session.Close()

	answers := &setupAnswers{}
	wiz := menukit.NewWizard(
		templateStep(th, answers),
		featureStep(th, answers),
		detailStep(th, answers),
		confirmStep(th, answers),
		createStep(th, answers),
	)

	err = wiz.Run(ctx, session)

	// Leave the alternate screen before touching stdout again.
	session.Close()

	switch {
	case err == nil:
		printSummary(answers)
		return nil
	case errors.Is(err, menukit.ErrCanceled):
		fmt.Fprintln(os.Stderr, "setup canceled")
		return nil
	case errors.Is(err, menukit.ErrTerminated):
		return nil
	default:
		return err
	}
}

func resolveConfig(opts options) (string, *menukit.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := menukit.LoadConfig(opts.ConfigPath)
		if err != nil {
			return "", nil, err
		}
		return opts.ConfigPath, cfg, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	return menukit.FindConfig(cwd)
}

// setupAnswers collects the wizard's results so steps can restore state
// when the user backs up.
type setupAnswers struct {
	template       string
	features       []int
	featuresPicked bool
	name           string
	token          string
	replicas       int
}

var templateItems = []menukit.MenuItem{
	{Heading: "Services", Label: "http-api", Detail: "JSON over HTTP"},
	{Label: "grpc-service", Detail: "protobuf RPC server"},
	{Label: "worker", Detail: "queue consumer"},
	{Heading: "Tooling", Label: "cli", Detail: "cobra command line tool"},
	{Label: "library", Detail: "importable package"},
	{Label: "soap-gateway", Detail: "no longer offered", Disabled: true},
}

var featureItems = []menukit.MenuItem{
	{Label: "structured logging"},
	{Label: "metrics endpoint"},
	{Label: "request tracing"},
	{Label: "dockerfile"},
	{Label: "release workflow"},
}

// page wraps main and prompt components with the standard chrome: a
// banner on top and the shared hint bar at the bottom.
func page(s *menukit.Session, th menukit.Theme, subtitle string, main, prompt []menukit.Component) *menukit.Page {
	banner := menukit.NewBanner("Project Setup", subtitle, th)
	banner.Version = version
	return &menukit.Page{
		Header: []menukit.Component{banner},
		Main:   main,
		Hints:  []menukit.Component{menukit.NewHintBar(s.Hints(), th)},
		Prompt: prompt,
	}
}

func templateStep(th menukit.Theme, a *setupAnswers) menukit.Step {
	return menukit.Step{Name: "template", Run: func(ctx context.Context, s *menukit.Session) error {
		menu := menukit.NewMenu(templateItems, th)
		for i, it := range templateItems {
			if it.Label == a.template {
				menu.SetCursor(i)
			}
		}

		if err := s.Run(ctx, page(s, th, "choose a template", []menukit.Component{menu}, nil)); err != nil {
			return err
		}
		a.template = templateItems[menu.Choice()].Label
		slog.Debug("template chosen", "template", a.template)
		return nil
	}}
}

func featureStep(th menukit.Theme, a *setupAnswers) menukit.Step {
	return menukit.Step{Name: "features", Run: func(ctx context.Context, s *menukit.Session) error {
		ms := menukit.NewMultiSelect(featureItems, th)
		if !a.featuresPicked {
			// First visit: sensible defaults.
			ms.SetChecked(0, true)
			ms.SetChecked(3, true)
		}
		for _, i := range a.features {
			ms.SetChecked(i, true)
		}

		if err := s.Run(ctx, page(s, th, "pick the extras", []menukit.Component{ms}, nil)); err != nil {
			return err
		}
		a.features = ms.Selected()
		a.featuresPicked = true
		slog.Debug("features chosen", "count", len(a.features))
		return nil
	}}
}

func detailStep(th menukit.Theme, a *setupAnswers) menukit.Step {
	return menukit.Step{Name: "details", Run: func(ctx context.Context, s *menukit.Session) error {
		name := menukit.NewTextInput("module name:", th)
		name.SetPlaceholder("my-service")
		name.SetValue(a.name)
		name.SetValidator(func(v string) error {
			if v == "" {
				return errors.New("a name is required")
			}
			if strings.ContainsAny(v, " \t") {
				return errors.New("no spaces in module names")
			}
			return nil
		})

		token := menukit.NewTextInput("registry token:", th)
		token.SetMask('*')
		token.SetValue(a.token)
		token.SetValidator(func(v string) error {
			if v != "" && len(v) < 8 {
				return errors.New("tokens are at least 8 characters")
			}
			return nil
		})

		replicas := menukit.NewNumberInput("replicas:", th)
		replicas.SetRange(1, 16)
		if a.replicas > 0 {
			replicas.SetValue(strconv.Itoa(a.replicas))
		} else {
			replicas.SetValue("1")
		}

		caption := menukit.NewText(th.Dim.Render("the token is optional; leave it empty to skip publishing"))

		err := s.Run(ctx, page(s, th, "name the module",
			[]menukit.Component{name, token, replicas},
			[]menukit.Component{caption},
		))
		if err != nil {
			return err
		}
		a.name = name.Value()
		a.token = token.Value()
		a.replicas = replicas.Int()
		return nil
	}}
}

func confirmStep(th menukit.Theme, a *setupAnswers) menukit.Step {
	return menukit.Step{Name: "confirm", Run: func(ctx context.Context, s *menukit.Session) error {
		features := make([]string, 0, len(a.features))
		for _, i := range a.features {
			features = append(features, featureItems[i].Label)
		}
		if len(features) == 0 {
			features = append(features, "none")
		}
		token := "not set"
		if a.token != "" {
			token = "set"
		}
		summary := menukit.NewText(
			"",
			"  template  "+th.Accent.Render(a.template),
			"  module    "+th.Accent.Render(a.name),
			"  replicas  "+strconv.Itoa(a.replicas),
			"  features  "+strings.Join(features, ", "),
			"  token     "+token,
		)

		confirm := menukit.NewConfirm("create the project?", true, th)
		if err := s.Run(ctx, page(s, th, "almost there", []menukit.Component{summary}, []menukit.Component{confirm})); err != nil {
			return err
		}
		if !confirm.Value() {
			return menukit.ErrBack
		}
		return nil
	}}
}

func createStep(th menukit.Theme, a *setupAnswers) menukit.Step {
	return menukit.Step{Name: "create", Run: func(ctx context.Context, s *menukit.Session) error {
		tasks := []menukit.Task{
			{Name: "create " + a.name + "/", Run: func(ctx context.Context) error {
				return nap(ctx, 400*time.Millisecond)
			}},
			{Name: "render " + a.template + " template", Run: func(ctx context.Context) error {
				return nap(ctx, 700*time.Millisecond)
			}},
			{Name: "write go.mod", Run: func(ctx context.Context) error {
				return nap(ctx, 300*time.Millisecond)
			}},
			{Name: "initialize git", Run: func(ctx context.Context) error {
				return nap(ctx, 500*time.Millisecond)
			}},
		}

		progress := menukit.NewProgress(tasks, th)
		return s.Run(ctx, page(s, th, "creating the project",
			[]menukit.Component{progress},
			[]menukit.Component{menukit.NewText(th.Dim.Render("ctrl+c aborts"))},
		))
	}}
}

// demoLogPath is where --debug writes, since stderr belongs to the TUI.
func demoLogPath() string {
	return filepath.Join(os.TempDir(), "menukit_demo.log")
}

// nap sleeps for d unless the context is canceled first. The demo's tasks
// are all pretend work.
func nap(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func printSummary(a *setupAnswers) {
	fmt.Printf("created %s from the %s template", a.name, a.template)
	if len(a.features) > 0 {
		fmt.Printf(" with %d extras", len(a.features))
	}
	fmt.Println()
}
