// Command lingmoui-scroll shows a text file in the terminal and scrolls it
// with the lingmoui wheel handler: mouse wheel, scrollbar drags and, when
// enabled, keyboard navigation.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lingmo/lingmoui/internal/logging"
	"github.com/lingmo/lingmoui/internal/loop"
	"github.com/lingmo/lingmoui/internal/plugin"
	"github.com/lingmo/lingmoui/internal/script"
	"github.com/lingmo/lingmoui/internal/settings"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	settingsPath      string
	logLevel          string
	logFile           string
	scriptPath        string
	keyNavigation     bool
	filterMouseEvents bool
	step              float64
}

func newRootCmd(ver string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "lingmoui-scroll [file]",
		Short: "Scroll a text file with the lingmoui wheel handler",
		Long: "lingmoui-scroll displays a text file in the terminal and drives the lingmoui " +
			"wheel handler with real wheel, mouse and key events.",
		Version:       ver,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid log level %q: want debug, info, warn or error", opts.logLevel)
			}
			if opts.step < 0 {
				return fmt.Errorf("step must be >= 0, got %g", opts.step)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return run(cmd.Context(), file, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.settingsPath, "settings", "", "platform settings file (TOML or YAML), reloaded on change")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFile, "log-file", filepath.Join(os.TempDir(), "lingmoui-scroll.log"), "log output file")
	f.StringVar(&opts.scriptPath, "script", "", "Lua script defining on_wheel(ev)")
	f.BoolVar(&opts.keyNavigation, "key-navigation", false, "scroll with arrows, PageUp/PageDown and Home/End")
	f.BoolVar(&opts.filterMouseEvents, "filter-mouse-events", false, "make scrollbars non-interactive while scrolling by wheel")
	f.Float64Var(&opts.step, "step", 0, "vertical step size in pixels (0 = 20 x wheel scroll lines)")
	return cmd
}

func run(ctx context.Context, file string, opts options) error {
	logOut, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	log := logging.New(logging.Config{Level: opts.logLevel, Output: logOut})

	s := settings.New()
	if opts.settingsPath != "" {
		if err := settings.LoadInto(s, opts.settingsPath); err != nil {
			return err
		}
	}

	lines, err := readLines(file)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loop.New(0)
	h, err := newHost(screen, l, s, lines, hostOptions{
		keyNavigation:     opts.keyNavigation,
		filterMouseEvents: opts.filterMouseEvents,
		step:              opts.step,
	}, logging.Component(log, "host"))
	if err != nil {
		return err
	}
	defer h.close()

	if opts.settingsPath != "" {
		w, err := settings.Watch(s, opts.settingsPath,
			settings.WithPost(func(f func()) { l.Post(f) }),
			settings.WithLogger(logging.Component(log, "settings")),
		)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	if opts.scriptPath != "" {
		state := script.NewState()
		defer state.Close()
		if err := state.DoFile(opts.scriptPath); err != nil {
			return err
		}
		listener, err := script.Attach(state, h.handler, script.WithLogger(logging.Component(log, "script")))
		if err != nil {
			return err
		}
		defer listener.Close()
	}

	lang := setupPlugin(s, h, logging.Component(log, "plugin"))
	defer lang.Close()

	go pollEvents(screen, l, h)

	l.Post(h.draw)
	h.scheduleFrame()
	log.Info().Int("lines", len(lines)).Str("file", file).Msg("started")

	err = l.Run(ctx)
	if errors.Is(err, loop.ErrStopped) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// setupPlugin registers the component types and icon theme and connects
// language changes to the status line.
func setupPlugin(s *settings.Settings, h *host, log zerolog.Logger) *plugin.LanguageForwarder {
	selector := &plugin.StyleSelector{Base: "qrc:/org/kde/lingmoui"}
	if m, err := plugin.DefaultManifest(); err != nil {
		log.Warn().Err(err).Msg("load component manifest")
	} else if reg, err := plugin.RegisterTypes(plugin.URI, m, selector); err != nil {
		log.Warn().Err(err).Msg("register component types")
	} else {
		log.Debug().Int("types", reg.Len()).Str("uri", reg.URI()).Msg("registered component types")
	}

	theme := plugin.SetupIconTheme(plugin.IconTheme{}, selector, os.LookupEnv)
	log.Debug().Str("theme", theme.Name).Strs("paths", theme.SearchPaths).Msg("icon theme")

	lang := plugin.NewLanguageForwarder(s, log)
	lang.Connect(h.setLanguage)
	return lang
}

// pollEvents forwards terminal events to the loop until the user quits or
// the screen is finalized.
func pollEvents(screen tcell.Screen, l *loop.Loop, h *host) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		l.Post(func() {
			if !h.handle(ev) {
				l.Stop()
			}
		})
	}
}

func readLines(file string) ([]string, error) {
	if file == "" {
		return demoLines(200), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return lines, nil
}

func demoLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%4d  the quick brown fox jumps over the lazy dog", i+1)
	}
	return lines
}
