package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/sanity-io/litter"

	"github.com/wcowley99/utx/internal/config"
	"github.com/wcowley99/utx/internal/fileutil"
	"github.com/wcowley99/utx/internal/payout"
	"github.com/wcowley99/utx/internal/progress"
	"github.com/wcowley99/utx/internal/ranker"
	"github.com/wcowley99/utx/internal/report"
	"github.com/wcowley99/utx/internal/simulator"
	"github.com/wcowley99/utx/poker"
)

// version is set by ldflags during build
var version = "dev"

const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"utx.hcl" help:"Path to HCL configuration file (missing file means defaults)"`
	Trials   *int             `short:"n" help:"Trials per starting hand (overrides config)"`
	Seed     *int64           `short:"s" help:"RNG seed (overrides config)"`
	Workers  *int             `short:"w" help:"Parallel workers, 0 for one per CPU (overrides config)"`
	Ranker   string           `help:"Hand ranker: native or paulhankin (overrides config)"`
	Class    []string         `help:"Only simulate these starting hands, e.g. --class AKs --class 72o (overrides config)"`
	Format   string           `short:"f" enum:"text,table,json" default:"text" help:"Report format: text, table or json"`
	Output   string           `short:"o" help:"Write the report to this file instead of stdout"`
	Progress string           `enum:"auto,tui,log,none" default:"auto" help:"Progress display: auto, tui, log or none"`
	LogLevel string           `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool             `help:"Disable colored output"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("utx-ev"),
		kong.Description("Estimate the expected value of every starting hand by Monte Carlo simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cli:    cli,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  quartz.NewReal(),
		tty:    isatty.IsTerminal(os.Stderr.Fd()),
	}
	code := a.run(ctx)
	stop()
	os.Exit(code)
}

type app struct {
	cli    CLI
	stdout io.Writer
	stderr io.Writer
	clock  quartz.Clock
	tty    bool
}

func (a *app) run(ctx context.Context) int {
	if a.cli.NoColor || a.cli.Output != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger := log.NewWithOptions(a.stderr, log.Options{
		ReportTimestamp: true,
	})

	cfg, err := config.Load(a.cli.Config)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return exitError
	}
	a.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return exitError
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)
	logger.Debug("Resolved configuration", "config", litter.Sdump(cfg))

	format, err := report.ParseFormat(a.cli.Format)
	if err != nil {
		logger.Error("Invalid format", "error", err)
		return exitError
	}

	rep, err := a.simulate(ctx, cfg, logger)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("Interrupted")
		return exitInterrupted
	case err != nil:
		logger.Error("Simulation failed", "error", err)
		return exitError
	}

	if err := a.write(rep, format); err != nil {
		logger.Error("Failed to write report", "error", err)
		return exitError
	}
	if a.cli.Output != "" {
		logger.Info("Wrote report", "path", a.cli.Output, "format", format, "run_id", rep.RunID)
	}
	return exitOK
}

// applyOverrides copies explicitly set flags over the file configuration.
func (a *app) applyOverrides(cfg *config.Config) {
	if a.cli.Trials != nil {
		cfg.Trials = *a.cli.Trials
	}
	if a.cli.Seed != nil {
		cfg.Seed = *a.cli.Seed
	}
	if a.cli.Workers != nil {
		cfg.Workers = *a.cli.Workers
	}
	if a.cli.Ranker != "" {
		cfg.Ranker = a.cli.Ranker
	}
	if len(a.cli.Class) > 0 {
		cfg.Classes = a.cli.Class
	}
	if a.cli.LogLevel != "" {
		cfg.LogLevel = a.cli.LogLevel
	}
}

func (a *app) simulate(ctx context.Context, cfg *config.Config, logger *log.Logger) (*report.Report, error) {
	rk, err := ranker.New(cfg.Ranker)
	if err != nil {
		return nil, err
	}
	rules, err := payout.NewRules(rk, cfg.Paytable)
	if err != nil {
		return nil, err
	}
	classes, err := cfg.StartingHands()
	if err != nil {
		return nil, err
	}

	mode := a.cli.Progress
	if mode == "auto" || mode == "" {
		mode = "log"
		if a.tty {
			mode = "tui"
		}
	}

	simConfig := simulator.Config{
		Trials:  cfg.Trials,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		Classes: classes,
		Rules:   rules,
		Logger:  logger,
		Clock:   a.clock,
	}
	var tracker *progress.Tracker
	if mode != "none" {
		total := len(classes)
		if total == 0 {
			total = poker.NumStartingHands
		}
		tracker = progress.NewTracker(total, a.clock)
		simConfig.Progress = tracker
	}
	sim, err := simulator.New(simConfig)
	if err != nil {
		return nil, err
	}

	var accs []simulator.Accumulator
	switch mode {
	case "tui":
		accs, err = a.runWithTUI(ctx, sim, tracker, logger)
	case "log":
		accs, err = a.runWithLog(ctx, sim, tracker, logger)
	default:
		accs, err = sim.Run(ctx)
	}
	if err != nil {
		return nil, err
	}

	return report.Aggregate(report.Meta{
		Seed:   cfg.Seed,
		Trials: cfg.Trials,
		Ranker: rk.Name(),
	}, accs)
}

func (a *app) runWithLog(ctx context.Context, sim *simulator.Simulator, tracker *progress.Tracker, logger *log.Logger) ([]simulator.Accumulator, error) {
	logCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	progress.NewLogReporter(tracker, logger, a.clock, progress.DefaultLogInterval).Start(logCtx)
	return sim.Run(ctx)
}

type runResult struct {
	accs []simulator.Accumulator
	err  error
}

func (a *app) runWithTUI(ctx context.Context, sim *simulator.Simulator, tracker *progress.Tracker, logger *log.Logger) ([]simulator.Accumulator, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the progress bar.
	level := logger.GetLevel()
	logger.SetLevel(max(level, log.WarnLevel))
	defer logger.SetLevel(level)

	p := tea.NewProgram(progress.NewModel(tracker), tea.WithOutput(a.stderr), tea.WithContext(ctx))

	done := make(chan runResult, 1)
	go func() {
		accs, err := sim.Run(runCtx)
		done <- runResult{accs: accs, err: err}
		p.Send(progress.DoneMsg{})
	}()

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Warn("Progress display failed", "error", err)
	}
	if m, ok := final.(progress.Model); ok && m.Interrupted() {
		cancel()
	}

	res := <-done
	return res.accs, res.err
}

func (a *app) write(rep *report.Report, format report.Format) error {
	if a.cli.Output == "" {
		return report.Render(a.stdout, rep, format)
	}
	return fileutil.WriteAtomic(a.cli.Output, 0o644, func(w io.Writer) error {
		if err := report.Render(w, rep, format); err != nil {
			return fmt.Errorf("render %s report: %w", format, err)
		}
		return nil
	})
}
