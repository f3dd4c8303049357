package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"chrono_tui/internal"
	"chrono_tui/internal/clock"
	"chrono_tui/internal/config"
	"chrono_tui/internal/session"
	"chrono_tui/internal/ticker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	var history internal.History
	if cfg.History.Path != "" {
		repo, err := session.NewRepository(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer repo.Close()
		history = repo
	}

	dispatcher := internal.NewDispatcher()
	loop := ticker.NewLoop(clock.Real(), dispatcher.Dispatch)
	defer loop.Close()

	m, err := internal.NewModel(internal.Options{
		Clock:        clock.Real(),
		Scheduler:    loop,
		Interval:     cfg.TickInterval,
		History:      history,
		HistoryLimit: cfg.History.Limit,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	dispatcher.SetProgram(p)

	logger.Info("starting", "tick_interval", cfg.TickInterval, "history", cfg.History.Path != "")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(args []string) (*config.Config, error) {
	var (
		configPath string
		interval   time.Duration
		historyDB  string
		noHistory  bool
		logFile    string
		logLevel   string
	)

	flagSet := pflag.NewFlagSet("chrono_tui", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config file (default: user config dir)")
	flagSet.DurationVar(&interval, "interval", 0, "display refresh interval, e.g. 10ms")
	flagSet.StringVar(&historyDB, "history", "", "SQLite file completed sessions are recorded in")
	flagSet.BoolVar(&noHistory, "no-history", false, "do not record completed sessions")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON log records to this file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
		}
		return nil, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil, pflag.ErrHelp
	}

	if configPath == "" {
		path, err := config.DefaultPath()
		if err == nil {
			configPath = path
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flagSet.Changed("interval") {
		cfg.TickInterval = interval
	}
	if flagSet.Changed("history") {
		cfg.History.Path = historyDB
	}
	if noHistory {
		cfg.History.Path = ""
	}
	if flagSet.Changed("log-file") {
		cfg.Log.Path = logFile
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: chrono_tui [flags]\n\n")
	fmt.Fprintf(os.Stderr, "A terminal stopwatch and countdown timer.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openLogger returns a JSON logger writing to cfg.Path, or a discarding
// logger when no path is set. The TUI owns the terminal, so records
// never go to stdout or stderr.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}
