package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"coingrid/internal/config"
	"coingrid/internal/currency"
	"coingrid/internal/ui"
)

func main() {
	var (
		configPath string
		useMock    bool
		sourceURL  string
		timeout    time.Duration
		insecure   bool
		locale     string
		logLevel   string
		logFile    string
	)

	flag.StringVar(&configPath, "config", "", "path to YAML config file (optional)")
	flag.BoolVar(&useMock, "mock", false, "use built-in sample currencies instead of the API")
	flag.StringVar(&sourceURL, "url", "", "currency listing URL (overrides config + COINGRID_URL)")
	flag.DurationVar(&timeout, "timeout", 0, "request timeout, e.g. 5s")
	flag.BoolVar(&insecure, "insecure", false, "skip TLS verification")
	flag.StringVar(&locale, "locale", "", "collation locale for sorting, e.g. en, de, sv")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file (default: discard)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	// CLI overrides.
	if sourceURL != "" {
		cfg.Source.URL = sourceURL
	}
	if timeout > 0 {
		cfg.Source.Timeout = timeout
	}
	if insecure {
		cfg.Source.Insecure = true
	}
	if locale != "" {
		cfg.UI.Locale = locale
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log error:", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	var source currency.Source
	if useMock || strings.TrimSpace(cfg.Source.URL) == "" {
		source = currency.NewMockSource()
	} else {
		h := currency.NewHTTPSource(cfg.Source.URL)
		h.Timeout = cfg.Source.Timeout
		h.UserAgent = cfg.Source.UserAgent
		h.Insecure = cfg.Source.Insecure
		h.Logger = logger
		source = h
	}

	m := ui.NewModel(cfg, source, ui.WithLogger(logger))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", "err", err)
		closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the slog logger. The TUI owns the terminal, so logs go to
// a file or nowhere.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var lvl slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), func() { _ = f.Close() }, nil
}
