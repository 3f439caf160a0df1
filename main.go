package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"hexedit/internal/config"
	"hexedit/internal/editor"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	writeConfig := flag.Bool("write-config", false, "Write the default config to "+config.ConfigPath()+" and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.WriteDefault(config.ConfigPath()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", config.ConfigPath())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config %s: %v\n", config.ConfigPath(), err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Editing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var filename string
	if flag.NArg() > 0 {
		filename = flag.Arg(0)
	}

	model, err := editor.NewModel(cfg, filename, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if err := model.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file. Without one, logs are dropped
// so they never land on the alternate screen.
func newLogger(ed config.Editing) (*log.Logger, func(), error) {
	if ed.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(ed.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           ed.Level(),
		ReportTimestamp: true,
		Prefix:          "hexedit",
	})
	return logger, func() { f.Close() }, nil
}
