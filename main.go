package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"truetimer/internal"
	"truetimer/internal/config"
	"truetimer/internal/frame"
)

func main() {
	configPath := flag.String("config", "truetimer.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource main opens, so deferred cleanup has finished
// before main decides the exit code.
func run(configPath string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	clock := clockwork.NewRealClock()
	m, err := internal.NewModel(cfg, clock)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close model")
		}
	}()

	log.Info().
		Int("variable_id", cfg.VariableID).
		Str("format", cfg.Format).
		Bool("abort_on_expire", cfg.AbortOnExpire).
		Str("database", cfg.Database).
		Msg("starting truetimer")

	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go frame.NewLoop(clock).Run(ctx, func() {
		p.Send(internal.MsgTick{})
	})

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// setupLogging sends logs to the configured file; the terminal belongs to
// the UI while it runs.
func setupLogging(cfg *config.Config) (*os.File, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true})
	return f, nil
}
