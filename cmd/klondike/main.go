package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/klondike/autoplay"
	"github.com/luca-patrignani/klondike/config"
)

func main() {
	if len(os.Args) > 2 || (len(os.Args) == 2 && os.Args[1] != "auto") {
		fmt.Fprintf(os.Stderr, "usage: %s [auto]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) == 2 {
		err = runAuto(ctx, cfg, os.Stdout, logger)
	} else {
		err = runInteractive(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("klondike stopped", "error", err)
		os.Exit(1)
	}
}

// newLogger routes slog through the pterm logger at the configured level.
func newLogger(cfg config.Config) *slog.Logger {
	level := pterm.LogLevelInfo
	switch cfg.Level() {
	case slog.LevelDebug:
		level = pterm.LogLevelDebug
	case slog.LevelWarn:
		level = pterm.LogLevelWarn
	case slog.LevelError:
		level = pterm.LogLevelError
	}
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(level))
	return slog.New(handler)
}

func runInteractive(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("K", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("londike", pterm.FgDarkGray.ToStyle()),
	).Render()

	s, err := NewSession(cfg, os.Stdout, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	s.table()
	pterm.Info.Println("Enter h for help.")

	for ctx.Err() == nil {
		line, err := pterm.DefaultInteractiveTextInput.WithDefaultText(">").Show()
		if err != nil {
			return fmt.Errorf("cannot read input: %w", err)
		}
		c, err := ParseCommand(line)
		if err != nil {
			pterm.Warning.Println(err.Error())
			s.println(help)
			continue
		}
		quit, err := s.Execute(ctx, c)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

// runAuto deals one game, lets the autoplayer finish it and prints the
// final table with the outcome.
func runAuto(ctx context.Context, cfg config.Config, out io.Writer, logger *slog.Logger) error {
	s, err := NewSession(cfg, out, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	res, err := s.player.Play(ctx)
	if err != nil && !errors.Is(err, autoplay.ErrRunaway) {
		return err
	}
	s.table(getResultPanel(res, err), getLedgerPanel(s.journal))
	return s.journal.Verify()
}
