package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/swipecount/internal/app"
	"github.com/rpggio/swipecount/internal/config"
	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/rpggio/swipecount/internal/logging"
	"github.com/rpggio/swipecount/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swipecount: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal belongs to the UI; logs only go to a file when one is set.
	logger, logCloser, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logCloser.Close()

	var program atomic.Pointer[tea.Program]
	a, err := app.Open(context.Background(), cfg, logger, app.Options{
		HitTest: tui.LabelHitTest,
		OnFeedbackExpire: func(tok feedback.Token) {
			if p := program.Load(); p != nil {
				p.Send(tui.FeedbackExpiredMsg{Token: tok})
			}
		},
	})
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(tui.New(a.Engine), tea.WithAltScreen(), tea.WithMouseCellMotion())
	program.Store(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	logger.Info("ui closed")
	return nil
}
