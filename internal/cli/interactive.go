package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/display"
)

// InteractiveSession runs the dashboard as a menu loop
type InteractiveSession struct {
	app *app
}

// NewInteractiveSession creates a new interactive session
func NewInteractiveSession(a *app) *InteractiveSession {
	return &InteractiveSession{app: a}
}

// Start loads the table once and then serves menu actions until the user
// quits. Failed actions are alerted and the loop carries on.
func (s *InteractiveSession) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := s.app
	DisplayWelcomeBanner(a.out, a.dark())

	if err := a.manager.Watch(ctx, func(cfg config.Config) {
		a.dashboard.ApplySettings(&cfg)
		a.logger.WithFields(logrus.Fields{
			"theme":     cfg.Theme,
			"sort_mode": cfg.SortMode,
		}).Debug("Configuration reloaded")
	}); err != nil {
		a.logger.WithError(err).Warn("Config file watch unavailable")
	}

	_ = a.dashboard.Load(ctx)
	return s.runMainLoop(ctx)
}

func (s *InteractiveSession) runMainLoop(ctx context.Context) error {
	a := s.app
	for {
		if ctx.Err() != nil {
			return nil
		}
		ClearScreen(a.out)
		a.render()

		action, err := PromptForAction()
		if errors.Is(err, terminal.InterruptErr) {
			return s.quit()
		}
		if err != nil {
			return fmt.Errorf("read menu choice: %w", err)
		}

		if err := s.handle(ctx, action); err != nil {
			if errors.Is(err, terminal.InterruptErr) || errors.Is(err, errQuit) {
				return s.quit()
			}
			a.logger.WithError(err).Debug("Action failed")
		}
	}
}

var errQuit = errors.New("quit")

func (s *InteractiveSession) handle(ctx context.Context, action MenuAction) error {
	a := s.app
	switch action {
	case ActionRefresh:
		return a.dashboard.Refresh(ctx)

	case ActionReload:
		return a.dashboard.Load(ctx)

	case ActionSearch:
		query, err := PromptForSearch(a.view.Snapshot().Query)
		if err != nil {
			return err
		}
		a.dashboard.Search(query)

	case ActionSort:
		col, err := PromptForColumn(a.view.Snapshot())
		if err != nil {
			return err
		}
		if _, err := a.dashboard.Sort(col); err != nil {
			return err
		}

	case ActionToggleTheme:
		a.dashboard.ToggleTheme()

	case ActionExportCSV:
		return s.export("csv")

	case ActionExportPDF:
		return s.export("pdf")

	case ActionQuit:
		return errQuit
	}
	return nil
}

func (s *InteractiveSession) export(format string) error {
	if err := exportTable(s.app, format); err != nil {
		display.NewTerminalAlerter(s.app.out, s.app.dark, true).Alert(err.Error())
		return err
	}
	_, err := PromptForConfirmation("Back to the table?", true)
	return err
}

func (s *InteractiveSession) quit() error {
	fmt.Fprintln(s.app.out, "👋 Thank you for using IndexStats!")
	return nil
}
