package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-notes/internal/config"
	"github.com/goliatone/go-notes/internal/logging"
	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/pkg/di"
	"github.com/goliatone/go-notes/presenter"
)

// session is everything a command needs for one run.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	container *di.Container
	view      *terminalView
	presenter *presenter.Presenter
}

func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logger.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Logger.Development)
	if err != nil {
		return nil, err
	}

	container, err := di.NewContainer(cmd.Context(), *cfg, di.WithLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	view := newTerminalView(cmd.OutOrStdout(), cfg.CLI.DateLayout)
	return &session{
		cfg:       cfg,
		logger:    logger,
		container: container,
		view:      view,
		presenter: container.NewPresenter(view),
	}, nil
}

func (s *session) Close() {
	s.presenter.Close()
	if err := s.container.Close(); err != nil {
		s.logger.Warn("closing store", zap.Error(err))
	}
	_ = s.logger.Sync()
}

// context bounds a direct repository call by the configured timeout.
func (s *session) context(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.CLI.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.cfg.CLI.Timeout)
}

// load fills the presenter list and returns a snapshot of it.
func (s *session) load() ([]note.Note, error) {
	s.view.setQuiet(true)
	s.presenter.Load()
	s.presenter.Wait()
	s.view.setQuiet(false)
	return s.presenter.Notes(), s.view.Err()
}

// resolve finds the listed note whose id is arg or starts with arg.
func resolve(notes []note.Note, arg string) (note.Note, error) {
	if id, err := uuid.Parse(arg); err == nil {
		for _, n := range notes {
			if n.ID == id {
				return n, nil
			}
		}
		return note.Note{}, fmt.Errorf("no note with id %s", arg)
	}

	var found []note.Note
	for _, n := range notes {
		if len(arg) > 0 && len(arg) <= 36 && n.ID.String()[:len(arg)] == arg {
			found = append(found, n)
		}
	}

	switch len(found) {
	case 0:
		return note.Note{}, fmt.Errorf("no note with id %s", arg)
	case 1:
		return found[0], nil
	default:
		return note.Note{}, fmt.Errorf("id prefix %s matches %d notes", arg, len(found))
	}
}
