package main

import (
	"strings"

	"github.com/dshills/wobl/internal/config"
	"github.com/dshills/wobl/internal/logging"
	"github.com/dshills/wobl/internal/renderer"
)

// session is a renderer that applies config reloads between frames.
type session struct {
	*renderer.Renderer

	cfg     config.Config
	updates <-chan config.Update
	logger  *logging.Logger

	// override re-applies command line flags to reloaded configs.
	override func(*config.Config) error
}

func newSession(r *renderer.Renderer, cfg config.Config, logger *logging.Logger) *session {
	return &session{
		Renderer: r,
		cfg:      cfg,
		logger:   logger.WithComponent("session"),
	}
}

// Present drains pending reloads, then presents the frame.
func (s *session) Present() error {
	s.drain()
	return s.Renderer.Present()
}

func (s *session) drain() {
	for {
		select {
		case u, ok := <-s.updates:
			if !ok {
				s.updates = nil
				return
			}
			s.apply(u)
		default:
			return
		}
	}
}

func (s *session) apply(u config.Update) {
	if u.Err != nil {
		s.logger.Warn("config reload failed: %v", u.Err)
		return
	}
	next := u.Config
	if s.override != nil {
		if err := s.override(&next); err != nil {
			s.logger.Warn("config reload failed: %v", err)
			return
		}
	}

	if keys := s.cfg.Restart(next); len(keys) > 0 {
		s.logger.Warn("ignoring changes that need a restart: %s", strings.Join(keys, ", "))
	}
	if next.FPS != s.cfg.FPS {
		s.logger.Info("fps changed from %d to %d", s.cfg.FPS, next.FPS)
		s.SetFPS(next.FPS)
		s.cfg.FPS = next.FPS
	}
}
