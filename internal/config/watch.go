package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle time between a file change and a reload.
const DefaultDebounce = 100 * time.Millisecond

// Update is the result of reloading after a file change.
type Update struct {
	Config Config
	Err    error
}

// Watch reloads the configuration whenever the file changes and sends the
// result on the returned channel. The parent directory is watched so that
// editors replacing the file atomically are seen. The channel is closed
// when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan Update, error) {
	if l.path == "" {
		return nil, ErrNoFile
	}
	abs, err := filepath.Abs(l.path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	updates := make(chan Update, 1)
	go l.watchLoop(ctx, fsw, filepath.Base(abs), updates)
	return updates, nil
}

func (l *Loader) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, name string, updates chan<- Update) {
	defer close(updates)
	defer fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	send := func(u Update) bool {
		select {
		case updates <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(l.debounce)
				fire = timer.C
			} else {
				timer.Reset(l.debounce)
			}

		case <-fire:
			cfg, err := l.Load()
			if !send(Update{Config: cfg, Err: err}) {
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if !send(Update{Err: err}) {
				return
			}
		}
	}
}
