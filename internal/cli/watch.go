package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// watchDebounce collapses the events of one save into a single run.
var watchDebounce = 100 * time.Millisecond

// Watch calls fn once, then again whenever one of files is written, until
// ctx is done. Failures of fn are logged and do not stop the watch.
func Watch(ctx context.Context, log *slog.Logger, fn func() error, files ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cli: create watcher: %w", err)
	}
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return fmt.Errorf("cli: watch %s: %w", f, err)
		}
		watched[abs] = true
		// Editors replace files on save, so the directory is watched.
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := w.Add(dir); err != nil {
				w.Close()
				return fmt.Errorf("cli: watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	run := func() {
		if err := fn(); err != nil {
			log.Error("render failed", "err", err)
		}
	}
	run()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return w.Close()
	})
	g.Go(func() error {
		timer := time.NewTimer(watchDebounce)
		timer.Stop()
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if abs, err := filepath.Abs(ev.Name); err == nil && watched[abs] {
					log.Debug("input changed", "file", abs, "op", ev.Op.String())
					timer.Reset(watchDebounce)
					fire = timer.C
				}
			case <-fire:
				fire = nil
				run()
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "err", err)
			}
		}
	})
	return g.Wait()
}
