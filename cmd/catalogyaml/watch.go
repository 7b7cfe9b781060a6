package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	slog "github.com/sagikazarmark/slog-shim"
)

// watchFiles calls fn with the name of a watched file each time it is
// written or created, until ctx is done.
func (c *cli) watchFiles(ctx context.Context, files []string, fn func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		name := filepath.Clean(f)
		targets[name] = true
		dirs[filepath.Dir(name)] = true
	}

	// Directories are watched so that renames and atomic saves are seen.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	c.logger.Info("watching files", slog.Int("files", len(targets)))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if name, ok := changed(event, targets); ok {
				c.logger.Debug("file changed", slog.String("file", name), slog.String("op", event.Op.String()))
				fn(name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("watch error", slog.Any("error", err))
		}
	}
}

// changed reports whether event writes or creates one of targets.
func changed(event fsnotify.Event, targets map[string]bool) (string, bool) {
	const writeOrCreateMask = fsnotify.Write | fsnotify.Create

	name := filepath.Clean(event.Name)

	return name, targets[name] && event.Op&writeOrCreateMask != 0
}
