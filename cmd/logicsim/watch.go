// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// watch calls onChange whenever one of the given files is written or
// recreated, until ctx is done. The parent directories are watched rather than
// the files themselves so that editors that replace files on save are
// handled.
func watch(ctx context.Context, log logrus.FieldLogger, files []string, onChange func()) error {
	n, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer n.Close()

	names := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrap(err, f)
		}
		names[abs] = true
		if d := filepath.Dir(abs); !dirs[d] {
			if err := n.Add(d); err != nil {
				return errors.Wrapf(err, "watch %s", d)
			}
			dirs[d] = true
			log.Debugf("monitoring path '%v'", d)
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug("terminating watcher")
			return nil
		case ev, ok := <-n.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !names[abs] || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debugf("watcher got event: %v", ev)
			onChange()
		case err, ok := <-n.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher got error: %v", err)
		}
	}
}
