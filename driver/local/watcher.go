package local

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gobeaver/pathkit"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// Watch implements pathkit.Watcher using fsnotify. A directory watches its
// immediate children; a file watches itself. filter is a glob matched
// against the base name of the changed entry ("" or "*" match everything).
// The token fires once; watching stops when it fires or ctx is done.
func (p *Path) Watch(ctx context.Context, filter string) (pathkit.ChangeToken, error) {
	dir := p.path
	if !p.IsDir() {
		dir = filepath.Dir(p.path)
		if filter == "" {
			filter = filepath.Base(p.path)
		}
	}
	if filter == "" {
		filter = "*"
	}

	matcher, err := glob.Compile(filter)
	if err != nil {
		return nil, pathkit.NewPathError("watch", p.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, pathkit.NewPathError("watch", p.path, err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, pathkit.NewPathError("watch", p.path, err)
	}

	token := pathkit.NewCallbackChangeToken()
	log := p.env.Log()

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				if matcher.Match(filepath.Base(event.Name)) {
					log.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
					token.SignalChange()
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug("watch error", zap.String("path", dir), zap.Error(err))
			}
		}
	}()

	return token, nil
}
