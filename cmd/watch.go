package cmd

import (
	"context"
	"fmt"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/explore"
)

// reloadFunc is told about every reload attempt: the new catalog on
// success, or the error that kept the previous one active.
type reloadFunc func(c *explore.Catalog, err error)

// watchCatalog rebuilds the catalog whenever one of src's files changes and
// publishes it through x.Replace. It returns a stop function. A source with
// nothing to watch (builtin or SQL) returns a no-op stop.
func watchCatalog(ctx context.Context, x *explore.Explorer, src catalog.Source, notify reloadFunc) (func(), error) {
	paths := src.WatchPaths()
	if len(paths) == 0 {
		return func() {}, nil
	}

	w, err := catalog.NewWatcher(paths...)
	if err != nil {
		return nil, fmt.Errorf("catalog: watch: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, fmt.Errorf("catalog: watch: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ch, ok := <-w.Changes:
				if !ok {
					return
				}
				if ch.Removed {
					notify(nil, fmt.Errorf("%s was removed; keeping the loaded catalog", ch.File))
					continue
				}
				f, err := catalog.Load(ctx, src)
				if err != nil {
					notify(nil, err)
					continue
				}
				c := explore.NewCatalog(src.Describe(), f)
				x.Replace(c)
				notify(c, nil)
			}
		}
	}()

	return func() {
		w.Stop()
		<-done
	}, nil
}
