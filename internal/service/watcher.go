package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

// watcher re-persists one collection whenever it is touched. Touches that
// arrive while a write is pending collapse into a single write of the
// latest state; write failures are logged and dropped.
type watcher struct {
	name    string
	save    func(ctx context.Context) error
	notify  chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newWatcher(name string, save func(ctx context.Context) error) *watcher {
	w := &watcher{
		name:    name,
		save:    save,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *watcher) touch() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *watcher) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.notify:
			w.flush()
		case <-w.done:
			select {
			case <-w.notify:
				w.flush()
			default:
			}
			return
		}
	}
}

func (w *watcher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := w.save(ctx); err != nil {
		zap.S().Warnw("persist collection failed", "collection", w.name, "error", err)
	}
}

// stop flushes a pending change and waits for the goroutine to exit.
func (w *watcher) stop() {
	close(w.done)
	<-w.stopped
}
