package workers

import (
	"time"

	"github.com/lib/pq"

	"panduankota/backend/internal/logging"
	"panduankota/backend/internal/metrics"
)

const postsChannel = "posts_changed"

// boardInvalidator is the slice of the discussion service the listener needs.
type boardInvalidator interface {
	Invalidate()
}

// FeedListener subscribes to Postgres NOTIFY on the posts channel and drops
// the cached board whenever another writer touches it. This keeps multiple
// server instances coherent without polling.
type FeedListener struct {
	listener *pq.Listener
	board    boardInvalidator
	metrics  *metrics.MetricsRegistry
}

func NewFeedListener(dsn string, board boardInvalidator, metricsReg *metrics.MetricsRegistry) *FeedListener {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logging.Warn("feed listener event", "event", int(event), "error", err.Error())
		}
	})
	return &FeedListener{
		listener: listener,
		board:    board,
		metrics:  metricsReg,
	}
}

// Start blocks on the notification loop. Run it in its own goroutine; it
// returns after Close.
func (f *FeedListener) Start() {
	if err := f.listener.Listen(postsChannel); err != nil {
		logging.Error("feed listener subscribe failed", "channel", postsChannel, "error", err.Error())
		return
	}
	logging.Info("feed listener started", "channel", postsChannel)

	f.run(f.listener.Notify)
}

func (f *FeedListener) run(notify <-chan *pq.Notification) {
	for {
		select {
		case notification, ok := <-notify:
			if !ok {
				// Close closes the notification channel.
				logging.Info("feed listener stopped", "channel", postsChannel)
				return
			}
			// A nil notification signals a reconnect; invalidate anyway
			// since changes may have been missed while disconnected.
			f.board.Invalidate()
			if f.metrics != nil {
				f.metrics.FeedInvalidationTotal.Inc()
			}
			if notification != nil {
				logging.Debug("feed invalidated", "channel", notification.Channel)
			}
		case <-time.After(90 * time.Second):
			if err := f.listener.Ping(); err != nil {
				logging.Warn("feed listener ping failed", "error", err.Error())
			}
		}
	}
}

func (f *FeedListener) Close() error {
	return f.listener.Close()
}
