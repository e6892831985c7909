package workers

import (
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
)

type countingBoard struct {
	mu    sync.Mutex
	count int
}

func (b *countingBoard) Invalidate() {
	b.mu.Lock()
	b.count++
	b.mu.Unlock()
}

func (b *countingBoard) invalidations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func TestRunInvalidatesOnNotifyAndStopsOnClose(t *testing.T) {
	board := &countingBoard{}
	listener := &FeedListener{board: board}

	notify := make(chan *pq.Notification)
	done := make(chan struct{})
	go func() {
		listener.run(notify)
		close(done)
	}()

	notify <- &pq.Notification{Channel: postsChannel}
	notify <- nil // reconnect: changes may have been missed

	close(notify)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected run to return after the notify channel closed")
	}

	if got := board.invalidations(); got != 2 {
		t.Errorf("expected 2 invalidations, got %d", got)
	}
}
