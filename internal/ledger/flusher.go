package ledger

import (
	"context"
	"log"
	"sync"
	"time"
)

// flusher debounces draft persistence so rapid typing does not thrash the
// store: each mutation re-arms a per-record timer, and only when the
// burst pauses is the record id handed to the worker goroutine.
type flusher struct {
	debounce time.Duration
	jobs     chan int64
	persist  func(recordID int64)

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func newFlusher(debounce time.Duration, persist func(recordID int64)) *flusher {
	return &flusher{
		debounce: debounce,
		jobs:     make(chan int64, 64),
		persist:  persist,
		timers:   make(map[int64]*time.Timer),
	}
}

// Start launches the flush worker.
func (f *flusher) Start(ctx context.Context) {
	go f.worker(ctx)
}

func (f *flusher) worker(ctx context.Context) {
	for {
		select {
		case recordID := <-f.jobs:
			f.persist(recordID)
		case <-ctx.Done():
			log.Println("Draft flusher shutting down")
			return
		}
	}
}

// Schedule arms (or re-arms) the debounce timer for one record.
func (f *flusher) Schedule(recordID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.timers[recordID]; ok {
		t.Reset(f.debounce)
		return
	}
	f.timers[recordID] = time.AfterFunc(f.debounce, func() {
		f.mu.Lock()
		delete(f.timers, recordID)
		f.mu.Unlock()
		f.jobs <- recordID
	})
}

// Flush persists one record immediately, cancelling any pending timer.
// Used on field blur and before submission.
func (f *flusher) Flush(recordID int64) {
	f.cancel(recordID)
	f.persist(recordID)
}

func (f *flusher) cancel(recordID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.timers[recordID]; ok {
		t.Stop()
		delete(f.timers, recordID)
	}
}
