package selection

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/labelpick/internal/debounce"
)

// Saver writes a ticket's label ids to the backend
type Saver interface {
	SaveTicketLabels(ctx context.Context, ticket int, labels []int) (int, error)
}

// Persister writes the selection once the user pauses editing.
// Writes are serialized, and a write that has been overtaken by a newer
// change is skipped, so a stale selection never lands after a newer one.
type Persister struct {
	saver     Saver
	ticket    int
	debouncer *debounce.Debouncer

	writeMu sync.Mutex
	gen     atomic.Uint64
	writes  atomic.Int64

	unsubscribe func()
	closeOnce   sync.Once
}

// NewPersister subscribes to store and debounces writes by delay.
func NewPersister(store *Store, saver Saver, ticket int, delay time.Duration) *Persister {
	p := &Persister{
		saver:     saver,
		ticket:    ticket,
		debouncer: debounce.New(delay),
	}
	p.unsubscribe = store.Subscribe(p.onChange)
	return p
}

func (p *Persister) onChange(c Change) {
	if !c.Ready {
		slog.Debug("selection changed before catalog loaded, not persisting", "ticket", p.ticket)
		return
	}
	ids := c.Selection.IDs()
	gen := p.gen.Add(1)
	p.debouncer.Trigger(func() {
		p.write(gen, ids)
	})
}

func (p *Persister) write(gen uint64, ids []int) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if gen != p.gen.Load() {
		slog.Debug("skipping stale label write", "ticket", p.ticket, "generation", gen)
		return
	}

	p.writes.Add(1)
	status, err := p.saver.SaveTicketLabels(context.Background(), p.ticket, ids)
	if err != nil {
		slog.Error("failed to save ticket labels", "ticket", p.ticket, "labels", ids, "error", err)
		return
	}
	slog.Info("saved ticket labels", "ticket", p.ticket, "labels", ids, "status", status)
}

// Pending reports whether a write is waiting for the quiet period
func (p *Persister) Pending() bool {
	return p.debouncer.Pending()
}

// Writes returns how many writes have been attempted
func (p *Persister) Writes() int64 {
	return p.writes.Load()
}

// Close cancels any pending write and detaches from the store.
// A write already in flight is not interrupted.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.unsubscribe()
		p.debouncer.Stop()
	})
}
