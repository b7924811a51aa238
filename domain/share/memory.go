package share

import (
	"context"
	"sync"
	"time"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
)

// MemoryBackend is the volatile in-process tier. It starts empty on process
// start and has no teardown; entries age out via the TTL check on read plus
// a full sweep on every insert. Unlike the durable tier, nothing expires
// records for it natively, hence the sweep.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]Record
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryBackend creates an empty memory backend with the standard TTL
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		records: make(map[string]Record),
		ttl:     TTL,
		now:     time.Now,
	}
}

// Put stores a record, sweeping expired entries first
func (m *MemoryBackend) Put(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	swept := m.sweepLocked()
	if swept > 0 {
		logger.CtxDebug(ctx, constant.MsgMemorySweep, logger.LoggerInfo{
			ContextFunction: constant.CtxSharePut,
			Data: map[string]interface{}{
				constant.DataSwept: swept,
			},
		})
	}

	m.records[rec.ID] = rec
	return nil
}

// Get returns a stored record; an expired record is purged eagerly and
// reported as not found
func (m *MemoryBackend) Get(ctx context.Context, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if m.now().Sub(rec.CreatedAt) > m.ttl {
		delete(m.records, id)
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes a record if present
func (m *MemoryBackend) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// Len reports the number of physically held records, expired or not
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// sweepLocked removes every expired record; callers must hold the lock
func (m *MemoryBackend) sweepLocked() int {
	now := m.now()
	swept := 0
	for id, rec := range m.records {
		if now.Sub(rec.CreatedAt) > m.ttl {
			delete(m.records, id)
			swept++
		}
	}
	return swept
}
