package countercell

import (
	"context"
	"sync"
)

// UpdateFunc computes the new stored bytes from the current ones. ok is false
// if nothing has been saved yet. Returning an error aborts the update and
// leaves the stored bytes unchanged.
type UpdateFunc func(old []byte, ok bool) ([]byte, error)

// Store persists the encoded counter ciphertext.
type Store interface {
	// Load returns the stored bytes. ok is false if nothing has been saved.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error
	// Update runs fn as an atomic read-modify-write. No other Update or Save
	// on the same underlying storage, from this process or another, may
	// interleave between the read fn sees and the write of its result.
	Update(ctx context.Context, fn UpdateFunc) error
	Close() error
}

// MemoryStore keeps the counter in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	return clone(m.data), true, nil
}

func (m *MemoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = clone(data)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var old []byte
	if m.data != nil {
		old = clone(m.data)
	}
	next, err := fn(old, m.data != nil)
	if err != nil {
		return err
	}
	m.data = clone(next)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
