package countercell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/logging"
)

var counterKey = []byte("mxe/confession/counter")

// PebbleStore keeps the counter under a single key in a Pebble database.
// Pebble locks its directory, so one PebbleStore is the only writer.
type PebbleStore struct {
	mu sync.Mutex
	db *pebble.DB
}

// OpenPebble opens or creates a Pebble database in dir. Pebble's own log
// output goes to logger; nil discards it.
func OpenPebble(dir string, logger logging.Logger) (*PebbleStore, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	db, err := pebble.Open(dir, &pebble.Options{
		Logger: &pebbleLogger{logger: logger},
	})
	if err != nil {
		return nil, fmt.Errorf("pebble open %s: %w", dir, err)
	}
	return &PebbleStore{db: db}, nil
}

func (p *PebbleStore) Load(context.Context) ([]byte, bool, error) {
	return p.get()
}

func (p *PebbleStore) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.set(data)
}

func (p *PebbleStore) Update(_ context.Context, fn UpdateFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	old, ok, err := p.get()
	if err != nil {
		return err
	}
	next, err := fn(old, ok)
	if err != nil {
		return err
	}
	return p.set(next)
}

func (p *PebbleStore) get() ([]byte, bool, error) {
	data, closer, err := p.db.Get(counterKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (p *PebbleStore) set(data []byte) error {
	if err := p.db.Set(counterKey, data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// pebbleLogger adapts logging.Logger to the pebble.Logger interface.
type pebbleLogger struct {
	logger logging.Logger
}

func (l *pebbleLogger) Infof(format string, args ...any) {
	l.logger.Debug(context.Background(), fmt.Sprintf(format, args...), "component", "pebble")
}

func (l *pebbleLogger) Errorf(format string, args ...any) {
	l.logger.Error(context.Background(), fmt.Sprintf(format, args...), "component", "pebble")
}

func (l *pebbleLogger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Error(context.Background(), msg, "component", "pebble")
	panic(msg)
}
