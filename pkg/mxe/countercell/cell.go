package countercell

import (
	"context"
	"errors"
	"fmt"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/confession"
	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
)

// Cell owns the confession counter for one caller. Every submission is a
// single Store.Update, so cells sharing a store or a database file hand out
// distinct, consecutive identifiers.
type Cell struct {
	store  Store
	engine *confession.Engine
}

// New returns a cell over store. The counter is initialized lazily on the
// first submission if the store is empty.
func New(store Store, engine *confession.Engine) (*Cell, error) {
	if store == nil {
		return nil, errors.New("countercell: nil store")
	}
	if engine == nil {
		return nil, errors.New("countercell: nil engine")
	}
	return &Cell{store: store, engine: engine}, nil
}

// Open builds the store selected by cfg.
func Open(cfg mxe.CounterConfig) (Store, error) {
	switch cfg.Driver {
	case mxe.CounterDriverMemory:
		return NewMemoryStore(), nil
	case mxe.CounterDriverSQLite:
		return OpenSQLite(cfg.Path)
	case mxe.CounterDriverPebble:
		return OpenPebble(cfg.Path, nil)
	default:
		return nil, fmt.Errorf("countercell: unknown driver %q", cfg.Driver)
	}
}

// Submit runs one counter-policy submission inside a single Store.Update:
// read the counter (initializing it if absent), increment, write back. The
// receipt is bound to key.
func (c *Cell) Submit(ctx context.Context, in gateway.Ciphertext[confession.Submission], key gateway.KeyRef) (gateway.Ciphertext[confession.Receipt], error) {
	var receipt gateway.Ciphertext[confession.Receipt]

	err := c.store.Update(ctx, func(old []byte, ok bool) ([]byte, error) {
		counter, err := c.decode(ctx, old, ok)
		if err != nil {
			return nil, err
		}
		res, err := c.engine.SubmitCounted(ctx, in, key, counter)
		if err != nil {
			return nil, err
		}
		receipt = res.Receipt
		return res.Counter.Bytes()
	})
	if err != nil {
		return gateway.Ciphertext[confession.Receipt]{}, err
	}
	return receipt, nil
}

// Current returns the persisted counter ciphertext, initializing it if the
// store is empty.
func (c *Cell) Current(ctx context.Context) (gateway.Ciphertext[gateway.U64], error) {
	data, ok, err := c.store.Load(ctx)
	if err != nil {
		return gateway.Ciphertext[gateway.U64]{}, err
	}
	if ok {
		return gateway.ParseCiphertext[gateway.U64](data)
	}

	var counter gateway.Ciphertext[gateway.U64]
	err = c.store.Update(ctx, func(old []byte, ok bool) ([]byte, error) {
		cur, err := c.decode(ctx, old, ok)
		if err != nil {
			return nil, err
		}
		counter = cur
		return cur.Bytes()
	})
	if err != nil {
		return gateway.Ciphertext[gateway.U64]{}, err
	}
	return counter, nil
}

// decode parses a stored counter, or starts a fresh one at zero.
func (c *Cell) decode(ctx context.Context, data []byte, ok bool) (gateway.Ciphertext[gateway.U64], error) {
	if ok {
		return gateway.ParseCiphertext[gateway.U64](data)
	}
	return c.engine.InitCounter(ctx)
}
