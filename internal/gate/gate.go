// Package gate bounds the number of requests handled at the same time.
package gate

import (
	"context"
	"errors"

	"github.com/jackc/puddle/v2"
)

var ErrInvalidCapacity = errors.New("gate capacity must be positive")

type token struct{}

// Gate admits at most a fixed number of holders at once. Holders are
// represented as resources of a puddle pool.
type Gate struct {
	pool *puddle.Pool[token]
}

// New creates a gate admitting up to capacity concurrent holders.
func New(capacity int) (*Gate, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	pool, err := puddle.NewPool(&puddle.Config[token]{
		Constructor: func(context.Context) (token, error) {
			return token{}, nil
		},
		Destructor: func(token) {},
		MaxSize:    int32(capacity),
	})
	if err != nil {
		return nil, err
	}

	return &Gate{pool: pool}, nil
}

// Acquire blocks until a slot is free or ctx is done. The returned
// function releases the slot.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	res, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return res.Release, nil
}

// InUse returns the number of currently held slots.
func (g *Gate) InUse() int {
	return int(g.pool.Stat().AcquiredResources())
}

// Close releases the underlying pool. Close blocks until all slots have
// been released.
func (g *Gate) Close() {
	g.pool.Close()
}
