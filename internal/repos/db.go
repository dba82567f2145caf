package repos

import (
	"context"
	"time"

	"backoffice/internal/store"
)

// Store is the single owner of the three typed repositories over one backend.
type Store struct {
	Backend  store.Backend
	Products *ProductRepo
	Orders   *OrderRepo
	Users    *UserRepo
}

type Options struct {
	Now        func() time.Time
	BcryptCost int
	// Seed, when set, fills empty collections with sample data at open.
	Seed *SeedOptions
}

func NewStore(b store.Backend, opts Options) *Store {
	return &Store{
		Backend:  b,
		Products: NewProductRepo(b, opts.Now),
		Orders:   NewOrderRepo(b, opts.Now),
		Users:    NewUserRepo(b, opts.Now, opts.BcryptCost),
	}
}

// Open wires the repositories and seeds empty collections when asked to.
func Open(ctx context.Context, b store.Backend, opts Options) (*Store, error) {
	s := NewStore(b, opts)
	if opts.Seed != nil {
		if err := Seed(ctx, s, *opts.Seed); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Close() error { return s.Backend.Close() }
