package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/domain"
	"backoffice/internal/repos"
	"backoffice/internal/store"
)

var now = time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newStore(t *testing.T) *repos.Store {
	t.Helper()
	return repos.NewStore(store.NewMemoryBackend(), repos.Options{Now: clock, BcryptCost: bcrypt.MinCost})
}

func addProduct(t *testing.T, s *repos.Store, name string, price int64, stock int) domain.Product {
	t.Helper()
	p, err := s.Products.Create(context.Background(), repos.ProductDraft{
		Name: name, Category: "Fiction", Price: decimal.NewFromInt(price), Stock: stock,
	})
	require.NoError(t, err)
	return p
}

// brokenBackend fails every read and write.
type brokenBackend struct{}

var errDisk = errors.New("disk unavailable")

func (brokenBackend) ReadCollection(context.Context, store.Collection) ([]json.RawMessage, error) {
	return nil, errDisk
}

func (brokenBackend) WriteCollection(context.Context, store.Collection, []json.RawMessage) error {
	return errDisk
}

func (brokenBackend) Close() error { return nil }
