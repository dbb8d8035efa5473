package cache

import (
	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// NewStore builds the in-process ristretto store backing the gocache
// marshaler used for poll tally caching.
func NewStore() (*ristretto_store.RistrettoStore, error) {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return ristretto_store.NewRistretto(inner), nil
}
