package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore satisfies Store for selector tests; only Name is ever called.
type stubStore struct {
	Store
	name string
}

func (s *stubStore) Name() string { return s.name }

func TestSelectorActiveAndSwap(t *testing.T) {
	mem := &stubStore{name: "memory"}
	pg := &stubStore{name: "postgres"}

	sel := NewSelector(mem, nil)
	require.Same(t, Store(mem), sel.Active())

	sel.Swap(pg)
	assert.Same(t, Store(pg), sel.Active())
	assert.Equal(t, "postgres", sel.Active().Name())
}

func TestSelectorSwapUnderConcurrentReads(t *testing.T) {
	sel := NewSelector(&stubStore{name: "memory"}, nil)
	hosted := &stubStore{name: "hosted"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				// Either backend is acceptable mid-swap; Active must never
				// return nil.
				assert.NotNil(t, sel.Active())
			}
		}()
	}
	sel.Swap(hosted)
	wg.Wait()

	assert.Same(t, Store(hosted), sel.Active())
}

func TestSelectorNilGuards(t *testing.T) {
	assert.Panics(t, func() { NewSelector(nil, nil) })

	sel := NewSelector(&stubStore{name: "memory"}, nil)
	assert.Panics(t, func() { sel.Swap(nil) })
}
