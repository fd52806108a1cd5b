package inmemorycontent

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_FirstWriteWins(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := report.NewFrame("a.go", 1, "first")
	second := report.NewFrame("a.go", 1, "second")
	id := recordid.Identify(first)

	stored, existed := s.Register(ctx, id, first)
	assert.False(t, existed)
	assert.Equal(t, first, stored)

	stored, existed = s.Register(ctx, id, second)
	assert.True(t, existed)
	assert.Equal(t, first, stored, "later records are discarded")

	got, ok := s.Lookup(ctx, id)
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, s.Len(ctx))
}

func TestLookup_Missing(t *testing.T) {
	s := New()
	got, ok := s.Lookup(context.Background(), "nope#1")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStores_AreIndependent(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()

	a.Register(ctx, "a.go#1", report.NewFrame("a.go", 1, ""))
	_, ok := b.Lookup(ctx, "a.go#1")
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len(ctx))
}

func TestRegister_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()
	numGoroutines := 50
	var wg sync.WaitGroup

	wg.Add(numGoroutines)
	for i := range numGoroutines {
		go func(i int) {
			defer wg.Done()
			f := report.NewFrame(fmt.Sprintf("f%d.go", i%10), 1, "")
			s.Register(ctx, recordid.Identify(f), f)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len(ctx))
}
