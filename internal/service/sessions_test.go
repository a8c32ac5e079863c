package service

import (
	"context"
	"sync"
	"testing"

	"wordlearner/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "wordlearner-data:42", SlotKey("wordlearner-data", 42))
}

func TestSessions_Get(t *testing.T) {
	ctx := context.Background()
	slot := testutil.NewMemorySlot()
	sessions := NewSessions(newTestStore(slot), "deck")

	first := sessions.Get(ctx, 1)
	again := sessions.Get(ctx, 1)
	other := sessions.Get(ctx, 2)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, "deck:1", first.Key())
	assert.Equal(t, "deck:2", other.Key())
}

func TestSessions_DecksAreIsolated(t *testing.T) {
	ctx := context.Background()
	slot := testutil.NewMemorySlot()
	sessions := NewSessions(newTestStore(slot), "deck")

	_, err := sessions.Get(ctx, 1).Import(ctx, "hola,hello")
	require.NoError(t, err)

	assert.Len(t, sessions.Get(ctx, 1).State().Words, 1)
	assert.Empty(t, sessions.Get(ctx, 2).State().Words)

	reloaded := NewSessions(newTestStore(slot), "deck")
	assert.Len(t, reloaded.Get(ctx, 1).State().Words, 1)
}

func TestSessions_ConcurrentGet(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(newTestStore(testutil.NewMemorySlot()), "deck")

	var wg sync.WaitGroup
	got := make([]*Session, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = sessions.Get(ctx, 7)
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}
