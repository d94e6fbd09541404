package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
)

func TestGlassStoreDuplicateKey(t *testing.T) {
	s := NewGlassStore()
	ctx := context.Background()

	_, err := s.Create(ctx, glass.Item{NaturalKey: "ef-1-0", Name: "One"})
	require.NoError(t, err)
	_, err = s.Create(ctx, glass.Item{NaturalKey: "ef-1-0", Name: "Again"})
	assert.Error(t, err)
}

func TestGlassStoreUpdateMissingIsNil(t *testing.T) {
	s := NewGlassStore()
	got, err := s.Update(context.Background(), glass.Item{NaturalKey: "nope"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInventoryStoreIDsAreUniqueUnderConcurrency(t *testing.T) {
	s := NewInventoryStore()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Append(ctx, inventory.Record{ItemKey: "k", Type: "rod", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, n)

	seen := make(map[int64]struct{}, n)
	for _, r := range records {
		_, dup := seen[r.ID]
		assert.False(t, dup, "duplicate id %d", r.ID)
		seen[r.ID] = struct{}{}
	}
}

func TestTagStoreOrderAndReplace(t *testing.T) {
	s := NewTagStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "k", "user1", tags.SourceUser))
	require.NoError(t, s.Add(ctx, "k", "blue", tags.SourceCatalog))
	require.NoError(t, s.Add(ctx, "k", "user2", tags.SourceUser))

	// каталожные раньше пользовательских
	got, err := s.ListByItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "user1", "user2"}, got)

	// замена одного источника не трогает другой
	require.NoError(t, s.Replace(ctx, "k", []string{"green"}, tags.SourceCatalog))
	got, err = s.ListByItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"green", "user1", "user2"}, got)
}
