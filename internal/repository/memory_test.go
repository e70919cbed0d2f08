package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

func txn(id string, amount float64) *model.Transaction {
	return &model.Transaction{
		ID:       id,
		Date:     time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		Category: model.CategoryPetrol,
		Amount:   amount,
		CardID:   "mikhwan",
		CardName: "Maybank Ikhwan Visa Infinite",
	}
}

func TestMemoryStore_InsertAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Insert(ctx, txn("a", 10)))
	require.NoError(t, s.Insert(ctx, txn("b", 20)))
	require.NoError(t, s.InsertBatch(ctx, []*model.Transaction{txn("c", 30), txn("d", 40)}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "d", got[0].ID, "newest first")
	assert.Equal(t, "a", got[3].ID)

	// Snapshot is detached from the store.
	got[0].Amount = 999
	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, again[0].Amount)
}

func TestMemoryStore_Duplicates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Insert(ctx, txn("a", 10)))

	assert.Error(t, s.Insert(ctx, txn("a", 11)))

	err := s.InsertBatch(ctx, []*model.Transaction{txn("b", 1), txn("b", 2)})
	assert.Error(t, err)
	err = s.InsertBatch(ctx, []*model.Transaction{txn("c", 1), txn("a", 2)})
	assert.Error(t, err)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed batches leave nothing behind")
}

func TestMemoryStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertBatch(ctx, []*model.Transaction{txn("a", 1), txn("b", 2)}))

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Insert(ctx, txn("a", 1)), "ids are free again after reset")
}

func TestMemoryStore_Currency(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.GetCurrency(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	usd := model.Currency{Code: "USD", Symbol: "$", DisplayName: "US Dollar"}
	require.NoError(t, s.SetCurrency(ctx, usd))
	got, ok, err := s.GetCurrency(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, usd, got)

	require.NoError(t, s.ClearCurrency(ctx))
	_, ok, err = s.GetCurrency(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Insert(ctx, txn(fmt.Sprintf("t%d", i), float64(i+1))))
		}(i)
	}
	wg.Wait()

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
