package rewards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

func sampleLedger() []model.Transaction {
	return []model.Transaction{
		{ID: "t1", Date: friday, Merchant: "Petronas", Category: "Petrol", Amount: 120, CardID: "mikhwan", CardName: "Maybank Ikhwan Visa Infinite", RewardEarned: 6, RewardPotential: 18},
		{ID: "t2", Date: monday, Merchant: "Jaya Grocer", Category: "Grocery", Amount: 80, CardID: "uobone", CardName: "UOB One Card", RewardEarned: 8, RewardPotential: 12},
		{ID: "t3", Date: saturday, Merchant: "Shopee", Category: "Online", Amount: 80, CardID: "pbvs", CardName: "Public Bank Visa Signature", RewardEarned: 4.8, RewardPotential: 4.8},
		{ID: "t4", Date: monday, Merchant: "AIA", Category: "Insurance", Amount: 300, CardID: "uobone", CardName: "UOB One Card", RewardEarned: 0, RewardPotential: 9},
		{ID: "t5", Date: sunday, Merchant: "Village Grocer", Category: "Grocery", Amount: 45.5, CardID: "m2gold", CardName: "Maybank 2 Gold/Platinum", RewardEarned: 2.275, RewardPotential: 6.825},
	}
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, 0, stats.TransactionCount)
	assert.Zero(t, stats.TotalEarned)
	assert.Zero(t, stats.TotalPotential)
	assert.Zero(t, stats.Leakage)
	assert.Zero(t, stats.OptimizationScore)
	assert.Zero(t, stats.TotalSpend)
	assert.Empty(t, stats.ByCategory)
}

func TestSummarize(t *testing.T) {
	stats := Summarize(sampleLedger())

	assert.Equal(t, 5, stats.TransactionCount)
	assert.InDelta(t, 21.075, stats.TotalEarned, 1e-9)
	assert.InDelta(t, 50.625, stats.TotalPotential, 1e-9)
	assert.InDelta(t, 29.55, stats.Leakage, 1e-9)
	assert.InDelta(t, 21.075/50.625*100, stats.OptimizationScore, 1e-9)
	assert.InDelta(t, 625.5, stats.TotalSpend, 1e-9)

	assert.Len(t, stats.ByCategory, 3, "zero-sum Insurance is omitted")
	assert.InDelta(t, 6.0, stats.ByCategory["Petrol"], 1e-9)
	assert.InDelta(t, 10.275, stats.ByCategory["Grocery"], 1e-9)
	assert.InDelta(t, 4.8, stats.ByCategory["Online"], 1e-9)
	_, ok := stats.ByCategory["Insurance"]
	assert.False(t, ok)
}

func TestSummarize_InconsistentInputs(t *testing.T) {
	txns := []model.Transaction{
		{Category: "Dining", Amount: 100, RewardEarned: 15, RewardPotential: 10},
	}

	stats := Summarize(txns)
	assert.Zero(t, stats.Leakage, "leakage is clamped at zero")
	assert.InDelta(t, 150.0, stats.OptimizationScore, 1e-9, "score is not capped at 100")

	stats = Summarize([]model.Transaction{{Category: "Dining", Amount: 20, RewardEarned: 1}})
	assert.Zero(t, stats.OptimizationScore, "no potential means no score")
}

func TestSummarize_OrderIndependent(t *testing.T) {
	ledger := sampleLedger()
	want := Summarize(ledger)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.Transaction(nil), ledger...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Summarize(shuffled)
		assert.InDelta(t, want.TotalEarned, got.TotalEarned, 1e-9)
		assert.InDelta(t, want.TotalPotential, got.TotalPotential, 1e-9)
		require.Len(t, got.ByCategory, len(want.ByCategory))
		for cat, sum := range want.ByCategory {
			assert.InDelta(t, sum, got.ByCategory[cat], 1e-9, string(cat))
		}
	}
}

func TestView_Sorting(t *testing.T) {
	ledger := sampleLedger()

	t.Run("date-desc keeps input order for same day", func(t *testing.T) {
		got := View(ledger, Filter{}, SortDateDesc)
		assert.Equal(t, []string{"t3", "t1", "t2", "t4", "t5"}, ids(got))
	})

	t.Run("amount-desc is stable", func(t *testing.T) {
		got := View(ledger, Filter{}, SortAmountDesc)
		assert.Equal(t, []string{"t4", "t1", "t2", "t3", "t5"}, ids(got))
	})

	t.Run("unknown order falls back to date", func(t *testing.T) {
		got := View(ledger, Filter{}, SortOrder("whatever"))
		assert.Equal(t, []string{"t3", "t1", "t2", "t4", "t5"}, ids(got))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := ids(ledger)
		_ = View(ledger, Filter{}, SortAmountDesc)
		assert.Equal(t, before, ids(ledger))
	})

	t.Run("empty ledger", func(t *testing.T) {
		assert.Empty(t, View(nil, Filter{Card: "uobone"}, SortDateDesc))
	})
}

func TestView_Filter(t *testing.T) {
	ledger := sampleLedger()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"t3", "t1", "t2", "t4", "t5"}},
		{"All", Filter{Card: "All"}, []string{"t3", "t1", "t2", "t4", "t5"}},
		{"exact card id", Filter{Card: "uobone"}, []string{"t2", "t4"}},
		{"card id case-insensitive", Filter{Card: "UOBONE"}, []string{"t2", "t4"}},
		{"name substring", Filter{Card: "maybank"}, []string{"t1", "t5"}},
		{"full name", Filter{Card: "Public Bank Visa Signature"}, []string{"t3"}},
		{"no match", Filter{Card: "hsbc"}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := View(ledger, tc.filter, SortDateDesc)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{
		"":            SortDateDesc,
		"date-desc":   SortDateDesc,
		"latest":      SortDateDesc,
		"amount-desc": SortAmountDesc,
		"Amount":      SortAmountDesc,
	} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortOrder("date-asc")
	assert.Error(t, err)
}
