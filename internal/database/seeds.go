package database

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

// LedgerSeeder is the part of the ledger service the demo seed needs.
type LedgerSeeder interface {
	Snapshot(ctx context.Context) ([]model.Transaction, error)
	CreateBatch(ctx context.Context, req *dto.BatchTransactionRequest) ([]*model.Transaction, []dto.ValidationError, error)
}

type merchantProfile struct {
	Name      string
	Category  model.Category
	AmountMin float64
	AmountMax float64
	Weight    int // relative visit frequency
}

var merchants = []merchantProfile{
	{Name: "Petronas", Category: model.CategoryPetrol, AmountMin: 40, AmountMax: 150, Weight: 8},
	{Name: "Shell", Category: model.CategoryPetrol, AmountMin: 40, AmountMax: 150, Weight: 5},
	{Name: "Jaya Grocer", Category: model.CategoryGrocery, AmountMin: 30, AmountMax: 280, Weight: 7},
	{Name: "Lotus's", Category: model.CategoryGrocery, AmountMin: 20, AmountMax: 200, Weight: 6},
	{Name: "Village Grocer", Category: model.CategoryGrocery, AmountMin: 25, AmountMax: 220, Weight: 4},
	{Name: "GrabFood", Category: model.CategoryDining, AmountMin: 15, AmountMax: 80, Weight: 9},
	{Name: "Nando's", Category: model.CategoryDining, AmountMin: 40, AmountMax: 160, Weight: 3},
	{Name: "Starbucks", Category: model.CategoryDining, AmountMin: 12, AmountMax: 45, Weight: 6},
	{Name: "Shopee", Category: model.CategoryOnline, AmountMin: 10, AmountMax: 300, Weight: 7},
	{Name: "Lazada", Category: model.CategoryOnline, AmountMin: 10, AmountMax: 300, Weight: 4},
	{Name: "AirAsia", Category: model.CategoryTravel, AmountMin: 180, AmountMax: 1200, Weight: 1},
	{Name: "Agoda", Category: model.CategoryTravel, AmountMin: 150, AmountMax: 900, Weight: 1},
	{Name: "TNB", Category: model.CategoryUtilities, AmountMin: 80, AmountMax: 350, Weight: 2},
	{Name: "Unifi", Category: model.CategoryUtilities, AmountMin: 99, AmountMax: 189, Weight: 2},
	{Name: "AIA", Category: model.CategoryInsurance, AmountMin: 200, AmountMax: 600, Weight: 1},
	{Name: "Watsons", Category: model.CategoryOther, AmountMin: 15, AmountMax: 120, Weight: 3},
	{Name: "Uniqlo", Category: model.CategoryOther, AmountMin: 50, AmountMax: 400, Weight: 2},
}

// DemoTransactions generates n purchases over the 90 days ending at end, with
// 60% of them in the last 30 days. The card used is picked at random, which is
// what makes the demo ledger show leakage. Output depends only on the arguments.
func DemoTransactions(cards []model.Card, n int, end time.Time) []dto.CreateTransactionRequest {
	if len(cards) == 0 || n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(42))

	totalWeight := 0
	for _, m := range merchants {
		totalWeight += m.Weight
	}
	pick := func() merchantProfile {
		r := rng.Intn(totalWeight)
		for _, m := range merchants {
			if r < m.Weight {
				return m
			}
			r -= m.Weight
		}
		return merchants[len(merchants)-1]
	}

	last := model.CalendarDate(end)
	out := make([]dto.CreateTransactionRequest, n)
	for i := range out {
		var daysAgo int
		if rng.Float64() < 0.6 {
			daysAgo = rng.Intn(30)
		} else {
			daysAgo = 30 + rng.Intn(60)
		}

		m := pick()
		amount := m.AmountMin + rng.Float64()*(m.AmountMax-m.AmountMin)
		amount = math.Round(amount*100) / 100

		out[i] = dto.CreateTransactionRequest{
			Merchant: m.Name,
			Amount:   amount,
			Date:     last.AddDate(0, 0, -daysAgo).Format(model.DateLayout),
			Category: string(m.Category),
			CardID:   cards[rng.Intn(len(cards))].ID,
			Notes:    "demo",
		}
	}
	return out
}

// SeedDemoLedger fills an empty ledger with demo purchases. A ledger that already
// holds transactions is left alone.
func SeedDemoLedger(ctx context.Context, ledger LedgerSeeder, cards []model.Card, n int, end time.Time) error {
	existing, err := ledger.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("ledger already has data, skipping demo seed")
		return nil
	}

	reqs := DemoTransactions(cards, n, end)
	const chunk = 500
	inserted := 0
	for start := 0; start < len(reqs); start += chunk {
		batch := reqs[start:min(start+chunk, len(reqs))]
		txns, validationErrors, err := ledger.CreateBatch(ctx, &dto.BatchTransactionRequest{Transactions: batch})
		if err != nil {
			return fmt.Errorf("insert demo transactions: %w", err)
		}
		if len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Errorf("demo transaction %d invalid: %s: %s", start+ve.Index, ve.Field, ve.Message)
		}
		inserted += len(txns)
	}

	log.Info().Int("count", inserted).Msg("inserted demo transactions")
	return nil
}
