package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
)

const recentLimit = 5

type DashboardService struct {
	ledger *LedgerService
}

func NewDashboardService(ledger *LedgerService) *DashboardService {
	return &DashboardService{ledger: ledger}
}

type Dashboard struct {
	Currency model.Currency
	Stats    rewards.PortfolioStats
	Recent   []model.Transaction
}

// Build loads the ledger snapshot and the display currency concurrently, then
// summarizes the snapshot.
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	g, gctx := errgroup.WithContext(ctx)

	var txns []model.Transaction
	var currency model.Currency

	g.Go(func() error {
		var err error
		txns, err = s.ledger.Snapshot(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		currency, err = s.ledger.Currency(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	recent := txns
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Dashboard{
		Currency: currency,
		Stats:    rewards.Summarize(txns),
		Recent:   recent,
	}, nil
}
