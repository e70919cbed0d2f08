package rewards

import (
	"fmt"
	"slices"
	"strings"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

type PortfolioStats struct {
	TransactionCount  int
	TotalEarned       float64
	TotalPotential    float64
	Leakage           float64
	OptimizationScore float64
	TotalSpend        float64
	ByCategory        map[model.Category]float64
}

// Summarize folds a ledger snapshot into portfolio statistics. Leakage never goes
// below zero; the score is not capped at 100 because potential is caller supplied.
func Summarize(txns []model.Transaction) PortfolioStats {
	stats := PortfolioStats{
		TransactionCount: len(txns),
		ByCategory:       make(map[model.Category]float64),
	}

	for _, t := range txns {
		stats.TotalEarned += t.RewardEarned
		stats.TotalPotential += t.RewardPotential
		stats.TotalSpend += t.Amount
		stats.ByCategory[t.Category] += t.RewardEarned
	}

	for cat, sum := range stats.ByCategory {
		if sum == 0 {
			delete(stats.ByCategory, cat)
		}
	}

	if leak := stats.TotalPotential - stats.TotalEarned; leak > 0 {
		stats.Leakage = leak
	}
	if stats.TotalPotential > 0 {
		stats.OptimizationScore = stats.TotalEarned / stats.TotalPotential * 100
	}

	return stats
}

type SortOrder string

const (
	SortDateDesc   SortOrder = "date-desc"
	SortAmountDesc SortOrder = "amount-desc"
)

// ParseSortOrder accepts the canonical names plus the short forms "latest" and
// "amount". An empty string means date-desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortDateDesc), "latest":
		return SortDateDesc, nil
	case string(SortAmountDesc), "amount":
		return SortAmountDesc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Filter selects ledger entries by card. An empty Card or "All" keeps everything.
type Filter struct {
	Card string
}

func (f Filter) active() bool {
	c := strings.TrimSpace(f.Card)
	return c != "" && !strings.EqualFold(c, "All")
}

func (f Filter) match(t model.Transaction) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Card))
	if strings.ToLower(t.CardID) == needle {
		return true
	}
	return strings.Contains(strings.ToLower(t.CardName), needle)
}

// View returns a filtered, stably sorted copy of txns. The input is left untouched.
func View(txns []model.Transaction, filter Filter, order SortOrder) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if filter.active() && !filter.match(t) {
			continue
		}
		out = append(out, t)
	}

	switch order {
	case SortAmountDesc:
		slices.SortStableFunc(out, func(a, b model.Transaction) int {
			switch {
			case a.Amount > b.Amount:
				return -1
			case a.Amount < b.Amount:
				return 1
			default:
				return 0
			}
		})
	default:
		slices.SortStableFunc(out, func(a, b model.Transaction) int {
			return b.Date.Compare(a.Date)
		})
	}

	return out
}
