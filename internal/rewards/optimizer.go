package rewards

import (
	"errors"
	"slices"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

var ErrEmptyPortfolio = errors.New("empty portfolio")

type CardReward struct {
	Card   model.Card
	Rate   float64
	Tier   Tier
	Reward float64
}

type Recommendation struct {
	Best         CardReward
	Alternatives []CardReward
}

func evaluate(card model.Card, p model.Purchase) CardReward {
	res := Resolve(card, p.Category, p.Date)
	return CardReward{
		Card:   card,
		Rate:   res.Rate,
		Tier:   res.Tier,
		Reward: ResolveReward(card, p),
	}
}

// Recommend evaluates every card in the portfolio and returns the one with the
// highest reward. On a tie the card that appears first in the portfolio wins.
// Alternatives holds the remaining cards by reward descending; equal rewards keep
// portfolio order.
func Recommend(portfolio []model.Card, p model.Purchase) (Recommendation, error) {
	if len(portfolio) == 0 {
		return Recommendation{}, ErrEmptyPortfolio
	}

	results := make([]CardReward, len(portfolio))
	best := 0
	for i, card := range portfolio {
		results[i] = evaluate(card, p)
		if results[i].Reward > results[best].Reward {
			best = i
		}
	}

	alternatives := make([]CardReward, 0, len(results)-1)
	alternatives = append(alternatives, results[:best]...)
	alternatives = append(alternatives, results[best+1:]...)
	slices.SortStableFunc(alternatives, func(a, b CardReward) int {
		switch {
		case a.Reward > b.Reward:
			return -1
		case a.Reward < b.Reward:
			return 1
		default:
			return 0
		}
	})

	return Recommendation{Best: results[best], Alternatives: alternatives}, nil
}

// Potential is the reward the best card in the portfolio would earn, or 0 when the
// portfolio is empty.
func Potential(portfolio []model.Card, p model.Purchase) float64 {
	rec, err := Recommend(portfolio, p)
	if err != nil {
		return 0
	}
	return rec.Best.Reward
}
