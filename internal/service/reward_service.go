package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/metrics"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
)

type RewardService struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewRewardService(cat *catalog.Catalog) *RewardService {
	return &RewardService{catalog: cat, now: time.Now}
}

func (s *RewardService) Cards() []model.Card {
	return s.catalog.Cards()
}

func (s *RewardService) Card(id string) (model.Card, error) {
	return s.catalog.Card(id)
}

type RateQuote struct {
	Card       model.Card
	Purchase   model.Purchase
	Resolution rewards.Resolution
	Reward     float64
}

// Quote resolves the rate and reward one card gives for a purchase.
func (s *RewardService) Quote(cardID string, p model.Purchase) (*RateQuote, error) {
	card, err := s.catalog.Card(cardID)
	if err != nil {
		return nil, err
	}
	return &RateQuote{
		Card:       card,
		Purchase:   p,
		Resolution: rewards.Resolve(card, p.Category, p.Date),
		Reward:     rewards.ResolveReward(card, p),
	}, nil
}

// Recommend picks the best card for a purchase across the catalog, or across the
// listed card ids when any are given. ErrEmptyPortfolio is passed through.
func (s *RewardService) Recommend(p model.Purchase, cardIDs []string) (rewards.Recommendation, error) {
	portfolio := s.catalog.Cards()
	if len(cardIDs) > 0 {
		var err error
		if portfolio, err = s.catalog.Subset(cardIDs); err != nil {
			return rewards.Recommendation{}, err
		}
	}

	rec, err := rewards.Recommend(portfolio, p)
	if err != nil {
		return rewards.Recommendation{}, fmt.Errorf("recommend for %s: %w", p.Category, err)
	}

	metrics.ObserveRecommendation(rec.Best.Card.ID)
	log.Debug().
		Str("category", string(p.Category)).
		Float64("amount", p.Amount).
		Str("card_id", rec.Best.Card.ID).
		Float64("reward", rec.Best.Reward).
		Msg("recommendation computed")

	return rec, nil
}

// PurchaseFromRequest turns a recommendation request into a purchase. A missing
// date means today.
func (s *RewardService) PurchaseFromRequest(req *dto.RecommendRequest) (model.Purchase, error) {
	date := model.CalendarDate(s.now())
	if strings.TrimSpace(req.Date) != "" {
		d, err := model.ParseDate(req.Date)
		if err != nil {
			return model.Purchase{}, &validationErr{field: "date", message: err.Error()}
		}
		date = d
	}
	return model.Purchase{
		Category: model.Category(strings.TrimSpace(req.Category)),
		Amount:   req.Amount,
		Date:     date,
	}, nil
}
