package dto

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
)

// RoundAmount rounds a monetary value half away from zero to two decimals. The
// engine keeps full precision; rounding happens only here.
func RoundAmount(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

type TransactionResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	DayOfWeek       string    `json:"day_of_week"`
	Merchant        string    `json:"merchant"`
	Category        string    `json:"category"`
	Amount          float64   `json:"amount"`
	CardID          string    `json:"card_id"`
	CardName        string    `json:"card_name"`
	RewardEarned    float64   `json:"reward_earned"`
	RewardPotential float64   `json:"reward_potential"`
	Optimized       bool      `json:"optimized"`
	Notes           string    `json:"notes,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}

func NewTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Date:            t.Date.Format(model.DateLayout),
		DayOfWeek:       rewards.DayOfWeek(t.Date).String(),
		Merchant:        t.Merchant,
		Category:        string(t.Category),
		Amount:          RoundAmount(t.Amount),
		CardID:          t.CardID,
		CardName:        t.CardName,
		RewardEarned:    RoundAmount(t.RewardEarned),
		RewardPotential: RoundAmount(t.RewardPotential),
		Optimized:       t.RewardEarned >= t.RewardPotential,
		Notes:           t.Notes,
		RecordedAt:      t.RecordedAt,
	}
}

func NewTransactionResponses(txns []model.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = NewTransactionResponse(t)
	}
	return out
}

type BatchTransactionResponse struct {
	Inserted int                   `json:"inserted"`
	Results  []TransactionResponse `json:"results"`
}

type TransactionListResponse struct {
	Data       []TransactionResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

type ResetResponse struct {
	Deleted int64 `json:"deleted"`
}

type CardRewardResponse struct {
	CardID   string  `json:"card_id"`
	CardName string  `json:"card_name"`
	Issuer   string  `json:"issuer"`
	Rate     float64 `json:"rate"`
	Tier     string  `json:"tier"`
	Reward   float64 `json:"reward"`
}

func NewCardRewardResponse(r rewards.CardReward) CardRewardResponse {
	return CardRewardResponse{
		CardID:   r.Card.ID,
		CardName: r.Card.Name,
		Issuer:   r.Card.Issuer,
		Rate:     r.Rate,
		Tier:     r.Tier.String(),
		Reward:   RoundAmount(r.Reward),
	}
}

type RecommendationResponse struct {
	Category     string               `json:"category"`
	Amount       float64              `json:"amount"`
	Date         string               `json:"date"`
	DayOfWeek    string               `json:"day_of_week"`
	Best         CardRewardResponse   `json:"best"`
	Alternatives []CardRewardResponse `json:"alternatives"`
}

func NewRecommendationResponse(p model.Purchase, rec rewards.Recommendation) RecommendationResponse {
	alts := make([]CardRewardResponse, len(rec.Alternatives))
	for i, a := range rec.Alternatives {
		alts[i] = NewCardRewardResponse(a)
	}
	return RecommendationResponse{
		Category:     string(p.Category),
		Amount:       p.Amount,
		Date:         p.Date.Format(model.DateLayout),
		DayOfWeek:    rewards.DayOfWeek(p.Date).String(),
		Best:         NewCardRewardResponse(rec.Best),
		Alternatives: alts,
	}
}

type RateResponse struct {
	CardID     string  `json:"card_id"`
	Category   string  `json:"category"`
	Date       string  `json:"date"`
	DayOfWeek  string  `json:"day_of_week"`
	Rate       float64 `json:"rate"`
	Tier       string  `json:"tier"`
	MatchedKey string  `json:"matched_key,omitempty"`
	Amount     float64 `json:"amount"`
	Reward     float64 `json:"reward"`
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryBreakdown orders known categories by taxonomy order, then any others
// alphabetically.
func CategoryBreakdown(byCategory map[model.Category]float64) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(byCategory))
	for _, cat := range model.Categories {
		if v, ok := byCategory[cat]; ok {
			out = append(out, CategoryAmount{Category: string(cat), Amount: RoundAmount(v)})
		}
	}

	var extra []string
	for cat := range byCategory {
		if !slices.Contains(model.Categories, cat) {
			extra = append(extra, string(cat))
		}
	}
	slices.Sort(extra)
	for _, cat := range extra {
		out = append(out, CategoryAmount{Category: cat, Amount: RoundAmount(byCategory[model.Category(cat)])})
	}
	return out
}

type StatsResponse struct {
	TransactionCount  int              `json:"transaction_count"`
	TotalEarned       float64          `json:"total_earned"`
	TotalPotential    float64          `json:"total_potential"`
	Leakage           float64          `json:"leakage"`
	OptimizationScore float64          `json:"optimization_score"`
	TotalSpend        float64          `json:"total_spend"`
	ByCategory        []CategoryAmount `json:"by_category"`
}

func NewStatsResponse(s rewards.PortfolioStats) StatsResponse {
	return StatsResponse{
		TransactionCount:  s.TransactionCount,
		TotalEarned:       RoundAmount(s.TotalEarned),
		TotalPotential:    RoundAmount(s.TotalPotential),
		Leakage:           RoundAmount(s.Leakage),
		OptimizationScore: RoundAmount(s.OptimizationScore),
		TotalSpend:        RoundAmount(s.TotalSpend),
		ByCategory:        CategoryBreakdown(s.ByCategory),
	}
}

type DashboardResponse struct {
	Currency model.Currency        `json:"currency"`
	Stats    StatsResponse         `json:"stats"`
	Recent   []TransactionResponse `json:"recent"`
}

type ValidationError struct {
	Index   int    `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
