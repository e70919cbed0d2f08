package dto

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
)

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, 10.0, RoundAmount(9.999))
	assert.Equal(t, 2.28, RoundAmount(2.275))
	assert.Equal(t, 0.07, RoundAmount(0.06666))
	assert.Equal(t, 0.0, RoundAmount(0))
	assert.Equal(t, -1.24, RoundAmount(-1.235))
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		page     int
		pageSize int
		offset   int
	}{
		{"", 1, 20, 0},
		{"page=3&page_size=10", 3, 10, 20},
		{"page=0&page_size=0", 1, 20, 0},
		{"page=2&page_size=500", 2, 100, 100},
		{"page=100000000000000000&page_size=100", math.MaxInt / 100, 100, (math.MaxInt/100 - 1) * 100},
		{"page=abc", 1, 20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tc.query, nil)
			p := ParsePagination(c)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.pageSize, p.PageSize)
			assert.Equal(t, tc.offset, p.Offset)
		})
	}
}

func TestWindow(t *testing.T) {
	p := PaginationParams{Page: 2, PageSize: 10, Offset: 10}
	start, end := p.Window(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = p.Window(12)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	start, end = p.Window(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = PaginationParams{Page: 1, PageSize: 10, Offset: -30}.Window(25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: 20, TotalItems: 0, TotalPages: 0}, NewPagination(1, 20, 0))
	assert.Equal(t, Pagination{Page: 1, PageSize: 20, TotalItems: 41, TotalPages: 3}, NewPagination(1, 20, 41))
}

func TestCategoryBreakdown(t *testing.T) {
	got := CategoryBreakdown(map[model.Category]float64{
		"Petrol":  6,
		"Grocery": 10.275,
		"Pets":    1.5,
		"Charity": 0.333,
		"Dining":  2,
	})

	want := []CategoryAmount{
		{"Grocery", 10.28},
		{"Dining", 2},
		{"Petrol", 6},
		{"Charity", 0.33},
		{"Pets", 1.5},
	}
	assert.Equal(t, want, got)
}

func TestNewTransactionResponse(t *testing.T) {
	txn := model.Transaction{
		ID:              "t1",
		Date:            time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Category:        "Grocery",
		Amount:          45.5,
		RewardEarned:    2.275,
		RewardPotential: 6.825,
	}

	resp := NewTransactionResponse(txn)
	assert.Equal(t, "2025-03-08", resp.Date)
	assert.Equal(t, "Saturday", resp.DayOfWeek)
	assert.Equal(t, 2.28, resp.RewardEarned)
	assert.Equal(t, 6.83, resp.RewardPotential)
	assert.False(t, resp.Optimized)
}

func TestNewRecommendationResponse(t *testing.T) {
	p := model.Purchase{Category: "Dining", Amount: 33.33, Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)}
	rec := rewards.Recommendation{
		Best: rewards.CardReward{Card: model.Card{ID: "scsimply", Name: "SCB Simply Cash"}, Rate: 0.15, Tier: rewards.TierBase, Reward: 4.9995},
		Alternatives: []rewards.CardReward{
			{Card: model.Card{ID: "uobone"}, Rate: 0.10, Tier: rewards.TierBase, Reward: 3.333},
		},
	}

	resp := NewRecommendationResponse(p, rec)
	assert.Equal(t, "Tuesday", resp.DayOfWeek)
	assert.Equal(t, "scsimply", resp.Best.CardID)
	assert.Equal(t, 5.0, resp.Best.Reward)
	assert.Equal(t, "base", resp.Best.Tier)
	assert.Equal(t, 0.15, resp.Best.Rate)
	assert.Len(t, resp.Alternatives, 1)
	assert.Equal(t, 3.33, resp.Alternatives[0].Reward)
}
