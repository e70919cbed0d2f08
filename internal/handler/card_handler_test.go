package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

func TestCardHandler_List(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Data  []model.Card `json:"data"`
		Total int          `json:"total"`
	}](t, w)
	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, "m2gold", resp.Data[0].ID)
	assert.Equal(t, 0.05, resp.Data[1].DayRates[5][model.CategoryPetrol])
}

func TestCardHandler_Get(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cards/uobone", nil)
	require.Equal(t, http.StatusOK, w.Code)
	card := decode[model.Card](t, w)
	assert.Equal(t, "UOB One Card", card.Name)
	assert.Equal(t, "Daily Essentials, Grab Users", card.BestFor)
	assert.Contains(t, w.Body.String(), `"features":"Up to 10% Cashback`)

	w = doJSON(t, router, http.MethodGet, "/api/v1/cards/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCardHandler_Rate(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		url    string
		status int
		rate   float64
		tier   string
		key    string
		reward float64
	}{
		{"day override", "/api/v1/cards/mikhwan/rate?category=Petrol&date=2025-03-07&amount=100", http.StatusOK, 0.05, "day", "Petrol", 5},
		{"day map without key terminates", "/api/v1/cards/mikhwan/rate?category=Dining&date=2025-03-08&amount=100", http.StatusOK, 0, "day", "", 0},
		{"weekend fallback to Other", "/api/v1/cards/m2gold/rate?category=Insurance&date=2025-03-09&amount=40", http.StatusOK, 0.05, "weekend", "Other", 2},
		{"weekday base", "/api/v1/cards/m2gold/rate?category=Dining&date=2025-03-11&amount=40", http.StatusOK, 0, "base", "Dining", 0},
		{"no amount", "/api/v1/cards/pbvs/rate?category=Dining&date=2025-03-11", http.StatusOK, 0.06, "base", "Dining", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tc.url, nil)
			require.Equal(t, tc.status, w.Code, w.Body.String())
			resp := decode[dto.RateResponse](t, w)
			assert.Equal(t, tc.rate, resp.Rate)
			assert.Equal(t, tc.tier, resp.Tier)
			assert.Equal(t, tc.key, resp.MatchedKey)
			assert.InDelta(t, tc.reward, resp.Reward, 1e-9)
		})
	}

	t.Run("errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/cards/pbvs/rate", nil).Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/cards/pbvs/rate?category=Dining&amount=ten", nil).Code)
		for _, amount := range []string{"NaN", "Inf", "-Inf", "1e400"} {
			w := doJSON(t, router, http.MethodGet, "/api/v1/cards/uobone/rate?category=Dining&date=2025-03-04&amount="+amount, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, amount)
		}
		assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodGet, "/api/v1/cards/pbvs/rate?category=Dining&date=tomorrow", nil).Code)
		assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/api/v1/cards/ghost/rate?category=Dining", nil).Code)
	})
}
