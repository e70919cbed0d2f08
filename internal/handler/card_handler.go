package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type CardHandler struct {
	svc *service.RewardService
}

func NewCardHandler(svc *service.RewardService) *CardHandler {
	return &CardHandler{svc: svc}
}

func (h *CardHandler) List(c *gin.Context) {
	cards := h.svc.Cards()
	c.JSON(http.StatusOK, gin.H{
		"data":  cards,
		"total": len(cards),
	})
}

func (h *CardHandler) Get(c *gin.Context) {
	card, err := h.svc.Card(c.Param("id"))
	if err != nil {
		h.cardError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Rate resolves the rate one card gives for a category on a date. amount is
// optional and only affects the reward in the response.
func (h *CardHandler) Rate(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	if category == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: "category is required"})
		return
	}

	var amount float64
	if raw := c.Query("amount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: "invalid amount: " + raw})
			return
		}
		amount = v
	}

	p, err := h.svc.PurchaseFromRequest(&dto.RecommendRequest{
		Category: category,
		Amount:   amount,
		Date:     c.Query("date"),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		return
	}

	q, err := h.svc.Quote(c.Param("id"), p)
	if err != nil {
		h.cardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RateResponse{
		CardID:     q.Card.ID,
		Category:   string(p.Category),
		Date:       p.Date.Format(model.DateLayout),
		DayOfWeek:  rewards.DayOfWeek(p.Date).String(),
		Rate:       q.Resolution.Rate,
		Tier:       q.Resolution.Tier.String(),
		MatchedKey: string(q.Resolution.Key),
		Amount:     p.Amount,
		Reward:     dto.RoundAmount(q.Reward),
	})
}

func (h *CardHandler) cardError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrUnknownCard) {
		c.JSON(http.StatusNotFound, dto.ErrorListResponse{Error: "card not found: " + c.Param("id")})
		return
	}
	_ = c.Error(err)
}
