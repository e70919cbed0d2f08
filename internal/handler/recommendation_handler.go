package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type RecommendationHandler struct {
	svc *service.RewardService
}

func NewRecommendationHandler(svc *service.RewardService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	p, err := h.svc.PurchaseFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		return
	}

	rec, err := h.svc.Recommend(p, req.Cards)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRecommendationResponse(p, rec))
}
