package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type CurrencyHandler struct {
	svc *service.LedgerService
}

func NewCurrencyHandler(svc *service.LedgerService) *CurrencyHandler {
	return &CurrencyHandler{svc: svc}
}

func (h *CurrencyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Currencies()})
}

func (h *CurrencyHandler) Get(c *gin.Context) {
	cur, err := h.svc.Currency(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (h *CurrencyHandler) Put(c *gin.Context) {
	var req dto.SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	cur, err := h.svc.SetCurrency(c.Request.Context(), &req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cur)
}
