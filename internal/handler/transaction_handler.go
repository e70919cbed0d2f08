package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type TransactionHandler struct {
	svc *service.LedgerService
}

func NewTransactionHandler(svc *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(*txn))
}

func (h *TransactionHandler) CreateBatch(c *gin.Context) {
	var req dto.BatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	txns, validationErrors, err := h.svc.CreateBatch(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error:  "batch validation failed",
			Errors: validationErrors,
		})
		return
	}

	results := make([]dto.TransactionResponse, len(txns))
	for i, txn := range txns {
		results[i] = dto.NewTransactionResponse(*txn)
	}

	c.JSON(http.StatusCreated, dto.BatchTransactionResponse{
		Inserted: len(txns),
		Results:  results,
	})
}

// List serves the ledger view. card filters by card id or name fragment, sort
// is date-desc (default) or amount-desc.
func (h *TransactionHandler) List(c *gin.Context) {
	p := dto.ParsePagination(c)

	page, total, err := h.svc.View(c.Request.Context(), c.Query("card"), c.Query("sort"), p)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Data:       dto.NewTransactionResponses(page),
		Pagination: dto.NewPagination(p.Page, p.PageSize, total),
	})
}

func (h *TransactionHandler) Reset(c *gin.Context) {
	n, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetResponse{Deleted: n})
}
