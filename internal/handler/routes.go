package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

type Services struct {
	Rewards   *service.RewardService
	Ledger    *service.LedgerService
	Dashboard *service.DashboardService
	Reports   *service.ReportService
}

func SetupAPIRoutes(router *gin.Engine, svc Services) {
	cardHandler := NewCardHandler(svc.Rewards)
	recHandler := NewRecommendationHandler(svc.Rewards)
	txnHandler := NewTransactionHandler(svc.Ledger)
	currencyHandler := NewCurrencyHandler(svc.Ledger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)
	reportHandler := NewReportHandler(svc.Reports)

	api := router.Group("/api/v1")
	{
		api.GET("/cards", cardHandler.List)
		api.GET("/cards/:id", cardHandler.Get)
		api.GET("/cards/:id/rate", cardHandler.Rate)
		api.POST("/recommendations", recHandler.Recommend)
		api.POST("/transactions", txnHandler.Create)
		api.POST("/transactions/batch", txnHandler.CreateBatch)
		api.GET("/transactions", txnHandler.List)
		api.DELETE("/transactions", txnHandler.Reset)
		api.GET("/dashboard", dashboardHandler.Get)
		api.GET("/currencies", currencyHandler.List)
		api.GET("/currency", currencyHandler.Get)
		api.PUT("/currency", currencyHandler.Put)
		api.GET("/reports/portfolio", reportHandler.GetReport)
	}
}
