package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/middleware"
	"github.com/anyulbade/card-reward-optimizer/internal/repository"
	"github.com/anyulbade/card-reward-optimizer/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return newRouterWithCatalog(cat, repository.NewMemoryStore())
}

func newRouterWithCatalog(cat *catalog.Catalog, store *repository.MemoryStore) *gin.Engine {
	rewardSvc := service.NewRewardService(cat)
	ledgerSvc := service.NewLedgerService(cat, store, store)
	dashboardSvc := service.NewDashboardService(ledgerSvc)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/health", NewHealthHandler(store, "memory").Health)
	SetupSwagger(router)
	SetupAPIRoutes(router, Services{
		Rewards:   rewardSvc,
		Ledger:    ledgerSvc,
		Dashboard: dashboardSvc,
		Reports:   service.NewReportService(dashboardSvc),
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
