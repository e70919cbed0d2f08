package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/templates"
)

type ReportService struct {
	dashboard *DashboardService
	now       func() time.Time
}

func NewReportService(dashboard *DashboardService) *ReportService {
	return &ReportService{dashboard: dashboard, now: time.Now}
}

type ReportData struct {
	GeneratedAt string                    `json:"generated_at"`
	Currency    model.Currency            `json:"currency"`
	Stats       dto.StatsResponse         `json:"stats"`
	Recent      []dto.TransactionResponse `json:"recent"`
}

func (s *ReportService) GenerateReport(ctx context.Context) (*ReportData, error) {
	d, err := s.dashboard.Build(ctx)
	if err != nil {
		return nil, err
	}

	return &ReportData{
		GeneratedAt: s.now().Format("2006-01-02 15:04:05 MST"),
		Currency:    d.Currency,
		Stats:       dto.NewStatsResponse(d.Stats),
		Recent:      dto.NewTransactionResponses(d.Recent),
	}, nil
}

// FormatAmount renders an amount in the report currency. go-money handles the
// ISO codes it knows; anything else is printed with the stored symbol.
func FormatAmount(cur model.Currency, amount float64) string {
	mc := money.GetCurrency(cur.Code)
	if mc == nil {
		return fmt.Sprintf("%s%.2f", cur.Symbol, amount)
	}
	minor := decimal.NewFromFloat(amount).Round(int32(mc.Fraction)).Shift(int32(mc.Fraction))
	return money.New(minor.IntPart(), mc.Code).Display()
}

func (s *ReportService) RenderHTML(data *ReportData) (string, error) {
	funcMap := template.FuncMap{
		"toLower": strings.ToLower,
		"money": func(amount float64) string {
			return FormatAmount(data.Currency, amount)
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(templates.Report)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
