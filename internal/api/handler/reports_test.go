package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting/mocks"
)

func testReport() *domain.Report {
	return &domain.Report{
		GeneratedAt: time.Now(),
		OrderCount:  2,
		Sales: domain.SalesSummary{
			Products: map[string]domain.SalesSummaryEntry{
				"croissant": {
					Quantity: 3,
					Revenue:  decimal.RequireFromString("6.00"),
					Profit:   decimal.RequireFromString("3.60"),
					Buyers:   2,
				},
			},
			TotalRevenue: decimal.RequireFromString("6.00"),
			TotalProfit:  decimal.RequireFromString("3.60"),
		},
		Sponsors: map[string]domain.ReferralEntry{
			"DUPONT 4B": {Quantity: 2, Revenue: decimal.RequireFromString("4.00")},
		},
		BestSeller: "DUPONT 4B",
		Daily: map[string]domain.DailyEntry{
			"2024-03-01": {RevenueCents: 600, OrderCount: 2},
		},
	}
}

func TestGetSalesReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest(gomock.Any()).Return(testReport(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/sales", nil)
	rec := httptest.NewRecorder()

	GetSalesReport(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.SalesSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Products, "croissant")
	assert.Equal(t, 3, body.Products["croissant"].Quantity)
}

func TestGetSalesReport_SemRelatorioDisponivel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/sales", nil)
	rec := httptest.NewRecorder()

	GetSalesReport(reporter).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSponsorsReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest(gomock.Any()).Return(testReport(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/sponsors", nil)
	rec := httptest.NewRecorder()

	GetSponsorsReport(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sponsors   map[string]domain.ReferralEntry `json:"sponsors"`
		BestSeller string                          `json:"best_seller"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DUPONT 4B", body.BestSeller)
	require.Contains(t, body.Sponsors, "DUPONT 4B")
	assert.Equal(t, 2, body.Sponsors["DUPONT 4B"].Quantity)
}

func TestGetDailyReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().Latest(gomock.Any()).Return(testReport(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/daily", nil)
	rec := httptest.NewRecorder()

	GetDailyReport(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]domain.DailyEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.DailyEntry{RevenueCents: 600, OrderCount: 2}, body["2024-03-01"])
}

func TestRefreshReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GenerateReport(gomock.Any()).Return(testReport(), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/reports/refresh", nil)
	rec := httptest.NewRecorder()

	RefreshReport(reporter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body RefreshReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.OrderCount)
	assert.Equal(t, "DUPONT 4B", body.BestSeller)
}

func TestRefreshReport_ErroDeGeracao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().GenerateReport(gomock.Any()).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/v1/reports/refresh", nil)
	rec := httptest.NewRecorder()

	RefreshReport(reporter).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
