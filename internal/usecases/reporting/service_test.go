package reporting

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	commercemocks "github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce/mocks"
	repomocks "github.com/vfg2006/commerce-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/sponsoring"
	"github.com/vfg2006/commerce-insights-api/pkg/log"
	"github.com/shopspring/decimal"
)

func init() {
	log.SetupTestLogger()
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"croissant": domain.CatalogEntry{
			SalePrice: decimal.RequireFromString("2.00"),
			CostPrice: decimal.RequireFromString("0.80"),
		},
	}
}

func testOrders(t *testing.T) []domain.Order {
	t.Helper()

	payloads := []string{
		`{
			"id": 1,
			"date": "2024-03-01T10:00:00+01:00",
			"payer": {"email": "jean@example.org"},
			"amount": {"total": 400},
			"items": [
				{"name": "Apadrinhamento", "customFields": [{"answer": "Dupont Jean 4E B"}]},
				{"name": "Croissant", "quantity": 2, "amount": {"total": 200}}
			]
		}`,
		`{
			"id": 2,
			"date": "2024-03-02T09:00:00+01:00",
			"payer": {"email": "marie@example.org"},
			"amount": {"total": 200},
			"items": [{"name": "Croissant", "quantity": 1, "amount": {"total": 200}}]
		}`,
	}

	orders := make([]domain.Order, 0, len(payloads))
	for _, payload := range payloads {
		var order domain.Order
		require.NoError(t, json.Unmarshal([]byte(payload), &order))
		orders = append(orders, order)
	}
	return orders
}

func newTestService(fetcher *commercemocks.MockOrderFetcher, repo *repomocks.MockReportRepository) *Service {
	if repo != nil {
		return NewService(fetcher, aggregating.NewService(), sponsoring.NewService("Apadrinhamento"), testCatalog(), repo)
	}
	return NewService(fetcher, aggregating.NewService(), sponsoring.NewService("Apadrinhamento"), testCatalog(), nil)
}

func TestService_GenerateReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := commercemocks.NewMockOrderFetcher(ctrl)
	fetcher.EXPECT().FetchAll(gomock.Any()).Return(testOrders(t), nil)

	service := newTestService(fetcher, nil)

	report, err := service.GenerateReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.OrderCount)
	assert.WithinDuration(t, time.Now(), report.GeneratedAt, 5*time.Second)

	// Visão por produto
	require.Contains(t, report.Sales.Products, "croissant")
	assert.Equal(t, 3, report.Sales.Products["croissant"].Quantity)

	// Visão por padrinho
	require.Contains(t, report.Sponsors, "DUPONT 4B")
	assert.Equal(t, 2, report.Sponsors["DUPONT 4B"].Quantity)
	assert.Equal(t, "DUPONT 4B", report.BestSeller)

	// Visão por dia
	assert.Equal(t, domain.DailyEntry{RevenueCents: 400, OrderCount: 1}, report.Daily["2024-03-01"])
	assert.Equal(t, domain.DailyEntry{RevenueCents: 200, OrderCount: 1}, report.Daily["2024-03-02"])
}

func TestService_GenerateReport_PersisteQuandoHaRepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := commercemocks.NewMockOrderFetcher(ctrl)
	fetcher.EXPECT().FetchAll(gomock.Any()).Return(testOrders(t), nil)

	repo := repomocks.NewMockReportRepository(ctrl)
	repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)

	service := newTestService(fetcher, repo)

	_, err := service.GenerateReport(context.Background())
	require.NoError(t, err)
}

func TestService_GenerateReport_ErroDeBuscaAborta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := commercemocks.NewMockOrderFetcher(ctrl)
	fetcher.EXPECT().FetchAll(gomock.Any()).Return(nil, errors.Wrap(domain.ErrNetworkFailure, "página 2"))

	service := newTestService(fetcher, nil)

	_, err := service.GenerateReport(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)

	// Nada gerado: Latest continua vazio
	report, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestService_Latest_RetornaOInstantaneoEmMemoria(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := commercemocks.NewMockOrderFetcher(ctrl)
	fetcher.EXPECT().FetchAll(gomock.Any()).Return(testOrders(t), nil)

	service := newTestService(fetcher, nil)

	generated, err := service.GenerateReport(context.Background())
	require.NoError(t, err)

	latest, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Same(t, generated, latest)
}

func TestService_Latest_CaiParaORepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	persisted := &domain.Report{OrderCount: 7, GeneratedAt: time.Now().Add(-24 * time.Hour)}

	fetcher := commercemocks.NewMockOrderFetcher(ctrl)
	repo := repomocks.NewMockReportRepository(ctrl)
	repo.EXPECT().GetLatest(gomock.Any()).Return(persisted, nil)

	service := newTestService(fetcher, repo)

	latest, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Same(t, persisted, latest)

	// A segunda consulta usa o instantâneo em memória, sem nova ida ao banco
	again, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Same(t, persisted, again)
}
