package aggregating

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/pkg/log"
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
		"cafe": domain.CatalogEntry{
			SalePrice: decimal.RequireFromString("1.50"),
			CostPrice: decimal.RequireFromString("0.50"),
		},
	}
}

func mustOrder(t *testing.T, payload string) domain.Order {
	t.Helper()

	var order domain.Order
	require.NoError(t, json.Unmarshal([]byte(payload), &order))
	return order
}

func TestService_SalesSummary(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{
			"id": 1,
			"payer": {"email": "jean@example.org"},
			"items": [
				{"name": "Croissant", "quantity": 2, "amount": {"total": 200}},
				{"name": "Café", "quantity": 1, "amount": {"total": 150}}
			]
		}`),
		mustOrder(t, `{
			"id": 2,
			"payer": {"email": "marie@example.org"},
			"items": [
				{"name": "CROISSANT", "quantity": 1, "amount": {"total": 200}}
			]
		}`),
	}

	summary := service.SalesSummary(orders, testCatalog())

	require.Contains(t, summary.Products, "croissant")
	croissant := summary.Products["croissant"]
	assert.Equal(t, 3, croissant.Quantity)
	assert.True(t, croissant.Revenue.Equal(decimal.RequireFromString("6.00")), "receita: %s", croissant.Revenue)
	assert.True(t, croissant.Profit.Equal(decimal.RequireFromString("3.60")), "lucro: %s", croissant.Profit)
	assert.Equal(t, 2, croissant.Buyers)

	require.Contains(t, summary.Products, "cafe")
	cafe := summary.Products["cafe"]
	assert.Equal(t, 1, cafe.Quantity)
	assert.True(t, cafe.Revenue.Equal(decimal.RequireFromString("1.50")))
	assert.Equal(t, 1, cafe.Buyers)
}

func TestService_SalesSummary_TotaisSaoSomaDasEntradas(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{
			"id": 1,
			"payer": {"email": "jean@example.org"},
			"items": [
				{"name": "Croissant", "quantity": 2, "amount": {"total": 200}},
				{"name": "Café", "quantity": 1, "amount": {"total": 150}},
				{"name": "Produto Misterioso", "quantity": 5, "amount": {"total": 999}}
			]
		}`),
	}

	summary := service.SalesSummary(orders, testCatalog())

	sumRevenue := decimal.Zero
	sumProfit := decimal.Zero
	for _, entry := range summary.Products {
		sumRevenue = sumRevenue.Add(entry.Revenue)
		sumProfit = sumProfit.Add(entry.Profit)
	}

	assert.True(t, summary.TotalRevenue.Equal(sumRevenue), "total %s, soma %s", summary.TotalRevenue, sumRevenue)
	assert.True(t, summary.TotalProfit.Equal(sumProfit))

	// Item fora do catálogo não entra em nenhum dos lados
	assert.NotContains(t, summary.Products, "produto misterioso")
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("5.50")))
}

func TestService_SalesSummary_CompradorDistintoPorEmail(t *testing.T) {
	service := NewService()

	// Mesmo email em dois pedidos: um único comprador
	orders := []domain.Order{
		mustOrder(t, `{
			"id": 1,
			"payer": {"email": "jean@example.org"},
			"items": [{"name": "Croissant", "quantity": 1, "amount": {"total": 200}}]
		}`),
		mustOrder(t, `{
			"id": 2,
			"payer": {"email": "jean@example.org"},
			"items": [{"name": "Croissant", "quantity": 1, "amount": {"total": 200}}]
		}`),
	}

	summary := service.SalesSummary(orders, testCatalog())

	assert.Equal(t, 1, summary.Products["croissant"].Buyers)
	assert.Equal(t, 2, summary.Products["croissant"].Quantity)
}

func TestService_SalesSummary_PedidoSemPagadorIgnorado(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{
			"id": 1,
			"items": [{"name": "Croissant", "quantity": 1, "amount": {"total": 200}}]
		}`),
		mustOrder(t, `{
			"id": 2,
			"payer": {"email": "sem-arroba"},
			"items": [{"name": "Croissant", "quantity": 1, "amount": {"total": 200}}]
		}`),
	}

	summary := service.SalesSummary(orders, testCatalog())

	assert.Empty(t, summary.Products)
	assert.True(t, summary.TotalRevenue.IsZero())
}

func TestService_SalesSummary_ItemComValorInvalidoNaoAbortaOPedido(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{
			"id": 1,
			"payer": {"email": "jean@example.org"},
			"items": [
				{"name": "Croissant", "quantity": 1, "amount": "abc"},
				{"name": "Café", "quantity": 1, "amount": {"total": 150}}
			]
		}`),
	}

	summary := service.SalesSummary(orders, testCatalog())

	assert.NotContains(t, summary.Products, "croissant")
	require.Contains(t, summary.Products, "cafe")
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("1.50")))
}

func TestService_DailySales(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{"id": 1, "date": "2024-03-01T10:15:00+01:00", "amount": {"total": 500}}`),
		mustOrder(t, `{"id": 2, "date": "2024-03-01T18:30:00+01:00", "amount": {"total": 300}}`),
		mustOrder(t, `{"id": 3, "date": "2024-03-02T09:00:00+01:00", "amount": 250}`),
	}

	daily := service.DailySales(orders)

	require.Len(t, daily, 2)
	assert.Equal(t, domain.DailyEntry{RevenueCents: 800, OrderCount: 2}, daily["2024-03-01"])
	assert.Equal(t, domain.DailyEntry{RevenueCents: 250, OrderCount: 1}, daily["2024-03-02"])
}

func TestService_DailySales_PedidosInvalidosIgnorados(t *testing.T) {
	service := NewService()

	orders := []domain.Order{
		mustOrder(t, `{"id": 1, "date": "", "amount": {"total": 500}}`),
		mustOrder(t, `{"id": 2, "date": "2024", "amount": {"total": 500}}`),
		mustOrder(t, `{"id": 3, "date": "2024-03-01T10:00:00+01:00", "amount": "abc"}`),
		mustOrder(t, `{"id": 4, "date": "2024-03-01T11:00:00+01:00", "amount": {"total": 100}}`),
	}

	daily := service.DailySales(orders)

	require.Len(t, daily, 1)
	assert.Equal(t, domain.DailyEntry{RevenueCents: 100, OrderCount: 1}, daily["2024-03-01"])
}
