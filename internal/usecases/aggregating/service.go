package aggregating

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/pkg/normalize"
)

// Aggregator produz as visões de vendas por produto e por dia sobre um
// instantâneo somente-leitura dos pedidos.
type Aggregator interface {
	SalesSummary(orders []domain.Order, catalog domain.Catalog) domain.SalesSummary
	DailySales(orders []domain.Order) map[string]domain.DailyEntry
}

type Service struct{}

func NewService() Aggregator {
	return &Service{}
}

type productAccumulator struct {
	quantity int
	revenue  decimal.Decimal
	profit   decimal.Decimal
	buyers   map[string]struct{}
}

// SalesSummary calcula o acumulado por produto do catálogo: quantidade,
// receita, lucro e compradores distintos (por email do pagador).
// Pedidos sem pagador identificável são ignorados inteiros; itens fora
// do catálogo ficam de fora de todos os totais, em silêncio.
func (s *Service) SalesSummary(orders []domain.Order, catalog domain.Catalog) domain.SalesSummary {
	accumulators := make(map[string]*productAccumulator)
	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero

	for _, order := range orders {
		if !order.HasPayerEmail() {
			logrus.WithField("order_id", order.ID).Warn("Pedido sem email do pagador, ignorado no resumo de vendas")
			continue
		}

		for _, item := range order.Items {
			lineRevenue, ok := resolveLineRevenue(order.ID, item)
			if !ok {
				continue
			}

			productName := normalize.ProductName(item.Name)
			entry, inCatalog := catalog[productName]
			if !inCatalog {
				continue
			}

			acc, exists := accumulators[productName]
			if !exists {
				acc = &productAccumulator{
					revenue: decimal.Zero,
					profit:  decimal.Zero,
					buyers:  make(map[string]struct{}),
				}
				accumulators[productName] = acc
			}

			quantity := item.Count()
			lineProfit := entry.SalePrice.Sub(entry.CostPrice).Mul(decimal.NewFromInt(int64(quantity)))

			acc.quantity += quantity
			acc.revenue = acc.revenue.Add(lineRevenue)
			acc.profit = acc.profit.Add(lineProfit)
			acc.buyers[order.Payer.Email] = struct{}{}

			totalRevenue = totalRevenue.Add(lineRevenue)
			totalProfit = totalProfit.Add(lineProfit)
		}
	}

	// Colapsa os conjuntos de compradores em cardinalidade
	products := make(map[string]domain.SalesSummaryEntry, len(accumulators))
	for name, acc := range accumulators {
		products[name] = domain.SalesSummaryEntry{
			Quantity: acc.quantity,
			Revenue:  acc.revenue,
			Profit:   acc.profit,
			Buyers:   len(acc.buyers),
		}
	}

	return domain.SalesSummary{
		Products:     products,
		TotalRevenue: totalRevenue,
		TotalProfit:  totalProfit,
	}
}

// DailySales acumula receita e contagem de pedidos por dia. A chave são
// os dez primeiros caracteres do carimbo do pedido (a data ISO-8601),
// como substring léxica; nenhuma normalização de fuso é feita. A
// receita vem do total do pedido, não é recalculada dos itens.
func (s *Service) DailySales(orders []domain.Order) map[string]domain.DailyEntry {
	daily := make(map[string]domain.DailyEntry)

	for _, order := range orders {
		if len(order.Date) < 10 {
			logrus.WithField("order_id", order.ID).Warn("Pedido sem data válida, ignorado na agregação diária")
			continue
		}

		cents, err := order.Amount.Cents()
		if err != nil {
			logrus.WithError(domain.NewOrderDataError(err, order.ID, "total do pedido")).
				Error("Pedido ignorado na agregação diária")
			continue
		}

		day := order.Date[:10]
		entry := daily[day]
		entry.RevenueCents += cents
		entry.OrderCount++
		daily[day] = entry
	}

	return daily
}

// resolveLineRevenue resolve o valor da linha (preço unitário vezes
// quantidade) de um item. O resultado explícito por item decide se o
// laço acumula ou pula: formato de valor inesperado e falha de
// conversão são absorvidos aqui, com diagnóstico, sem afetar os itens
// vizinhos.
func resolveLineRevenue(orderID int64, item domain.OrderItem) (decimal.Decimal, bool) {
	if item.Amount.IsLegacy() {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"item":     item.Name,
		}).Warn("Item com valor no formato antigo (inteiro puro)")
	}

	lineRevenue, err := item.LineRevenue()
	if err != nil {
		logrus.WithError(domain.NewOrderDataError(err, orderID, "item '"+item.Name+"'")).
			Error("Item ignorado")
		return decimal.Zero, false
	}

	return lineRevenue, true
}
