package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryEntry é o acumulado de um produto do catálogo.
type SalesSummaryEntry struct {
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
	Buyers   int             `json:"buyers"`
}

// SalesSummary agrupa o acumulado por produto e os totais da execução.
// Os totais são sempre a soma exata das entradas; nenhuma contribuição
// entra num lado sem entrar no outro.
type SalesSummary struct {
	Products     map[string]SalesSummaryEntry `json:"products"`
	TotalRevenue decimal.Decimal              `json:"total_revenue"`
	TotalProfit  decimal.Decimal              `json:"total_profit"`
}

// ReferralEntry é o acumulado atribuído a um código de padrinho.
type ReferralEntry struct {
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailyEntry é o acumulado de um dia. A receita fica em centavos porque
// vem direto do total do pedido, sem recalcular a partir dos itens.
type DailyEntry struct {
	RevenueCents int64 `json:"revenue_cents"`
	OrderCount   int   `json:"order_count"`
}

// Report é o instantâneo completo de uma execução do pipeline: as três
// visões agregadas sobre o mesmo conjunto de pedidos. É a estrutura
// entregue aos colaboradores de relatório; nenhuma formatação aqui.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	OrderCount  int                      `json:"order_count"`
	Sales       SalesSummary             `json:"sales"`
	Sponsors    map[string]ReferralEntry `json:"sponsors"`
	BestSeller  string                   `json:"best_seller,omitempty"`
	Daily       map[string]DailyEntry    `json:"daily"`
}
