package domain

import "github.com/shopspring/decimal"

// CatalogEntry guarda os preços de venda e de custo de um produto do
// catálogo, ambos decimais de duas casas.
type CatalogEntry struct {
	SalePrice decimal.Decimal `json:"sale_price"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// Catalog mapeia o nome normalizado do produto para seus preços. É
// fornecido pela configuração e somente lido pelo motor: um item só
// contribui para o resumo de vendas se o nome normalizado dele bater
// exatamente com uma chave daqui.
type Catalog map[string]CatalogEntry
