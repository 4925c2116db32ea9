package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Order é um pedido como retornado pela API de vendas. Imutável depois
// de buscado; os agregadores apenas o leem.
type Order struct {
	ID     int64       `json:"id,omitempty"`
	Date   string      `json:"date,omitempty"`
	Payer  *Payer      `json:"payer,omitempty"`
	Amount Amount      `json:"amount,omitempty"`
	Items  []OrderItem `json:"items,omitempty"`
}

type Payer struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type OrderItem struct {
	Name         string        `json:"name,omitempty"`
	Quantity     *int          `json:"quantity,omitempty"`
	Amount       Amount        `json:"amount,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
}

type CustomField struct {
	Name   string `json:"name,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// HasPayerEmail verifica se o pedido tem um pagador identificável.
// Pedidos sem email não entram no resumo de vendas.
func (o Order) HasPayerEmail() bool {
	return o.Payer != nil && strings.Contains(o.Payer.Email, "@")
}

// Count retorna a quantidade do item, com o padrão histórico de 1
// quando o campo está ausente. Um zero explícito é respeitado.
func (i OrderItem) Count() int {
	if i.Quantity == nil {
		return 1
	}
	return *i.Quantity
}

// LineRevenue resolve o valor da linha: preço unitário vezes
// quantidade. Propaga o erro de formato/conversão do valor para o
// agregador decidir o que pular.
func (i OrderItem) LineRevenue() (decimal.Decimal, error) {
	unitPrice, err := i.Amount.UnitPrice()
	if err != nil {
		return decimal.Zero, err
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(i.Count()))), nil
}

type amountShape int

const (
	amountEmpty amountShape = iota
	amountStructured
	amountLegacy
	amountInvalid
)

// Amount é o valor monetário em centavos como veio da API. A API usa o
// formato estruturado {"total": N}, mas pedidos antigos trazem um
// inteiro puro; os dois são aceitos. Qualquer outro formato fica
// marcado como inválido aqui na borda e vira ErrUnexpectedShape na
// resolução, sem derrubar a decodificação dos itens vizinhos.
type Amount struct {
	shape amountShape
	raw   string
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '{' {
		var aux struct {
			Total json.Number `json:"total"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			a.shape = amountInvalid
			return nil
		}
		a.shape = amountStructured
		a.raw = aux.Total.String()
		if a.raw == "" {
			a.raw = "0"
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		a.shape = amountInvalid
		return nil
	}
	a.shape = amountLegacy
	a.raw = n.String()
	return nil
}

// IsLegacy indica o formato antigo (inteiro puro em vez de objeto).
func (a Amount) IsLegacy() bool {
	return a.shape == amountLegacy
}

// Cents retorna o total em centavos. Um Amount ausente vale zero.
func (a Amount) Cents() (int64, error) {
	switch a.shape {
	case amountEmpty:
		return 0, nil
	case amountInvalid:
		return 0, ErrUnexpectedShape
	}

	cents, err := strconv.ParseInt(a.raw, 10, 64)
	if err != nil {
		return 0, ErrAmountConversion
	}
	return cents, nil
}

// UnitPrice converte os centavos para um preço decimal com duas casas.
// Toda a aritmética monetária do motor usa decimal de ponto fixo;
// nunca float binário.
func (a Amount) UnitPrice() (decimal.Decimal, error) {
	switch a.shape {
	case amountEmpty:
		return decimal.Zero, nil
	case amountInvalid:
		return decimal.Zero, ErrUnexpectedShape
	}

	cents, err := decimal.NewFromString(a.raw)
	if err != nil {
		return decimal.Zero, ErrAmountConversion
	}
	return cents.Shift(-2), nil
}
