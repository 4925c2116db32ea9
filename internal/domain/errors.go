package domain

import (
	"errors"
	"fmt"
)

// Erros fatais: interrompem o pipeline inteiro. Nenhum relatório é
// produzido quando um deles ocorre.
var (
	ErrConfigInvalid  = errors.New("configuração inválida ou incompleta")
	ErrAuthFailed     = errors.New("autenticação na API de vendas falhou")
	ErrNetworkFailure = errors.New("falha de comunicação com a API de vendas")
)

// Erros recuperáveis: o item ou pedido ofensor é ignorado e o
// processamento continua.
var (
	ErrUnexpectedShape  = errors.New("formato de dado inesperado")
	ErrAmountConversion = errors.New("valor monetário inválido")
)

// OrderDataError carrega o contexto do pedido/item que não pôde ser
// processado.
type OrderDataError struct {
	Err     error
	OrderID int64
	Details string
}

func (e *OrderDataError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (pedido %d)", e.Err.Error(), e.Details, e.OrderID)
	}
	return fmt.Sprintf("%s (pedido %d)", e.Err.Error(), e.OrderID)
}

func (e *OrderDataError) Unwrap() error {
	return e.Err
}

// NewOrderDataError cria um erro recuperável com contexto do pedido
func NewOrderDataError(baseErr error, orderID int64, details string) *OrderDataError {
	return &OrderDataError{
		Err:     baseErr,
		OrderID: orderID,
		Details: details,
	}
}

// IsRecoverable indica se o erro pode ser absorvido pelo agregador que o
// encontrou (item/pedido ignorado) em vez de abortar a execução.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUnexpectedShape) ||
		errors.Is(err, ErrAmountConversion)
}
