package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro padronizados da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_002" // Token inválido
	ErrExpiredToken       = "AUTH_003" // Token expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes

	// Erros do servidor (5000-5999)
	ErrInternalServer     = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation  = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService    = "SRV_003" // Erro em serviço externo
	ErrReportNotAvailable = "SRV_004" // Nenhum relatório gerado ainda
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrReportNotAvailable:  http.StatusNotFound,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
