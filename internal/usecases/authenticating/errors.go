package authenticating

import "errors"

// Erros de autenticação
var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrInvalidToken        = errors.New("token inválido")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
)
