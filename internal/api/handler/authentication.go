package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/commerce-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/commerce-insights-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.Login(req.Username, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios", nil)
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação", nil)
	}
}
