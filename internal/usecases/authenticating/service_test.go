package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/commerce-insights-api/internal/config"
)

func newTestService(t *testing.T) Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-correta"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(config.Auth{
		SecretKey:            "segredo-de-teste",
		OperatorUser:         "admin",
		OperatorPasswordHash: string(hash),
	})
}

func TestService_Login(t *testing.T) {
	service := newTestService(t)

	token, err := service.Login("admin", "senha-correta")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestService_Login_CredenciaisInvalidas(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		expected error
	}{
		{name: "senha errada", username: "admin", password: "senha-errada", expected: ErrInvalidCredentials},
		{name: "usuário desconhecido", username: "intruso", password: "senha-correta", expected: ErrInvalidCredentials},
		{name: "usuário vazio", username: "", password: "senha-correta", expected: ErrMissingRequiredData},
		{name: "senha vazia", username: "admin", password: "", expected: ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_ValidateToken_TokenAdulterado(t *testing.T) {
	service := newTestService(t)

	token, err := service.Login("admin", "senha-correta")
	require.NoError(t, err)

	_, err = service.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = service.ValidateToken("não é um token")
	assert.Error(t, err)
}

func TestService_ValidateToken_SegredoDiferente(t *testing.T) {
	service := newTestService(t)

	token, err := service.Login("admin", "senha-correta")
	require.NoError(t, err)

	other := NewService(config.Auth{
		SecretKey:    "outro-segredo",
		OperatorUser: "admin",
	})

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
