package commerceclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

// StoredToken é o registro único persistido no arquivo de token.
// expires_at é um instante absoluto em segundos de época, calculado no
// momento da gravação.
type StoredToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
}

// TokenManager gerencia o ciclo de vida do token de acesso da API de
// vendas: reutiliza o token persistido enquanto válido, renova pelo
// refresh token quando expira e cai para o grant de credenciais quando
// a renovação falha.
type TokenManager struct {
	cfg config.Commerce
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg config.Commerce) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// GetValidToken retorna um token de acesso válido. A ordem é: token
// persistido ainda válido (sem rede), grant refresh_token, grant
// client_credentials. Se os dois grants falharem o erro é fatal; não há
// nova tentativa.
func (tm *TokenManager) GetValidToken() (string, error) {
	stored, err := tm.load()
	if err != nil {
		logrus.WithError(err).Warn("Arquivo de token ilegível; obtendo um token novo")
	}

	if stored != nil {
		if time.Now().Unix() < stored.ExpiresAt {
			logrus.Debug("Usando o access token persistido")
			return stored.AccessToken, nil
		}

		if stored.RefreshToken != "" {
			logrus.Info("Token expirado; renovando com o refresh token...")
			tokenResp, err := RequestRefreshToken(tm.cfg.AuthURL, tm.cfg.ClientID, stored.RefreshToken)
			if err == nil {
				return tm.save(tokenResp)
			}
			logrus.WithError(err).Warn("Renovação falhou; tentando o grant de credenciais")
		}
	}

	logrus.Info("Obtendo um access token novo...")
	tokenResp, err := RequestClientCredentialsToken(tm.cfg.AuthURL, tm.cfg.ClientID, tm.cfg.ClientSecret)
	if err != nil {
		return "", errors.Wrap(domain.ErrAuthFailed, err.Error())
	}

	return tm.save(tokenResp)
}

func (tm *TokenManager) load() (*StoredToken, error) {
	data, err := os.ReadFile(tm.cfg.TokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stored StoredToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// save persiste o token de forma atômica (arquivo temporário + rename)
// antes de devolvê-lo.
func (tm *TokenManager) save(tokenResp *TokenResponse) (string, error) {
	stored := StoredToken{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + tokenResp.ExpiresIn,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar o token")
	}

	tmpFile := tm.cfg.TokenFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return "", errors.Wrapf(err, "erro ao gravar o arquivo de token '%s'", tmpFile)
	}

	if err := os.Rename(tmpFile, tm.cfg.TokenFile); err != nil {
		return "", errors.Wrapf(err, "erro ao substituir o arquivo de token '%s'", tm.cfg.TokenFile)
	}

	logrus.Infof("Token persistido em %s. Expira em: %s",
		filepath.Base(tm.cfg.TokenFile),
		time.Unix(stored.ExpiresAt, 0).Format(time.RFC3339))

	return stored.AccessToken, nil
}
