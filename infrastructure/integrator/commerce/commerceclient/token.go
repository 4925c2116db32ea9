package commerceclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TokenResponse representa a resposta da API ao conceder um token
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RequestClientCredentialsToken obtém um token novo com as credenciais
// do cliente (grant client_credentials).
func RequestClientCredentialsToken(authURL, clientID, clientSecret string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", clientSecret)

	return requestToken(authURL, form)
}

// RequestRefreshToken troca um refresh token por um token novo
// (grant refresh_token).
func RequestRefreshToken(authURL, clientID, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token não pode ser vazio")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", clientID)
	form.Set("refresh_token", refreshToken)

	return requestToken(authURL, form)
}

func requestToken(authURL string, form url.Values) (*TokenResponse, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Post(authURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao requisitar o token")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta do token")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro na concessão do token. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, errors.Errorf("concessão do token falhou. Status: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta do token")
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("a API retornou um token vazio")
	}

	return &tokenResp, nil
}
