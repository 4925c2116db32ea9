package commerceclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

// ListOrders busca uma página de pedidos da organização. A primeira
// página revela o total de páginas; as seguintes são pedidas em ordem
// estritamente crescente pelo integrador.
func (c *CommerceClient) ListOrders(ctx context.Context, token string, pageIndex int) (OrdersPage, error) {
	var page OrdersPage

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.cfg.APIBaseURL)
	if err != nil {
		return page, errors.Wrap(err, "erro ao analisar a URL base")
	}
	endpoint.Path = path.Join(endpoint.Path, fmt.Sprintf("/organizations/%s/orders", c.cfg.OrganizationSlug))

	query := endpoint.Query()
	query.Set("pageIndex", strconv.Itoa(pageIndex))
	query.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	query.Set("withDetails", "true")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return page, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return page, errors.Wrapf(domain.ErrNetworkFailure, "erro ao executar a requisição da página %d: %v", pageIndex, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return page, errors.Wrapf(domain.ErrNetworkFailure, "requisição da página %d falhou com status: %s", pageIndex, resp.Status)
	}

	var response struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return page, errors.Wrapf(domain.ErrNetworkFailure, "erro ao decodificar a página %d: %v", pageIndex, err)
	}

	page.Orders = response.Data
	page.TotalPages = response.Pagination.TotalPages
	return page, nil
}
