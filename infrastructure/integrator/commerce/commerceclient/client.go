package commerceclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/commerce-insights-api/internal/config"
)

type Client interface {
	ListOrders(ctx context.Context, token string, pageIndex int) (OrdersPage, error)
}

// OrdersPage é uma página de pedidos como retornada pela API. Os
// pedidos ficam como JSON bruto para o cache poder gravá-los byte a
// byte como vieram.
type OrdersPage struct {
	Orders     []json.RawMessage
	TotalPages int
}

type CommerceClient struct {
	httpClient *http.Client
	cfg        config.Commerce
}

func NewClient(cfg config.Commerce) Client {
	return &CommerceClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg,
	}
}
