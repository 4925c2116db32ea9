package commerce

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce/commerceclient"
	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

// TokenProvider entrega um token de acesso válido para as requisições.
type TokenProvider interface {
	GetValidToken() (string, error)
}

// OrderFetcher é a visão que os casos de uso têm do integrador: a
// coleção completa de pedidos, na ordem de paginação da API.
type OrderFetcher interface {
	FetchAll(ctx context.Context) ([]domain.Order, error)
}

type CommerceIntegrator struct {
	cfg    *config.Config
	client commerceclient.Client
	tokens TokenProvider
}

func New(cfg *config.Config, client commerceclient.Client, tokens TokenProvider) *CommerceIntegrator {
	return &CommerceIntegrator{
		cfg:    cfg,
		client: client,
		tokens: tokens,
	}
}

// FetchAll retorna todos os pedidos. Com o cache habilitado e dentro da
// idade máxima, o conteúdo do arquivo é devolvido tal qual, sem nenhuma
// chamada de rede. Caso contrário a busca é paginada sequencialmente;
// qualquer falha de página aborta tudo e descarta os resultados
// parciais, sem tocar no cache. O cache só é reescrito após uma busca
// completa bem-sucedida.
func (s *CommerceIntegrator) FetchAll(ctx context.Context) ([]domain.Order, error) {
	if s.cacheFresh() {
		logrus.Info("Usando o cache de pedidos")
		rawOrders, err := s.readCache()
		if err == nil {
			return parseOrders(rawOrders), nil
		}
		logrus.WithError(err).Warn("Cache de pedidos ilegível; buscando da API")
	}

	token, err := s.tokens.GetValidToken()
	if err != nil {
		return nil, err
	}

	logrus.Info("Buscando os pedidos da API de vendas...")

	page, err := s.client.ListOrders(ctx, token, 1)
	if err != nil {
		return nil, err
	}

	rawOrders := page.Orders
	for pageIndex := 2; pageIndex <= page.TotalPages; pageIndex++ {
		next, err := s.client.ListOrders(ctx, token, pageIndex)
		if err != nil {
			return nil, err
		}
		rawOrders = append(rawOrders, next.Orders...)
	}

	logrus.Infof("%d pedidos recebidos em %d página(s)", len(rawOrders), page.TotalPages)

	if s.cfg.Cache.Enabled {
		if err := s.writeCache(rawOrders); err != nil {
			logrus.WithError(err).Error("Erro ao gravar o cache de pedidos")
		}
	}

	return parseOrders(rawOrders), nil
}

// cacheFresh verifica se o artefato de cache existe e ainda está dentro
// da idade máxima configurada.
func (s *CommerceIntegrator) cacheFresh() bool {
	if !s.cfg.Cache.Enabled {
		return false
	}

	info, err := os.Stat(s.cfg.Cache.OrdersFile)
	if err != nil {
		return false
	}

	maxAge := time.Duration(s.cfg.Cache.MaxAgeHours) * time.Hour
	return time.Since(info.ModTime()) < maxAge
}

func (s *CommerceIntegrator) readCache() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.cfg.Cache.OrdersFile)
	if err != nil {
		return nil, err
	}

	var rawOrders []json.RawMessage
	if err := json.Unmarshal(data, &rawOrders); err != nil {
		return nil, errors.Wrap(err, "cache de pedidos corrompido")
	}
	return rawOrders, nil
}

// writeCache grava os pedidos brutos como vieram da API, substituindo
// qualquer conteúdo anterior.
func (s *CommerceIntegrator) writeCache(rawOrders []json.RawMessage) error {
	data, err := json.Marshal(rawOrders)
	if err != nil {
		return err
	}

	logrus.Infof("Gravando %d pedidos no cache...", len(rawOrders))
	return os.WriteFile(s.cfg.Cache.OrdersFile, data, 0o600)
}

// parseOrders decodifica os pedidos brutos. Um pedido indecifrável é
// ignorado com diagnóstico; os vizinhos não são afetados.
func parseOrders(rawOrders []json.RawMessage) []domain.Order {
	orders := make([]domain.Order, 0, len(rawOrders))
	for i, raw := range rawOrders {
		var order domain.Order
		if err := json.Unmarshal(raw, &order); err != nil {
			logrus.WithError(err).Errorf("Pedido na posição %d com formato inesperado, ignorado", i)
			continue
		}
		orders = append(orders, order)
	}
	return orders
}
