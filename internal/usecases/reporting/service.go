package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce"
	"github.com/vfg2006/commerce-insights-api/infrastructure/repository"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/sponsoring"
	"github.com/vfg2006/commerce-insights-api/pkg/log"
)

// Reporter orquestra o pipeline completo: token, pedidos e as três
// passadas de agregação, cada uma independente sobre a mesma coleção.
type Reporter interface {
	GenerateReport(ctx context.Context) (*domain.Report, error)
	Latest(ctx context.Context) (*domain.Report, error)
}

type Service struct {
	fetcher    commerce.OrderFetcher
	aggregator aggregating.Aggregator
	ranker     sponsoring.Ranker
	catalog    domain.Catalog
	reportRepo repository.ReportRepository // nil quando a persistência está desabilitada

	mu     sync.RWMutex
	latest *domain.Report
}

func NewService(
	fetcher commerce.OrderFetcher,
	aggregator aggregating.Aggregator,
	ranker sponsoring.Ranker,
	catalog domain.Catalog,
	reportRepo repository.ReportRepository,
) *Service {
	return &Service{
		fetcher:    fetcher,
		aggregator: aggregator,
		ranker:     ranker,
		catalog:    catalog,
		reportRepo: reportRepo,
	}
}

// GenerateReport executa o pipeline e retorna o instantâneo novo. Erros
// de configuração, autenticação e rede abortam a execução inteira; os
// recuperáveis já foram absorvidos dentro de cada agregador.
func (s *Service) GenerateReport(ctx context.Context) (*domain.Report, error) {
	orders, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar os pedidos")
	}

	log.ForContext(ctx).Infof("Calculando os agregados de %d pedidos...", len(orders))

	summary := s.aggregator.SalesSummary(orders, s.catalog)
	daily := s.aggregator.DailySales(orders)
	sponsors := s.ranker.SponsorSales(orders)
	bestSeller, _, _ := s.ranker.BestSeller(sponsors)

	report := &domain.Report{
		GeneratedAt: time.Now(),
		OrderCount:  len(orders),
		Sales:       summary,
		Sponsors:    sponsors,
		BestSeller:  bestSeller,
		Daily:       daily,
	}

	if s.reportRepo != nil {
		if err := s.reportRepo.SaveOrUpdate(ctx, report); err != nil {
			return nil, errors.Wrap(err, "erro ao persistir o relatório")
		}
		log.ForContext(ctx).Info("Relatório persistido com sucesso")
	}

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	return report, nil
}

// Latest retorna o último instantâneo gerado nesta execução ou, na
// falta dele, o mais recente persistido. Retorna nil quando nenhum
// relatório existe ainda.
func (s *Service) Latest(ctx context.Context) (*domain.Report, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest != nil {
		return latest, nil
	}

	if s.reportRepo == nil {
		return nil, nil
	}

	report, err := s.reportRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	if report != nil {
		s.mu.Lock()
		s.latest = report
		s.mu.Unlock()
	}

	return report, nil
}
