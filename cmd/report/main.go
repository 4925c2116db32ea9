package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce"
	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce/commerceclient"
	"github.com/vfg2006/commerce-insights-api/infrastructure/repository"
	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/sponsoring"
	"github.com/vfg2006/commerce-insights-api/pkg/utils"
)

// Execução única do pipeline de relatório, pensada para uso em linha de
// comando: imprime as três visões agregadas e sai com código diferente
// de zero em caso de falha fatal.
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	catalog, err := config.LoadCatalog(cfg.Report.CatalogFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o catálogo de produtos")
	}

	tokenManager := commerceclient.NewTokenManager(cfg.Commerce)
	commerceClient := commerceclient.NewClient(cfg.Commerce)
	commerceIntegrator := commerce.New(cfg, commerceClient, tokenManager)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Persistência opcional: sem banco o relatório é só impresso
	var reportRepo repository.ReportRepository
	if cfg.Database.Enabled {
		pgConn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
		}
		defer pgConn.Close()

		reportRepo = repository.NewReportRepository(pgConn)
	}

	reportService := reporting.NewService(
		commerceIntegrator,
		aggregating.NewService(),
		sponsoring.NewService(cfg.Report.ReferralProductName),
		catalog,
		reportRepo,
	)

	report, err := reportService.GenerateReport(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar o relatório")
		os.Exit(1)
	}

	logrus.WithFields(logrus.Fields{
		"order_count": report.OrderCount,
		"best_seller": report.BestSeller,
	}).Info("Relatório gerado com sucesso")

	logrus.Infof("Vendas por produto:\n%s", utils.PrettyJson(report.Sales))
	logrus.Infof("Vendas por padrinho:\n%s", utils.PrettyJson(report.Sponsors))
	logrus.Infof("Vendas por dia:\n%s", utils.PrettyJson(report.Daily))
}
