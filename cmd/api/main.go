package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce"
	"github.com/vfg2006/commerce-insights-api/infrastructure/integrator/commerce/commerceclient"
	"github.com/vfg2006/commerce-insights-api/infrastructure/repository"
	"github.com/vfg2006/commerce-insights-api/internal/api"
	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/scheduler"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/sponsoring"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A persistência é opcional: sem banco, o último relatório vive
	// apenas em memória
	var reportRepo repository.ReportRepository
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		reportRepo = repository.NewReportRepository(pgConn)
	} else {
		logrus.Info("Banco de dados desabilitado, relatórios não serão persistidos")
	}

	catalog, err := config.LoadCatalog(cfg.Report.CatalogFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o catálogo de produtos")
	}

	tokenManager := commerceclient.NewTokenManager(cfg.Commerce)
	commerceClient := commerceclient.NewClient(cfg.Commerce)
	commerceIntegrator := commerce.New(cfg, commerceClient, tokenManager)

	aggregator := aggregating.NewService()
	ranker := sponsoring.NewService(cfg.Report.ReferralProductName)

	reportService := reporting.NewService(
		commerceIntegrator,
		aggregator,
		ranker,
		catalog,
		reportRepo,
	)

	authenticator := authenticating.NewService(cfg.Auth)

	reportSyncService := scheduler.NewReportSyncService(reportService, cfg)

	if err := reportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	} else {
		logrus.Info("Agendador de relatórios iniciado com sucesso")
	}

	server, err := api.New(cfg, reportService, authenticator)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
