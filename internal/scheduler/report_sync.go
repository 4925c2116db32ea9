package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting"
)

// ReportSyncConfig representa a configuração do agendador de relatórios
type ReportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ReportSyncService gerencia o agendamento e execução da geração periódica de relatórios
type ReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              ReportSyncConfig
	reporter            reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewReportSyncService cria uma nova instância do serviço de sincronização de relatórios
func NewReportSyncService(reporter reporting.Reporter, appConfig *config.Config) *ReportSyncService {
	syncConfig := ReportSyncConfig{
		CronSchedule: appConfig.ReportSync.CronSchedule,
		SyncEnabled:  appConfig.ReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		reporter:    reporter,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *ReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Geração periódica de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncReport(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// syncReport executa o pipeline de relatório, garantindo que apenas
// uma execução aconteça por vez
func (s *ReportSyncService) syncReport(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatório já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando geração agendada de relatório")

	report, err := s.reporter.GenerateReport(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro na geração agendada de relatório")
		return
	}

	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"order_count": report.OrderCount,
		"duration":    time.Since(startTime).String(),
	}).Info("Geração agendada de relatório concluída")
}
