package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/syncing"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// SalesforceSyncService gerencia o agendamento da sincronização horária com
// o Salesforce. A execução em si é o usecase de sincronização; o agendador é
// só o gatilho.
type SalesforceSyncService struct {
	scheduler           *gocron.Scheduler
	cfg                 *config.Config
	syncService         syncing.SyncService
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.SyncReport
}

func NewSalesforceSyncService(
	syncService syncing.SyncService,
	cfg *config.Config,
) *SalesforceSyncService {
	scheduler := gocron.NewScheduler(cfg.ReferenceLocation())

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.SalesforceSync.CronSchedule,
		"sync_enabled":  cfg.SalesforceSync.Enabled,
	}).Info("Configuração do agendador de sincronização do Salesforce carregada")

	return &SalesforceSyncService{
		scheduler:   scheduler,
		cfg:         cfg,
		syncService: syncService,
	}
}

// Start inicia o agendador
func (s *SalesforceSyncService) Start(ctx context.Context) error {
	if !s.cfg.SalesforceSync.Enabled {
		logrus.Info("Sincronização agendada com o Salesforce desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.SalesforceSync.CronSchedule).
		Info("Iniciando agendador de sincronização do Salesforce")

	_, err := s.scheduler.Cron(s.cfg.SalesforceSync.CronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do Salesforce: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do Salesforce")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SalesforceSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do Salesforce já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	s.lastSyncStartedAt = time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	report := s.syncService.Sync(ctx)

	s.lastSyncCompletedAt = time.Now()
	s.lastReport = report
}

// TriggerManualSync inicia manualmente uma sincronização com o Salesforce.
// Roda em goroutine própria, desacoplada do contexto da requisição que a
// disparou.
func (s *SalesforceSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do Salesforce já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual com o Salesforce")
	go s.runSync(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *SalesforceSyncService) GetStatus() map[string]any {
	status := map[string]any{
		"sync_enabled":           s.cfg.SalesforceSync.Enabled,
		"sync_cron":              s.cfg.SalesforceSync.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastReport != nil {
		status["last_report"] = s.lastReport
	}

	return status
}
