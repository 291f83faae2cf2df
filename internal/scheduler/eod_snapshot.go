package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// EODSnapshotService agenda o snapshot de fim de dia no fuso de referência.
// A captura é idempotente por dia calendário; repetir o gatilho no mesmo dia
// substitui o snapshot em vez de duplicá-lo.
type EODSnapshotService struct {
	scheduler              *gocron.Scheduler
	cfg                    *config.Config
	snapshotService        snapshotting.SnapshotService
	captureRunning         bool
	captureMutex           sync.Mutex
	lastCaptureStartedAt   time.Time
	lastCaptureCompletedAt time.Time
}

func NewEODSnapshotService(
	snapshotService snapshotting.SnapshotService,
	cfg *config.Config,
) *EODSnapshotService {
	scheduler := gocron.NewScheduler(cfg.ReferenceLocation())

	logrus.WithFields(logrus.Fields{
		"cron_schedule":      cfg.EODSnapshot.CronSchedule,
		"snapshot_enabled":   cfg.EODSnapshot.Enabled,
		"reference_timezone": cfg.App.ReferenceTimezone,
	}).Info("Configuração do agendador de snapshot de fim de dia carregada")

	return &EODSnapshotService{
		scheduler:       scheduler,
		cfg:             cfg,
		snapshotService: snapshotService,
	}
}

// Start inicia o agendador
func (s *EODSnapshotService) Start(ctx context.Context) error {
	if !s.cfg.EODSnapshot.Enabled {
		logrus.Info("Snapshot de fim de dia desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.EODSnapshot.CronSchedule).
		Info("Iniciando agendador de snapshot de fim de dia")

	_, err := s.scheduler.Cron(s.cfg.EODSnapshot.CronSchedule).Do(func() {
		s.runCapture(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de fim de dia: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshot de fim de dia")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *EODSnapshotService) runCapture(ctx context.Context) {
	s.captureMutex.Lock()
	if s.captureRunning {
		s.captureMutex.Unlock()
		logrus.Info("Captura de snapshot de fim de dia já em andamento, ignorando")
		return
	}
	s.captureRunning = true
	s.captureMutex.Unlock()

	s.lastCaptureStartedAt = time.Now()

	defer func() {
		s.captureMutex.Lock()
		s.captureRunning = false
		s.captureMutex.Unlock()
	}()

	if _, err := s.snapshotService.Capture(ctx, domain.SnapshotTagEOD); err != nil {
		logrus.WithError(err).Error("Erro ao capturar snapshot de fim de dia")
		return
	}

	s.lastCaptureCompletedAt = time.Now()
}

// TriggerManualCapture força a captura do snapshot de fim de dia.
// Repetir no mesmo dia substitui o snapshot existente.
func (s *EODSnapshotService) TriggerManualCapture() {
	s.captureMutex.Lock()
	if s.captureRunning {
		s.captureMutex.Unlock()
		logrus.Info("Captura de snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.captureMutex.Unlock()

	logrus.Info("Iniciando captura manual de snapshot de fim de dia")
	go s.runCapture(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *EODSnapshotService) GetStatus() map[string]any {
	return map[string]any{
		"snapshot_enabled":          s.cfg.EODSnapshot.Enabled,
		"snapshot_cron":             s.cfg.EODSnapshot.CronSchedule,
		"capture_running":           s.captureRunning,
		"reference_timezone":        s.cfg.App.ReferenceTimezone,
		"last_capture_started_at":   s.lastCaptureStartedAt,
		"last_capture_completed_at": s.lastCaptureCompletedAt,
	}
}
