package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

type syncServiceStub struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{}
	report  *domain.SyncReport
	started chan struct{}
}

func (s *syncServiceStub) Sync(_ context.Context) *domain.SyncReport {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.started != nil {
		close(s.started)
		s.started = nil
	}
	if s.block != nil {
		<-s.block
	}

	if s.report != nil {
		return s.report
	}
	return &domain.SyncReport{OK: true}
}

func (s *syncServiceStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newSchedulerConfig() *config.Config {
	return &config.Config{
		App: config.App{ReferenceTimezone: "America/New_York"},
		SalesforceSync: config.SalesforceSync{
			CronSchedule: "59 * * * *",
			Enabled:      false,
		},
	}
}

func TestSalesforceSyncService_runSync(t *testing.T) {
	t.Run("Execução registra horários e relatório", func(t *testing.T) {
		stub := &syncServiceStub{
			report: &domain.SyncReport{OK: true, SyncedAccounts: 3},
		}
		service := NewSalesforceSyncService(stub, newSchedulerConfig())

		service.runSync(context.Background())

		assert.Equal(t, 1, stub.callCount())
		assert.False(t, service.lastSyncStartedAt.IsZero())
		assert.False(t, service.lastSyncCompletedAt.IsZero())
		assert.Equal(t, 3, service.lastReport.SyncedAccounts)
		assert.False(t, service.syncRunning)
	})

	t.Run("Execução concorrente é ignorada enquanto outra roda", func(t *testing.T) {
		stub := &syncServiceStub{
			block:   make(chan struct{}),
			started: make(chan struct{}),
		}
		service := NewSalesforceSyncService(stub, newSchedulerConfig())

		firstStarted := stub.started
		done := make(chan struct{})
		go func() {
			service.runSync(context.Background())
			close(done)
		}()

		<-firstStarted

		// Segunda chamada encontra syncRunning=true e retorna sem sincronizar
		service.runSync(context.Background())
		assert.Equal(t, 1, stub.callCount())

		close(stub.block)
		<-done

		assert.Equal(t, 1, stub.callCount())
	})
}

func TestSalesforceSyncService_GetStatus(t *testing.T) {
	stub := &syncServiceStub{}
	cfg := newSchedulerConfig()
	service := NewSalesforceSyncService(stub, cfg)

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "59 * * * *", status["sync_cron"])
	assert.Equal(t, false, status["sync_running"])
	assert.NotContains(t, status, "last_report")

	service.runSync(context.Background())

	status = service.GetStatus()
	assert.Contains(t, status, "last_report")
	assert.WithinDuration(t, time.Now(), status["last_sync_completed_at"].(time.Time), time.Minute)
}

func TestSalesforceSyncService_Start(t *testing.T) {
	t.Run("Desabilitado por configuração não agenda nada", func(t *testing.T) {
		stub := &syncServiceStub{}
		service := NewSalesforceSyncService(stub, newSchedulerConfig())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := service.Start(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, stub.callCount())
	})
}
