package answering

import (
	"context"
	"testing"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/stretchr/testify/assert"
)

type aggregatorStub struct {
	liveTable     *domain.ARRTable
	liveErr       error
	snapshotTable *domain.ARRTable
}

func (a *aggregatorStub) LiveARRTable() (*domain.ARRTable, error) {
	return a.liveTable, a.liveErr
}

func (a *aggregatorStub) FromSnapshot(_ *domain.Snapshot) *domain.ARRTable {
	return a.snapshotTable
}

func (a *aggregatorStub) DashboardKPI() (*domain.DashboardKPI, error) {
	return nil, nil
}

func (a *aggregatorStub) ARRByAccount() (*domain.ARRByAccountResponse, error) {
	return nil, nil
}

func (a *aggregatorStub) ARRExamples() (*domain.ARRExamplesResponse, error) {
	return nil, nil
}

func (a *aggregatorStub) Bookings(_ string) ([]*domain.BookingsRow, error) {
	return nil, nil
}

type snapshotsStub struct {
	snapshot *domain.Snapshot
	err      error
}

func (s *snapshotsStub) Capture(_ context.Context, tag string) (*domain.Snapshot, error) {
	return nil, nil
}

func (s *snapshotsStub) LatestBefore(_ time.Time) (*domain.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *snapshotsStub) List(_ string, _ uint64) ([]*domain.SnapshotInfo, error) {
	return nil, nil
}

func newAnsweringService(aggregator *aggregatorStub, snapshots *snapshotsStub) *Service {
	return &Service{
		aggregator: aggregator,
		snapshots:  snapshots,
		cfg: &config.Config{
			App: config.App{ReferenceTimezone: "America/New_York"},
		},
	}
}

func TestService_Answer(t *testing.T) {
	ctx := context.Background()

	liveTable := &domain.ARRTable{
		GrandTotal: 13560,
		Rows:       []*domain.ARRRow{{AccountName: "Sunrise Recovery"}},
	}

	t.Run("Pergunta sem data responde com dados ao vivo", func(t *testing.T) {
		service := newAnsweringService(
			&aggregatorStub{liveTable: liveTable},
			&snapshotsStub{},
		)

		response, err := service.Answer(ctx, "What is our total contracted ARR?")

		assert.NoError(t, err)
		assert.Equal(t, "Total contracted ARR today is $13,560.00 across 1 accounts.", response.Answer)
		assert.Equal(t, []string{"live"}, response.Sources)
	})

	t.Run("Pergunta com data responde a partir do snapshot do período", func(t *testing.T) {
		snapshot := &domain.Snapshot{
			Tag:          domain.SnapshotTagEOD,
			SnapshotDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		}

		service := newAnsweringService(
			&aggregatorStub{snapshotTable: &domain.ARRTable{
				GrandTotal: 98765.43,
				Rows: []*domain.ARRRow{
					{AccountName: "Sunrise Recovery"},
					{AccountName: "Zenith Health"},
				},
			}},
			&snapshotsStub{snapshot: snapshot},
		)

		response, err := service.Answer(ctx, "What was our ARR in March 2025?")

		assert.NoError(t, err)
		assert.Equal(t, "Total contracted ARR as of March 2025 is $98,765.43 across 2 accounts.", response.Answer)
		assert.Equal(t, []string{"snapshot eod 2025-03-31"}, response.Sources)
	})

	t.Run("Sem snapshot no período a resposta é sem dados, nunca o snapshot vizinho", func(t *testing.T) {
		service := newAnsweringService(
			&aggregatorStub{},
			&snapshotsStub{err: snapshotting.ErrNoSnapshot},
		)

		response, err := service.Answer(ctx, "What was our ARR in March 2025?")

		assert.NoError(t, err)
		assert.Equal(t, "No data available for March 2025.", response.Answer)
		assert.Empty(t, response.Sources)
	})

	t.Run("Erro inesperado do repositório de snapshots é propagado", func(t *testing.T) {
		service := newAnsweringService(
			&aggregatorStub{},
			&snapshotsStub{err: assert.AnError},
		)

		response, err := service.Answer(ctx, "ARR in 03/2025")

		assert.Error(t, err)
		assert.Nil(t, response)
	})
}
