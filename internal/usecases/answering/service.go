package answering

import (
	"context"
	"fmt"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/aggregating"
	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/dazos/cfo-copilot-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AnsweringService interface {
	Answer(ctx context.Context, question string) (*domain.CopilotResponse, error)
}

type Service struct {
	aggregator aggregating.AggregatingService
	snapshots  snapshotting.SnapshotService
	cfg        *config.Config
}

func NewService(
	aggregator aggregating.AggregatingService,
	snapshots snapshotting.SnapshotService,
	cfg *config.Config,
) AnsweringService {
	return &Service{
		aggregator: aggregator,
		snapshots:  snapshots,
		cfg:        cfg,
	}
}

// Answer responde perguntas de ARR em linguagem natural. Perguntas com
// expressão de data rodam a agregação sobre o snapshot do período; sem
// expressão, sobre os dados ao vivo. Sem snapshot no período pedido, a
// resposta é explicitamente "sem dados", nunca o snapshot mais próximo.
func (s *Service) Answer(ctx context.Context, question string) (*domain.CopilotResponse, error) {
	loc := s.cfg.ReferenceLocation()

	resolved, hasDate := ResolveTimeExpression(question, time.Now(), loc)
	if !hasDate {
		table, err := s.aggregator.LiveARRTable()
		if err != nil {
			return nil, errors.Wrap(err, "falha ao montar a tabela de ARR ao vivo")
		}

		return &domain.CopilotResponse{
			Answer:  formatAnswer(table, "today"),
			Sources: []string{"live"},
		}, nil
	}

	snapshot, err := s.snapshots.LatestBefore(resolved.At)
	if err != nil {
		if errors.Is(err, snapshotting.ErrNoSnapshot) {
			logrus.WithFields(logrus.Fields{
				"question":    question,
				"resolved_at": resolved.At.Format(time.RFC3339),
			}).Info("copilot: sem snapshot para o período pedido")

			return &domain.CopilotResponse{
				Answer: fmt.Sprintf("No data available for %s.", resolved.Label),
			}, nil
		}
		return nil, errors.Wrap(err, "falha ao buscar snapshot")
	}

	table := s.aggregator.FromSnapshot(snapshot)

	source := fmt.Sprintf(
		"snapshot %s %s",
		snapshot.Tag,
		snapshot.SnapshotDate.Format(time.DateOnly),
	)

	return &domain.CopilotResponse{
		Answer:  formatAnswer(table, "as of "+resolved.Label),
		Sources: []string{source},
	}, nil
}

func formatAnswer(table *domain.ARRTable, period string) string {
	total := utils.FormatMoney(decimal.NewFromFloat(table.GrandTotal))

	return fmt.Sprintf(
		"Total contracted ARR %s is %s across %d accounts.",
		period,
		total,
		len(table.Rows),
	)
}
