package snapshotting

import (
	"context"
	"sync"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/aggregating"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/dazos/cfo-copilot-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoSnapshot indica que não existe snapshot no período pedido
var ErrNoSnapshot = errors.New("nenhum snapshot disponível para o período")

type SnapshotService interface {
	Capture(ctx context.Context, tag string) (*domain.Snapshot, error)
	LatestBefore(at time.Time) (*domain.Snapshot, error)
	List(tag string, limit uint64) ([]*domain.SnapshotInfo, error)
}

type Service struct {
	snapshotRepo    repository.SnapshotRepository
	accountRepo     repository.AccountRepository
	opportunityRepo repository.OpportunityRepository
	lineItemRepo    repository.LineItemRepository
	classifier      *classifying.Classifier
	catalog         *domain.ProductCatalog
	cfg             *config.Config

	// Uma captura em voo por tag; capturas concorrentes na mesma tag
	// esperam em vez de intercalar escritas.
	mu       sync.Mutex
	tagLocks map[string]*sync.Mutex
}

func NewService(
	snapshotRepo repository.SnapshotRepository,
	accountRepo repository.AccountRepository,
	opportunityRepo repository.OpportunityRepository,
	lineItemRepo repository.LineItemRepository,
	classifier *classifying.Classifier,
	catalog *domain.ProductCatalog,
	cfg *config.Config,
) *Service {
	return &Service{
		snapshotRepo:    snapshotRepo,
		accountRepo:     accountRepo,
		opportunityRepo: opportunityRepo,
		lineItemRepo:    lineItemRepo,
		classifier:      classifier,
		catalog:         catalog,
		cfg:             cfg,
		tagLocks:        make(map[string]*sync.Mutex),
	}
}

// Capture congela o estado atual: agrega a tabela de ARR e grava o snapshot.
// Snapshots "eod" carregam também o payload bruto e são idempotentes por dia
// calendário no fuso de referência.
func (s *Service) Capture(ctx context.Context, tag string) (*domain.Snapshot, error) {
	lock := s.lockFor(tag)
	lock.Lock()
	defer lock.Unlock()

	accounts, err := s.accountRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "falha ao carregar contas para o snapshot")
	}

	opportunities, err := s.opportunityRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "falha ao carregar oportunidades para o snapshot")
	}

	lines, err := s.lineItemRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "falha ao carregar itens de linha para o snapshot")
	}

	table := aggregating.Build(s.classifier, s.catalog, accounts, opportunities, lines)

	now := time.Now()
	loc := s.cfg.ReferenceLocation()

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		ID:           id,
		Tag:          tag,
		SnapshotDate: utils.DateIn(now, loc),
		CapturedAt:   now.UTC(),
		Table:        table,
	}

	if tag == domain.SnapshotTagEOD {
		snapshot.Payload = &domain.SnapshotPayload{
			Accounts:      accounts,
			Opportunities: opportunities,
			LineItems:     lines,
		}
	}

	if err := s.snapshotRepo.Save(snapshot); err != nil {
		return nil, errors.Wrap(err, "falha ao gravar snapshot")
	}

	logrus.WithFields(logrus.Fields{
		"tag":           tag,
		"snapshot_date": snapshot.SnapshotDate.Format(time.DateOnly),
		"grand_total":   table.GrandTotal,
		"rows":          len(table.Rows),
	}).Info("snapshot capturado")

	return snapshot, nil
}

// LatestBefore retorna o snapshot mais recente com captura <= at.
// Nunca devolve um snapshot posterior ao instante pedido.
func (s *Service) LatestBefore(at time.Time) (*domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.LatestBefore(at)
	if err != nil {
		return nil, err
	}

	if snapshot == nil {
		return nil, ErrNoSnapshot
	}

	return snapshot, nil
}

func (s *Service) List(tag string, limit uint64) ([]*domain.SnapshotInfo, error) {
	return s.snapshotRepo.List(tag, limit)
}

func (s *Service) lockFor(tag string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.tagLocks[tag]
	if !ok {
		lock = &sync.Mutex{}
		s.tagLocks[tag] = lock
	}

	return lock
}
