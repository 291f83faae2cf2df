package syncing

import (
	"context"
	"strings"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce"
	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/dazos/cfo-copilot-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Snapshotter é o colaborador opcional que grava um snapshot "sync" após
// cada sincronização bem-sucedida.
type Snapshotter interface {
	Capture(ctx context.Context, tag string) (*domain.Snapshot, error)
}

type SyncService interface {
	Sync(ctx context.Context) *domain.SyncReport
}

type Service struct {
	salesforceService salesforce.SalesforceIntegrator
	accountRepo       repository.AccountRepository
	opportunityRepo   repository.OpportunityRepository
	lineItemRepo      repository.LineItemRepository
	classifier        *classifying.Classifier
	snapshotter       Snapshotter
}

func NewService(
	salesforceService salesforce.SalesforceIntegrator,
	accountRepo repository.AccountRepository,
	opportunityRepo repository.OpportunityRepository,
	lineItemRepo repository.LineItemRepository,
	classifier *classifying.Classifier,
	snapshotter Snapshotter,
) SyncService {
	return &Service{
		salesforceService: salesforceService,
		accountRepo:       accountRepo,
		opportunityRepo:   opportunityRepo,
		lineItemRepo:      lineItemRepo,
		classifier:        classifier,
		snapshotter:       snapshotter,
	}
}

// Sync busca contas, oportunidades e itens de linha do Salesforce e grava
// tudo por upsert chaveado pelo id externo. Nunca remove linhas locais
// ausentes do retorno remoto. Falhas são sempre brandas: o relatório sai com
// ok=false e os contadores refletem o que foi efetivamente gravado.
func (s *Service) Sync(ctx context.Context) *domain.SyncReport {
	startedAt := time.Now()
	syncedAt := startedAt.UTC()
	report := &domain.SyncReport{OK: true}

	var failures []string
	fail := func(stage string, err error) {
		report.OK = false
		failures = append(failures, stage+": "+err.Error())
		logrus.WithError(err).Errorf("sincronização: falha em %s", stage)
	}

	// Contas
	accounts, err := s.salesforceService.FetchAccounts(ctx)
	if err != nil {
		fail("accounts fetch", err)
	}
	if len(accounts) > 0 {
		accounts = dedupeAccounts(accounts)
		if err := s.upsertAccounts(accounts, syncedAt); err != nil {
			fail("accounts upsert", err)
		} else {
			report.SyncedAccounts = len(accounts)
		}
	}

	// Oportunidades
	opportunities, err := s.salesforceService.FetchOpportunities(ctx)
	if err != nil {
		fail("opportunities fetch", err)
	}
	if len(opportunities) > 0 {
		opportunities = dedupeOpportunities(opportunities)
		if err := s.upsertOpportunities(opportunities, syncedAt); err != nil {
			fail("opportunities upsert", err)
		} else {
			report.SyncedOpportunities = len(opportunities)

			for _, opp := range opportunities {
				if s.classifier.Classify(opp) == domain.CategoryARREligibleOpen {
					report.RenewalOpportunitiesCount++
				}
			}
		}
	}

	// Itens de linha
	lines, err := s.salesforceService.FetchOpportunityLines(ctx)
	if err != nil {
		fail("line items fetch", err)
	}
	if len(lines) > 0 {
		lines = dedupeLines(lines)
		if err := s.upsertLines(lines, syncedAt); err != nil {
			fail("line items upsert", err)
		} else {
			report.SyncedLineItems = len(lines)
		}
	}

	if !report.OK {
		report.Error = strings.Join(failures, "; ")
	}

	logrus.WithFields(logrus.Fields{
		"ok":            report.OK,
		"accounts":      report.SyncedAccounts,
		"opportunities": report.SyncedOpportunities,
		"line_items":    report.SyncedLineItems,
		"renewals":      report.RenewalOpportunitiesCount,
		"duration_ms":   time.Since(startedAt).Milliseconds(),
	}).Info("sincronização com o Salesforce finalizada")

	// Snapshot pós-sincronização é melhor esforço: a falha não muda o relatório
	if report.OK && s.snapshotter != nil {
		if _, err := s.snapshotter.Capture(ctx, domain.SnapshotTagSync); err != nil {
			logrus.WithError(err).Warn("sincronização: falha ao capturar snapshot pós-sync")
		}
	}

	return report
}

func (s *Service) upsertAccounts(accounts []*domain.Account, syncedAt time.Time) error {
	existingIDs, err := s.accountRepo.ListExternalIDs()
	if err != nil {
		return err
	}

	for _, acc := range accounts {
		if id, ok := existingIDs[acc.ExternalID]; ok {
			acc.ID = id
		} else if acc.ID, err = utils.GenerateID(); err != nil {
			return err
		}
		acc.SyncedAt = syncedAt
	}

	return s.accountRepo.SaveOrUpdate(accounts)
}

func (s *Service) upsertOpportunities(opportunities []*domain.Opportunity, syncedAt time.Time) error {
	existingIDs, err := s.opportunityRepo.ListExternalIDs()
	if err != nil {
		return err
	}

	for _, opp := range opportunities {
		if id, ok := existingIDs[opp.ExternalID]; ok {
			opp.ID = id
		} else if opp.ID, err = utils.GenerateID(); err != nil {
			return err
		}
		opp.SyncedAt = syncedAt
	}

	return s.opportunityRepo.SaveOrUpdate(opportunities)
}

func (s *Service) upsertLines(lines []*domain.ProductLine, syncedAt time.Time) error {
	existingIDs, err := s.lineItemRepo.ListExternalIDs()
	if err != nil {
		return err
	}

	for _, line := range lines {
		if id, ok := existingIDs[line.ExternalID]; ok {
			line.ID = id
		} else if line.ID, err = utils.GenerateID(); err != nil {
			return err
		}
		line.SyncedAt = syncedAt
	}

	return s.lineItemRepo.SaveOrUpdate(lines)
}

// Id externo duplicado no mesmo retorno: o registro mais recente (última
// ocorrência) vence, com aviso no log.
func dedupeAccounts(accounts []*domain.Account) []*domain.Account {
	seen := make(map[string]int, len(accounts))
	result := make([]*domain.Account, 0, len(accounts))

	for _, acc := range accounts {
		if idx, ok := seen[acc.ExternalID]; ok {
			logrus.WithField("sf_id", acc.ExternalID).
				Warn("sincronização: conta duplicada no retorno remoto, mantendo a mais recente")
			result[idx] = acc
			continue
		}
		seen[acc.ExternalID] = len(result)
		result = append(result, acc)
	}

	return result
}

func dedupeOpportunities(opportunities []*domain.Opportunity) []*domain.Opportunity {
	seen := make(map[string]int, len(opportunities))
	result := make([]*domain.Opportunity, 0, len(opportunities))

	for _, opp := range opportunities {
		if idx, ok := seen[opp.ExternalID]; ok {
			logrus.WithField("sf_id", opp.ExternalID).
				Warn("sincronização: oportunidade duplicada no retorno remoto, mantendo a mais recente")
			result[idx] = opp
			continue
		}
		seen[opp.ExternalID] = len(result)
		result = append(result, opp)
	}

	return result
}

func dedupeLines(lines []*domain.ProductLine) []*domain.ProductLine {
	seen := make(map[string]int, len(lines))
	result := make([]*domain.ProductLine, 0, len(lines))

	for _, line := range lines {
		if idx, ok := seen[line.ExternalID]; ok {
			logrus.WithField("sf_id", line.ExternalID).
				Warn("sincronização: item de linha duplicado no retorno remoto, mantendo o mais recente")
			result[idx] = line
			continue
		}
		seen[line.ExternalID] = len(result)
		result = append(result, line)
	}

	return result
}
