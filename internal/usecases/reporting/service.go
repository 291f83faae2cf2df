package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/quickbooks"
	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// SyncReportsResult resume uma captura de relatórios do QuickBooks
type SyncReportsResult struct {
	OK      bool     `json:"ok"`
	Saved   []string `json:"saved"`
	Failed  []string `json:"failed,omitempty"`
	Message string   `json:"message,omitempty"`
}

type ReportingService interface {
	SyncReports(ctx context.Context) *SyncReportsResult
	LatestReport(reportType string, before time.Time) (*domain.ReportSnapshot, error)
}

type Service struct {
	quickbooksService quickbooks.QuickBooksIntegrator
	reportRepo        repository.ReportSnapshotRepository
}

func NewService(
	quickbooksService quickbooks.QuickBooksIntegrator,
	reportRepo repository.ReportSnapshotRepository,
) ReportingService {
	return &Service{
		quickbooksService: quickbooksService,
		reportRepo:        reportRepo,
	}
}

// SyncReports captura e armazena os relatórios financeiros suportados.
// Cada relatório falha de forma independente; o resultado lista ambos os lados.
func (s *Service) SyncReports(ctx context.Context) *SyncReportsResult {
	result := &SyncReportsResult{OK: true}
	asOf := time.Now().UTC()

	reportTypes := []string{
		quickbooks.ReportProfitAndLoss,
		quickbooks.ReportBalanceSheet,
		quickbooks.ReportCashFlow,
	}

	var failures []string

	for _, reportType := range reportTypes {
		report, err := s.quickbooksService.FetchReport(ctx, reportType, asOf)
		if err != nil {
			result.OK = false
			result.Failed = append(result.Failed, reportType)
			failures = append(failures, reportType+": "+err.Error())
			logrus.WithError(err).WithField("report_type", reportType).
				Error("relatórios: falha ao buscar relatório do QuickBooks")
			continue
		}

		if err := s.reportRepo.Save(report); err != nil {
			result.OK = false
			result.Failed = append(result.Failed, reportType)
			failures = append(failures, reportType+": "+err.Error())
			logrus.WithError(err).WithField("report_type", reportType).
				Error("relatórios: falha ao gravar snapshot de relatório")
			continue
		}

		result.Saved = append(result.Saved, reportType)
	}

	if !result.OK {
		result.Message = strings.Join(failures, "; ")
	}

	return result
}

// LatestReport retorna o snapshot mais recente do tipo pedido com as_of <= before
func (s *Service) LatestReport(reportType string, before time.Time) (*domain.ReportSnapshot, error) {
	return s.reportRepo.LatestByType(reportType, before)
}
