package quickbooks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Tipos de relatório suportados pela API de reports do QuickBooks
const (
	ReportProfitAndLoss = "ProfitAndLoss"
	ReportBalanceSheet  = "BalanceSheet"
	ReportCashFlow      = "CashFlow"
)

type QuickBooksIntegrator interface {
	FetchReport(ctx context.Context, reportType string, asOf time.Time) (*domain.ReportSnapshot, error)
}

type Integrator struct {
	cfg        *config.Config
	HTTPClient *http.Client
}

func New(cfg *config.Config) *Integrator {
	return &Integrator{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.QuickBooks.Timeout,
		},
	}
}

// FetchReport busca um relatório financeiro bruto. O JSON retornado é
// armazenado sem interpretação; a leitura acontece na consulta histórica.
func (s *Integrator) FetchReport(ctx context.Context, reportType string, asOf time.Time) (*domain.ReportSnapshot, error) {
	params := url.Values{}
	params.Add("end_date", asOf.Format(time.DateOnly))

	reqURL := fmt.Sprintf(
		"%s/v3/company/%s/reports/%s?%s",
		s.cfg.QuickBooks.URL,
		s.cfg.QuickBooks.RealmID,
		reportType,
		params.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logrus.WithError(err).Error("quickbooks: erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.cfg.QuickBooks.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("quickbooks: erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quickbooks: status %d: %s", resp.StatusCode, body)
	}

	logrus.WithFields(logrus.Fields{
		"report_type": reportType,
		"as_of":       asOf.Format(time.DateOnly),
		"bytes":       len(body),
	}).Debug("quickbooks: report fetched")

	return &domain.ReportSnapshot{
		ReportType: reportType,
		AsOf:       asOf,
		Data:       body,
	}, nil
}
