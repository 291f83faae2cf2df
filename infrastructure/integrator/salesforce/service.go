package salesforce

import (
	"context"
	"time"

	sfdomain "github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/domain"
	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/sfclient"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Formato de timestamp usado pela API REST do Salesforce
const sfDateTimeLayout = "2006-01-02T15:04:05.000-0700"

type SalesforceIntegrator interface {
	FetchAccounts(ctx context.Context) ([]*domain.Account, error)
	FetchOpportunities(ctx context.Context) ([]*domain.Opportunity, error)
	FetchOpportunityLines(ctx context.Context) ([]*domain.ProductLine, error)
}

type Integrator struct {
	cfg    *config.Config
	Client sfclient.Client
}

func New(cfg *config.Config, client sfclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchAccounts busca todas as contas do Salesforce. Em falha parcial de
// paginação, as contas já obtidas são retornadas junto com o erro.
func (s *Integrator) FetchAccounts(ctx context.Context) ([]*domain.Account, error) {
	records, err := s.Client.QueryAccounts(ctx)
	if err != nil {
		logrus.WithError(err).WithField("fetched", len(records)).
			Error("salesforce: failed to fetch accounts")
	}

	accounts := make([]*domain.Account, 0, len(records))
	for i := range records {
		accounts = append(accounts, convertAccount(&records[i]))
	}

	logrus.WithField("count", len(accounts)).Debug("salesforce: accounts fetched")

	return accounts, err
}

// FetchOpportunities busca todas as oportunidades do Salesforce
func (s *Integrator) FetchOpportunities(ctx context.Context) ([]*domain.Opportunity, error) {
	records, err := s.Client.QueryOpportunities(ctx)
	if err != nil {
		logrus.WithError(err).WithField("fetched", len(records)).
			Error("salesforce: failed to fetch opportunities")
	}

	opportunities := make([]*domain.Opportunity, 0, len(records))
	for i := range records {
		opportunities = append(opportunities, convertOpportunity(&records[i]))
	}

	logrus.WithField("count", len(opportunities)).Debug("salesforce: opportunities fetched")

	return opportunities, err
}

// FetchOpportunityLines busca todos os itens de linha de oportunidade
func (s *Integrator) FetchOpportunityLines(ctx context.Context) ([]*domain.ProductLine, error) {
	records, err := s.Client.QueryLineItems(ctx)
	if err != nil {
		logrus.WithError(err).WithField("fetched", len(records)).
			Error("salesforce: failed to fetch opportunity line items")
	}

	lines := make([]*domain.ProductLine, 0, len(records))
	for i := range records {
		lines = append(lines, convertLineItem(&records[i]))
	}

	logrus.WithField("count", len(lines)).Debug("salesforce: line items fetched")

	return lines, err
}

func convertAccount(record *sfdomain.AccountRecord) *domain.Account {
	return &domain.Account{
		ExternalID:        record.ID,
		Name:              record.Name,
		Type:              record.Type,
		Status:            record.Status,
		Industry:          record.Industry,
		Segment:           record.Segment,
		AnnualRevenue:     record.AnnualRevenue,
		NumberOfEmployees: record.NumberOfEmployees,
		BillingCountry:    record.BillingCountry,
		BillingCity:       record.BillingCity,
		BillingState:      record.BillingState,
		Phone:             record.Phone,
		Website:           record.Website,
		CreatedDate:       parseSFDateTime(record.CreatedDate),
	}
}

func convertOpportunity(record *sfdomain.OpportunityRecord) *domain.Opportunity {
	opp := &domain.Opportunity{
		ExternalID:      record.ID,
		Name:            record.Name,
		StageRaw:        record.StageName,
		OpportunityType: record.Type,
		CloseDate:       parseSFDate(record.CloseDate),
		CreatedDate:     parseSFDateTime(record.CreatedDate),
	}

	if record.Amount != nil {
		opp.Amount = *record.Amount
	}

	if record.RecordType != nil {
		opp.RecordTypeRaw = record.RecordType.Name
	}

	if record.Account != nil {
		opp.AccountExternalID = record.Account.ID
		opp.AccountName = record.Account.Name
	}

	return opp
}

func convertLineItem(record *sfdomain.LineItemRecord) *domain.ProductLine {
	line := &domain.ProductLine{
		ExternalID:            record.ID,
		OpportunityExternalID: record.OpportunityID,
		ProductName:           record.ProductName(),
	}

	if record.Quantity != nil {
		line.Quantity = *record.Quantity
	}
	if record.UnitPrice != nil {
		line.UnitPrice = *record.UnitPrice
	}
	if record.TotalPrice != nil {
		line.TotalPrice = *record.TotalPrice
	}

	return line
}

func parseSFDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}

	t, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		logrus.WithField("value", *value).Warn("salesforce: data inválida ignorada")
		return nil
	}

	return &t
}

func parseSFDateTime(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}

	t, err := time.Parse(sfDateTimeLayout, *value)
	if err != nil {
		// Alguns campos vêm só com a data
		return parseSFDate(value)
	}

	return &t
}
