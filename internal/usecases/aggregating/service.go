package aggregating

import (
	"sort"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/dazos/cfo-copilot-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AggregatingService interface {
	LiveARRTable() (*domain.ARRTable, error)
	FromSnapshot(snapshot *domain.Snapshot) *domain.ARRTable
	DashboardKPI() (*domain.DashboardKPI, error)
	ARRByAccount() (*domain.ARRByAccountResponse, error)
	ARRExamples() (*domain.ARRExamplesResponse, error)
	Bookings(category string) ([]*domain.BookingsRow, error)
}

type Service struct {
	accountRepo     repository.AccountRepository
	opportunityRepo repository.OpportunityRepository
	lineItemRepo    repository.LineItemRepository
	classifier      *classifying.Classifier
	catalog         *domain.ProductCatalog
	cfg             *config.Config
}

func NewService(
	accountRepo repository.AccountRepository,
	opportunityRepo repository.OpportunityRepository,
	lineItemRepo repository.LineItemRepository,
	classifier *classifying.Classifier,
	catalog *domain.ProductCatalog,
	cfg *config.Config,
) AggregatingService {
	return &Service{
		accountRepo:     accountRepo,
		opportunityRepo: opportunityRepo,
		lineItemRepo:    lineItemRepo,
		classifier:      classifier,
		catalog:         catalog,
		cfg:             cfg,
	}
}

// LiveARRTable monta a tabela conta x produto a partir do estado sincronizado
func (s *Service) LiveARRTable() (*domain.ARRTable, error) {
	accounts, opportunities, lines, err := s.loadState()
	if err != nil {
		return nil, err
	}

	return Build(s.classifier, s.catalog, accounts, opportunities, lines), nil
}

// FromSnapshot reprocessa a agregação sobre os dados brutos do snapshot.
// Snapshots antigos sem payload usam a tabela gravada na captura.
func (s *Service) FromSnapshot(snapshot *domain.Snapshot) *domain.ARRTable {
	if snapshot.Payload == nil {
		return snapshot.Table
	}

	return Build(
		s.classifier,
		s.catalog,
		snapshot.Payload.Accounts,
		snapshot.Payload.Opportunities,
		snapshot.Payload.LineItems,
	)
}

// Build é a agregação pura: oportunidades de renovação abertas viram linhas
// conta x produto com valores anualizados. O acúmulo interno é mensal (MRR)
// em decimal; a multiplicação por 12 acontece uma única vez, na saída.
func Build(
	classifier *classifying.Classifier,
	catalog *domain.ProductCatalog,
	accounts []*domain.Account,
	opportunities []*domain.Opportunity,
	lines []*domain.ProductLine,
) *domain.ARRTable {
	accountsByExternalID := make(map[string]*domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsByExternalID[acc.ExternalID] = acc
	}

	linesByOpportunity := make(map[string][]*domain.ProductLine, len(opportunities))
	for _, line := range lines {
		linesByOpportunity[line.OpportunityExternalID] = append(
			linesByOpportunity[line.OpportunityExternalID], line,
		)
	}

	type rowAccumulator struct {
		account   *domain.Account
		name      string
		byProduct map[string]decimal.Decimal
	}

	rowsByAccount := make(map[string]*rowAccumulator)
	unresolvedSet := make(map[string]struct{})

	for _, opp := range opportunities {
		if classifier.Classify(opp) != domain.CategoryARREligibleOpen {
			continue
		}

		for _, line := range linesByOpportunity[opp.ExternalID] {
			entry, ok := catalog.Resolve(line.ProductName)

			column := domain.OtherBucket
			factor := decimal.NewFromInt(1)

			if ok {
				// Exceções de negócio ficam fora de todas as somas,
				// inclusive do bucket "Other"
				if entry.ExcludedFromARR || !entry.IncludeInARR {
					continue
				}
				column = entry.Name
				factor = decimal.NewFromFloat(entry.MonthlyFactor)
			} else {
				unresolvedSet[line.ProductName] = struct{}{}
				logrus.WithFields(logrus.Fields{
					"product_name":      line.ProductName,
					"opportunity_sf_id": opp.ExternalID,
				}).Warn("agregação: produto fora do catálogo, somado no bucket Other")
			}

			mrr := line.MRR().Mul(factor)
			if mrr.IsZero() {
				continue
			}

			row, exists := rowsByAccount[opp.AccountExternalID]
			if !exists {
				row = &rowAccumulator{
					account:   accountsByExternalID[opp.AccountExternalID],
					name:      opp.AccountName,
					byProduct: make(map[string]decimal.Decimal),
				}
				if row.account != nil && row.account.Name != "" {
					row.name = row.account.Name
				}
				rowsByAccount[opp.AccountExternalID] = row
			}

			row.byProduct[column] = row.byProduct[column].Add(mrr)
		}
	}

	products := catalog.Columns()
	if len(unresolvedSet) > 0 {
		products = append(products, domain.OtherBucket)
	}

	annualize := func(mrr decimal.Decimal) float64 {
		arr, _ := mrr.Mul(decimal.NewFromInt(domain.ARRMultiplier)).Round(2).Float64()
		return arr
	}

	table := &domain.ARRTable{
		Products:       products,
		Rows:           make([]*domain.ARRRow, 0, len(rowsByAccount)),
		TotalByProduct: make(map[string]float64, len(products)),
	}

	totalByProduct := make(map[string]decimal.Decimal, len(products))
	grandTotal := decimal.Zero

	for accountExternalID, acc := range rowsByAccount {
		row := &domain.ARRRow{
			AccountID:   accountExternalID,
			AccountName: acc.name,
			Segment:     domain.DefaultSegment,
			ByProduct:   make(map[string]float64, len(acc.byProduct)),
		}
		if acc.account != nil {
			row.Segment = acc.account.SegmentOrDefault()
		}

		rowTotal := decimal.Zero
		for column, mrr := range acc.byProduct {
			row.ByProduct[column] = annualize(mrr)
			totalByProduct[column] = totalByProduct[column].Add(mrr)
			rowTotal = rowTotal.Add(mrr)
		}

		row.TotalARR = annualize(rowTotal)
		grandTotal = grandTotal.Add(rowTotal)

		table.Rows = append(table.Rows, row)
	}

	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].AccountName < table.Rows[j].AccountName
	})

	for column, mrr := range totalByProduct {
		table.TotalByProduct[column] = annualize(mrr)
	}
	table.GrandTotal = annualize(grandTotal)

	for name := range unresolvedSet {
		table.UnresolvedProducts = append(table.UnresolvedProducts, name)
	}
	sort.Strings(table.UnresolvedProducts)

	return table
}

// DashboardKPI resume o dashboard: ARR contratado, pipeline aberto e o
// horário da última sincronização com o Salesforce.
func (s *Service) DashboardKPI() (*domain.DashboardKPI, error) {
	accounts, opportunities, lines, err := s.loadState()
	if err != nil {
		return nil, err
	}

	table := Build(s.classifier, s.catalog, accounts, opportunities, lines)

	pipeline := decimal.Zero
	var lastSync *time.Time

	for _, opp := range opportunities {
		if s.classifier.Classify(opp) == domain.CategoryPipeline {
			pipeline = pipeline.Add(decimal.NewFromFloat(opp.Amount))
		}
		if lastSync == nil || opp.SyncedAt.After(*lastSync) {
			syncedAt := opp.SyncedAt
			lastSync = &syncedAt
		}
	}

	pipelineValue, _ := pipeline.Round(2).Float64()

	return &domain.DashboardKPI{
		ARR:                table.GrandTotal,
		Pipeline:           pipelineValue,
		SalesforceSyncedAt: lastSync,
	}, nil
}

// ARRByAccount retorna o rollup de ARR por conta, sem abertura por produto
func (s *Service) ARRByAccount() (*domain.ARRByAccountResponse, error) {
	accounts, opportunities, lines, err := s.loadState()
	if err != nil {
		return nil, err
	}

	table := Build(s.classifier, s.catalog, accounts, opportunities, lines)

	openRenewals := make(map[string]int)
	for _, opp := range opportunities {
		if s.classifier.Classify(opp) == domain.CategoryARREligibleOpen {
			openRenewals[opp.AccountExternalID]++
		}
	}

	response := &domain.ARRByAccountResponse{
		Accounts: make([]*domain.AccountARR, 0, len(table.Rows)),
		TotalARR: table.GrandTotal,
	}

	for _, row := range table.Rows {
		response.Accounts = append(response.Accounts, &domain.AccountARR{
			AccountID:        row.AccountID,
			AccountName:      row.AccountName,
			OpenRenewalCount: openRenewals[row.AccountID],
			ARR:              row.TotalARR,
		})
	}

	return response, nil
}

// ARRExamples separa o ARR de renovações abertas do de fechadas-ganhas,
// com exemplos de oportunidades em cada bucket.
func (s *Service) ARRExamples() (*domain.ARRExamplesResponse, error) {
	_, opportunities, lines, err := s.loadState()
	if err != nil {
		return nil, err
	}

	linesByOpportunity := make(map[string][]*domain.ProductLine)
	for _, line := range lines {
		linesByOpportunity[line.OpportunityExternalID] = append(
			linesByOpportunity[line.OpportunityExternalID], line,
		)
	}

	response := &domain.ARRExamplesResponse{
		OpenExamples:      make([]*domain.ARRExample, 0),
		ClosedWonExamples: make([]*domain.ARRExample, 0),
	}

	openTotal := decimal.Zero
	closedWonTotal := decimal.Zero

	for _, opp := range opportunities {
		category := s.classifier.Classify(opp)
		if category != domain.CategoryARREligibleOpen && category != domain.CategoryARREligibleClosedWon {
			continue
		}

		arr := opportunityARR(s.catalog, linesByOpportunity[opp.ExternalID])
		arrValue, _ := arr.Round(2).Float64()

		example := &domain.ARRExample{
			Name:      opp.Name,
			StageName: opp.StageRaw,
			ARR:       arrValue,
			SfID:      opp.ExternalID,
		}

		if category == domain.CategoryARREligibleOpen {
			openTotal = openTotal.Add(arr)
			response.OpenExamples = append(response.OpenExamples, example)
		} else {
			closedWonTotal = closedWonTotal.Add(arr)
			response.ClosedWonExamples = append(response.ClosedWonExamples, example)
		}
	}

	response.OpenRenewalARR, _ = openTotal.Round(2).Float64()
	response.ClosedWonRenewalARR, _ = closedWonTotal.Round(2).Float64()
	response.TotalRenewalARR = utils.RoundWithTwoDecimalPlace(
		response.OpenRenewalARR + response.ClosedWonRenewalARR,
	)

	return response, nil
}

// Bookings retorna a lista plana de oportunidades fechadas (e pipeline),
// opcionalmente filtrada por categoria.
func (s *Service) Bookings(category string) ([]*domain.BookingsRow, error) {
	_, opportunities, lines, err := s.loadState()
	if err != nil {
		return nil, err
	}

	linesByOpportunity := make(map[string][]*domain.ProductLine)
	for _, line := range lines {
		linesByOpportunity[line.OpportunityExternalID] = append(
			linesByOpportunity[line.OpportunityExternalID], line,
		)
	}

	cutoff := s.bookingsCutoff()

	rows := make([]*domain.BookingsRow, 0)

	for _, opp := range opportunities {
		oppCategory := s.classifier.Classify(opp)

		switch oppCategory {
		case domain.CategoryPipeline,
			domain.CategoryBookingsClosedWon,
			domain.CategoryBookingsClosedLost,
			domain.CategoryARREligibleClosedWon:
		default:
			continue
		}

		if category != "" && oppCategory.String() != category {
			continue
		}

		if cutoff != nil && opp.CloseDate != nil && opp.CloseDate.Before(*cutoff) {
			continue
		}

		arr, _ := opportunityARR(s.catalog, linesByOpportunity[opp.ExternalID]).Round(2).Float64()

		rows = append(rows, &domain.BookingsRow{
			Account:     opp.AccountName,
			Opportunity: opp.Name,
			Stage:       opp.StageRaw,
			RecordType:  opp.RecordTypeRaw,
			CloseDate:   opp.CloseDate,
			ARR:         arr,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		switch {
		case rows[i].CloseDate == nil:
			return false
		case rows[j].CloseDate == nil:
			return true
		default:
			return rows[i].CloseDate.After(*rows[j].CloseDate)
		}
	})

	return rows, nil
}

// opportunityARR soma o ARR das linhas elegíveis de uma oportunidade
func opportunityARR(catalog *domain.ProductCatalog, lines []*domain.ProductLine) decimal.Decimal {
	total := decimal.Zero

	for _, line := range lines {
		entry, ok := catalog.Resolve(line.ProductName)

		factor := decimal.NewFromInt(1)
		if ok {
			if entry.ExcludedFromARR || !entry.IncludeInARR {
				continue
			}
			factor = decimal.NewFromFloat(entry.MonthlyFactor)
		}

		total = total.Add(line.MRR().Mul(factor))
	}

	return total.Mul(decimal.NewFromInt(domain.ARRMultiplier))
}

// bookingsCutoff lê a política opcional de corte por data de fechamento
func (s *Service) bookingsCutoff() *time.Time {
	if s.cfg == nil || s.cfg.App.BookingsCutoffDate == "" {
		return nil
	}

	cutoff, err := time.Parse(time.DateOnly, s.cfg.App.BookingsCutoffDate)
	if err != nil {
		logrus.WithField("bookings_cutoff_date", s.cfg.App.BookingsCutoffDate).
			Warn("agregação: data de corte inválida, ignorada")
		return nil
	}

	return &cutoff
}

func (s *Service) loadState() ([]*domain.Account, []*domain.Opportunity, []*domain.ProductLine, error) {
	accounts, err := s.accountRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}

	opportunities, err := s.opportunityRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}

	lines, err := s.lineItemRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}

	return accounts, opportunities, lines, nil
}
