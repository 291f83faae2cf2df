package aggregating

import (
	"testing"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/repository/mocks"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestBuild(t *testing.T) {
	classifier := classifying.New()
	catalog := domain.DefaultProductCatalog()

	accounts := []*domain.Account{
		{
			ID:         "aaaaaa",
			ExternalID: "001A",
			Name:       "Sunrise Recovery",
			Segment:    stringPtr("Enterprise"),
		},
	}

	t.Run("Renovação aberta vira linha conta x produto com ARR anualizado", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006A",
				Name:              "Sunrise Recovery - Renewal",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006A", ProductName: "Dazos CRM Platform (Includes 5 Seats)", TotalPrice: 830},
			{OpportunityExternalID: "006A", ProductName: "Additional CRM Seats", TotalPrice: 300},
			// Excluída do ARR: não soma em coluna alguma
			{OpportunityExternalID: "006A", ProductName: "iVerify Monthly Credits", UnitPrice: 100, Quantity: 2},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Len(t, table.Rows, 1)

		row := table.Rows[0]
		assert.Equal(t, "Sunrise Recovery", row.AccountName)
		assert.Equal(t, "Enterprise", row.Segment)
		assert.Equal(t, 9960.0, row.ByProduct["Dazos CRM Platform (Includes 5 Seats)"])
		assert.Equal(t, 3600.0, row.ByProduct["Additional CRM Seats"])

		// MRR 1130 -> ARR 13560, multiplicado uma única vez na saída
		assert.Equal(t, 13560.0, row.TotalARR)
		assert.Equal(t, 13560.0, table.GrandTotal)
		assert.Empty(t, table.UnresolvedProducts)
		assert.NotContains(t, table.Products, domain.OtherBucket)
	})

	t.Run("Oportunidades fora de renovação aberta não entram na tabela", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006B",
				StageRaw:          "Closed Won",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
			{
				ExternalID:        "006C",
				StageRaw:          "Proposal",
				RecordTypeRaw:     "New Business",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006B", ProductName: "Premium Support", TotalPrice: 500},
			{OpportunityExternalID: "006C", ProductName: "Premium Support", TotalPrice: 700},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Empty(t, table.Rows)
		assert.Equal(t, 0.0, table.GrandTotal)
	})

	t.Run("Produto excluído do ARR não soma em lugar nenhum, nem no Other", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006D",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006D", ProductName: "Premium Support", TotalPrice: 100},
			{OpportunityExternalID: "006D", ProductName: "iVerify Monthly Credits", TotalPrice: 9999},
			{OpportunityExternalID: "006D", ProductName: "Acme - Renewal - Kipu API", TotalPrice: 500},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Len(t, table.Rows, 1)
		assert.Equal(t, 1200.0, table.GrandTotal)
		assert.Empty(t, table.UnresolvedProducts)
		assert.NotContains(t, table.Products, domain.OtherBucket)
	})

	t.Run("Produto fora do catálogo cai no bucket Other e é listado", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006E",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006E", ProductName: "Custom Implementation Fee", TotalPrice: 250},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Contains(t, table.Products, domain.OtherBucket)
		assert.Equal(t, 3000.0, table.Rows[0].ByProduct[domain.OtherBucket])
		assert.Equal(t, []string{"Custom Implementation Fee"}, table.UnresolvedProducts)
	})

	t.Run("Conta sem segmento usa o segmento padrão e linhas saem ordenadas", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006F",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001Z",
				AccountName:       "Zenith Health",
			},
			{
				ExternalID:        "006G",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006F", ProductName: "Premium Support", TotalPrice: 100},
			{OpportunityExternalID: "006G", ProductName: "Premium Support", TotalPrice: 200},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Len(t, table.Rows, 2)
		assert.Equal(t, "Sunrise Recovery", table.Rows[0].AccountName)
		assert.Equal(t, "Zenith Health", table.Rows[1].AccountName)

		// 001Z não está na lista de contas sincronizadas
		assert.Equal(t, domain.DefaultSegment, table.Rows[1].Segment)
		assert.Equal(t, "Enterprise", table.Rows[0].Segment)
	})

	t.Run("Linhas com MRR zero são ignoradas", func(t *testing.T) {
		opportunities := []*domain.Opportunity{
			{
				ExternalID:        "006H",
				StageRaw:          "Negotiation",
				RecordTypeRaw:     "Renewal",
				AccountExternalID: "001A",
				AccountName:       "Sunrise Recovery",
			},
		}
		lines := []*domain.ProductLine{
			{OpportunityExternalID: "006H", ProductName: "Premium Support", TotalPrice: 0},
		}

		table := Build(classifier, catalog, accounts, opportunities, lines)

		assert.Empty(t, table.Rows)
	})
}

func TestService_DashboardKPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockOpportunityRepo := mocks.NewMockOpportunityRepository(ctrl)
	mockLineItemRepo := mocks.NewMockLineItemRepository(ctrl)

	service := &Service{
		accountRepo:     mockAccountRepo,
		opportunityRepo: mockOpportunityRepo,
		lineItemRepo:    mockLineItemRepo,
		classifier:      classifying.New(),
		catalog:         domain.DefaultProductCatalog(),
	}

	firstSync := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	lastSync := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	mockAccountRepo.EXPECT().List().Return(nil, nil)
	mockOpportunityRepo.EXPECT().List().Return([]*domain.Opportunity{
		{
			ExternalID:        "006A",
			StageRaw:          "Negotiation",
			RecordTypeRaw:     "Renewal",
			AccountExternalID: "001A",
			AccountName:       "Sunrise Recovery",
			SyncedAt:          firstSync,
		},
		{
			ExternalID:    "006B",
			StageRaw:      "Proposal",
			RecordTypeRaw: "New Business",
			Amount:        24000,
			SyncedAt:      lastSync,
		},
		{
			ExternalID:    "006C",
			StageRaw:      "Qualification",
			RecordTypeRaw: "Expansion",
			Amount:        6000,
			SyncedAt:      firstSync,
		},
	}, nil)
	mockLineItemRepo.EXPECT().List().Return([]*domain.ProductLine{
		{OpportunityExternalID: "006A", ProductName: "Premium Support", TotalPrice: 100},
	}, nil)

	kpi, err := service.DashboardKPI()

	assert.NoError(t, err)
	assert.Equal(t, 1200.0, kpi.ARR)

	// Pipeline soma o Amount das oportunidades abertas de crescimento
	assert.Equal(t, 30000.0, kpi.Pipeline)
	assert.Equal(t, lastSync, *kpi.SalesforceSyncedAt)
}

func TestService_Bookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockOpportunityRepo := mocks.NewMockOpportunityRepository(ctrl)
	mockLineItemRepo := mocks.NewMockLineItemRepository(ctrl)

	service := &Service{
		accountRepo:     mockAccountRepo,
		opportunityRepo: mockOpportunityRepo,
		lineItemRepo:    mockLineItemRepo,
		classifier:      classifying.New(),
		catalog:         domain.DefaultProductCatalog(),
		cfg:             &config.Config{},
	}

	older := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	opportunities := []*domain.Opportunity{
		{
			ExternalID:    "006A",
			Name:          "Acme - New Business",
			StageRaw:      "Closed Won",
			RecordTypeRaw: "New Business",
			AccountName:   "Acme",
			CloseDate:     timePtr(older),
		},
		{
			ExternalID:    "006B",
			Name:          "Beta - Expansion",
			StageRaw:      "Closed Lost",
			RecordTypeRaw: "Expansion",
			AccountName:   "Beta",
			CloseDate:     timePtr(newer),
		},
		{
			// Renovação aberta fica fora das visões de bookings
			ExternalID:    "006C",
			Name:          "Gamma - Renewal",
			StageRaw:      "Negotiation",
			RecordTypeRaw: "Renewal",
			AccountName:   "Gamma",
		},
	}

	t.Run("Sem filtro retorna fechadas e pipeline ordenadas por data decrescente", func(t *testing.T) {
		mockAccountRepo.EXPECT().List().Return(nil, nil)
		mockOpportunityRepo.EXPECT().List().Return(opportunities, nil)
		mockLineItemRepo.EXPECT().List().Return([]*domain.ProductLine{
			{OpportunityExternalID: "006A", ProductName: "Premium Support", TotalPrice: 100},
		}, nil)

		rows, err := service.Bookings("")

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Beta - Expansion", rows[0].Opportunity)
		assert.Equal(t, "Acme - New Business", rows[1].Opportunity)
		assert.Equal(t, 1200.0, rows[1].ARR)
	})

	t.Run("Filtro por categoria restringe as linhas", func(t *testing.T) {
		mockAccountRepo.EXPECT().List().Return(nil, nil)
		mockOpportunityRepo.EXPECT().List().Return(opportunities, nil)
		mockLineItemRepo.EXPECT().List().Return(nil, nil)

		rows, err := service.Bookings("bookings_closed_lost")

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Beta - Expansion", rows[0].Opportunity)
	})

	t.Run("Data de corte descarta fechamentos anteriores", func(t *testing.T) {
		service.cfg = &config.Config{
			App: config.App{BookingsCutoffDate: "2026-06-01"},
		}

		mockAccountRepo.EXPECT().List().Return(nil, nil)
		mockOpportunityRepo.EXPECT().List().Return(opportunities, nil)
		mockLineItemRepo.EXPECT().List().Return(nil, nil)

		rows, err := service.Bookings("")

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Beta - Expansion", rows[0].Opportunity)
	})
}

func TestService_ARRExamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockOpportunityRepo := mocks.NewMockOpportunityRepository(ctrl)
	mockLineItemRepo := mocks.NewMockLineItemRepository(ctrl)

	service := &Service{
		accountRepo:     mockAccountRepo,
		opportunityRepo: mockOpportunityRepo,
		lineItemRepo:    mockLineItemRepo,
		classifier:      classifying.New(),
		catalog:         domain.DefaultProductCatalog(),
	}

	mockAccountRepo.EXPECT().List().Return(nil, nil)
	mockOpportunityRepo.EXPECT().List().Return([]*domain.Opportunity{
		{
			ExternalID:    "006A",
			Name:          "Acme - Renewal",
			StageRaw:      "Negotiation",
			RecordTypeRaw: "Renewal",
		},
		{
			ExternalID:    "006B",
			Name:          "Beta - Renewal",
			StageRaw:      "Closed Won",
			RecordTypeRaw: "Renewal",
		},
	}, nil)
	mockLineItemRepo.EXPECT().List().Return([]*domain.ProductLine{
		{OpportunityExternalID: "006A", ProductName: "Premium Support", TotalPrice: 100},
		{OpportunityExternalID: "006B", ProductName: "Premium Support", TotalPrice: 250},
		{OpportunityExternalID: "006B", ProductName: "iVerify Monthly Credits", TotalPrice: 9999},
	}, nil)

	response, err := service.ARRExamples()

	assert.NoError(t, err)
	assert.Equal(t, 1200.0, response.OpenRenewalARR)
	assert.Equal(t, 3000.0, response.ClosedWonRenewalARR)
	assert.Equal(t, 4200.0, response.TotalRenewalARR)
	assert.Len(t, response.OpenExamples, 1)
	assert.Len(t, response.ClosedWonExamples, 1)
	assert.Equal(t, "006A", response.OpenExamples[0].SfID)
}
