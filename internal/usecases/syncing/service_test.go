package syncing

import (
	"context"
	"testing"

	sfmocks "github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/mocks"
	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/sfclient"
	"github.com/dazos/cfo-copilot-api/infrastructure/repository/mocks"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type snapshotterStub struct {
	calls []string
	err   error
}

func (s *snapshotterStub) Capture(_ context.Context, tag string) (*domain.Snapshot, error) {
	s.calls = append(s.calls, tag)
	return &domain.Snapshot{Tag: tag}, s.err
}

type syncFixture struct {
	service         *Service
	salesforce      *sfmocks.MockSalesforceIntegrator
	accountRepo     *mocks.MockAccountRepository
	opportunityRepo *mocks.MockOpportunityRepository
	lineItemRepo    *mocks.MockLineItemRepository
}

func newSyncFixture(ctrl *gomock.Controller, snapshotter Snapshotter) *syncFixture {
	f := &syncFixture{
		salesforce:      sfmocks.NewMockSalesforceIntegrator(ctrl),
		accountRepo:     mocks.NewMockAccountRepository(ctrl),
		opportunityRepo: mocks.NewMockOpportunityRepository(ctrl),
		lineItemRepo:    mocks.NewMockLineItemRepository(ctrl),
	}

	f.service = &Service{
		salesforceService: f.salesforce,
		accountRepo:       f.accountRepo,
		opportunityRepo:   f.opportunityRepo,
		lineItemRepo:      f.lineItemRepo,
		classifier:        classifying.New(),
		snapshotter:       snapshotter,
	}

	return f
}

func TestService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("Sincronização completa grava tudo e captura snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotter := &snapshotterStub{}
		f := newSyncFixture(ctrl, snapshotter)

		f.salesforce.EXPECT().FetchAccounts(gomock.Any()).Return([]*domain.Account{
			{ExternalID: "001A", Name: "Sunrise Recovery"},
		}, nil)
		f.salesforce.EXPECT().FetchOpportunities(gomock.Any()).Return([]*domain.Opportunity{
			{ExternalID: "006A", StageRaw: "Negotiation", RecordTypeRaw: "Renewal"},
			{ExternalID: "006B", StageRaw: "Proposal", RecordTypeRaw: "New Business"},
		}, nil)
		f.salesforce.EXPECT().FetchOpportunityLines(gomock.Any()).Return([]*domain.ProductLine{
			{ExternalID: "00kA", OpportunityExternalID: "006A", ProductName: "Premium Support", TotalPrice: 100},
		}, nil)

		// Conta já existe: o id interno é reaproveitado
		f.accountRepo.EXPECT().ListExternalIDs().Return(map[string]string{"001A": "abc123"}, nil)
		f.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(
			func(accounts []*domain.Account) error {
				assert.Equal(t, "abc123", accounts[0].ID)
				assert.False(t, accounts[0].SyncedAt.IsZero())
				return nil
			})

		f.opportunityRepo.EXPECT().ListExternalIDs().Return(map[string]string{}, nil)
		f.opportunityRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(
			func(opportunities []*domain.Opportunity) error {
				// Registro novo ganha id interno gerado
				assert.NotEmpty(t, opportunities[0].ID)
				return nil
			})

		f.lineItemRepo.EXPECT().ListExternalIDs().Return(map[string]string{}, nil)
		f.lineItemRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		report := f.service.Sync(ctx)

		assert.True(t, report.OK)
		assert.Equal(t, 1, report.SyncedAccounts)
		assert.Equal(t, 2, report.SyncedOpportunities)
		assert.Equal(t, 1, report.SyncedLineItems)
		assert.Equal(t, 1, report.RenewalOpportunitiesCount)
		assert.Empty(t, report.Error)
		assert.Equal(t, []string{domain.SnapshotTagSync}, snapshotter.calls)
	})

	t.Run("Falha transitória no meio da paginação grava o parcial e reporta ok=false", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotter := &snapshotterStub{}
		f := newSyncFixture(ctrl, snapshotter)

		transient := &sfclient.TransientError{Err: errors.New("status 503")}

		f.salesforce.EXPECT().FetchAccounts(gomock.Any()).Return([]*domain.Account{
			{ExternalID: "001A", Name: "Sunrise Recovery"},
		}, transient)
		f.salesforce.EXPECT().FetchOpportunities(gomock.Any()).Return(nil, nil)
		f.salesforce.EXPECT().FetchOpportunityLines(gomock.Any()).Return(nil, nil)

		// Registros da primeira página ainda são gravados
		f.accountRepo.EXPECT().ListExternalIDs().Return(map[string]string{}, nil)
		f.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		report := f.service.Sync(ctx)

		assert.False(t, report.OK)
		assert.Equal(t, 1, report.SyncedAccounts)
		assert.Contains(t, report.Error, "accounts fetch")

		// Sincronização com falha não captura snapshot
		assert.Empty(t, snapshotter.calls)
	})

	t.Run("Id externo duplicado no retorno: a última ocorrência vence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, nil)

		f.salesforce.EXPECT().FetchAccounts(gomock.Any()).Return([]*domain.Account{
			{ExternalID: "001A", Name: "Nome Antigo"},
			{ExternalID: "001A", Name: "Nome Novo"},
		}, nil)
		f.salesforce.EXPECT().FetchOpportunities(gomock.Any()).Return(nil, nil)
		f.salesforce.EXPECT().FetchOpportunityLines(gomock.Any()).Return(nil, nil)

		f.accountRepo.EXPECT().ListExternalIDs().Return(map[string]string{}, nil)
		f.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(
			func(accounts []*domain.Account) error {
				assert.Len(t, accounts, 1)
				assert.Equal(t, "Nome Novo", accounts[0].Name)
				return nil
			})

		report := f.service.Sync(ctx)

		assert.True(t, report.OK)
		assert.Equal(t, 1, report.SyncedAccounts)
	})

	t.Run("Falha no upsert zera o contador daquela coleção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, nil)

		f.salesforce.EXPECT().FetchAccounts(gomock.Any()).Return([]*domain.Account{
			{ExternalID: "001A"},
		}, nil)
		f.salesforce.EXPECT().FetchOpportunities(gomock.Any()).Return(nil, nil)
		f.salesforce.EXPECT().FetchOpportunityLines(gomock.Any()).Return(nil, nil)

		f.accountRepo.EXPECT().ListExternalIDs().Return(nil, errors.New("connection reset"))

		report := f.service.Sync(ctx)

		assert.False(t, report.OK)
		assert.Equal(t, 0, report.SyncedAccounts)
		assert.Contains(t, report.Error, "accounts upsert")
	})

	t.Run("Falha na captura do snapshot não muda o relatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		snapshotter := &snapshotterStub{err: errors.New("disk full")}
		f := newSyncFixture(ctrl, snapshotter)

		f.salesforce.EXPECT().FetchAccounts(gomock.Any()).Return(nil, nil)
		f.salesforce.EXPECT().FetchOpportunities(gomock.Any()).Return(nil, nil)
		f.salesforce.EXPECT().FetchOpportunityLines(gomock.Any()).Return(nil, nil)

		report := f.service.Sync(ctx)

		assert.True(t, report.OK)
		assert.Equal(t, []string{domain.SnapshotTagSync}, snapshotter.calls)
	})
}
