package classifying

import (
	"testing"

	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := New()

	tests := []struct {
		name       string
		recordType string
		stage      string
		expected   domain.Category
	}{
		{
			name:       "Renewal em estágio aberto entra no ARR",
			recordType: "Renewal",
			stage:      "Negotiation",
			expected:   domain.CategoryARREligibleOpen,
		},
		{
			name:       "Renewal com estágio customizado ainda conta como aberto",
			recordType: "Renewal",
			stage:      "Internal Discovery",
			expected:   domain.CategoryARREligibleOpen,
		},
		{
			name:       "Renewal sem estágio informado conta como aberto",
			recordType: "Renewal",
			stage:      "",
			expected:   domain.CategoryARREligibleOpen,
		},
		{
			name:       "Renewal fechado-ganho vai para o bucket closed won",
			recordType: "Renewal",
			stage:      "Closed Won",
			expected:   domain.CategoryARREligibleClosedWon,
		},
		{
			name:       "Renewal fechado-perdido vira bookings perdido",
			recordType: "Renewal",
			stage:      "Closed Lost",
			expected:   domain.CategoryBookingsClosedLost,
		},
		{
			name:       "New Business aberto vira pipeline",
			recordType: "New Business",
			stage:      "Proposal",
			expected:   domain.CategoryPipeline,
		},
		{
			name:       "Expansion aberto vira pipeline",
			recordType: "Expansion",
			stage:      "Qualification",
			expected:   domain.CategoryPipeline,
		},
		{
			name:       "New Business fechado-ganho vira bookings ganho",
			recordType: "New Business",
			stage:      "Closed Won",
			expected:   domain.CategoryBookingsClosedWon,
		},
		{
			name:       "Expansion fechado-perdido vira bookings perdido",
			recordType: "Expansion",
			stage:      "Closed Lost",
			expected:   domain.CategoryBookingsClosedLost,
		},
		{
			name:       "Record type desconhecido e aberto fica excluído",
			recordType: "Partner Referral",
			stage:      "Negotiation",
			expected:   domain.CategoryExcluded,
		},
		{
			name:       "Record type desconhecido fechado-perdido ainda vira bookings perdido",
			recordType: "Partner Referral",
			stage:      "Closed Lost",
			expected:   domain.CategoryBookingsClosedLost,
		},
		{
			name:       "Sem record type e fechado-ganho fica excluído",
			recordType: "",
			stage:      "Closed Won",
			expected:   domain.CategoryExcluded,
		},
		{
			name:       "Record type com caixa e espaços diferentes é normalizado",
			recordType: "  renewal  ",
			stage:      "closed won",
			expected:   domain.CategoryARREligibleClosedWon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := &domain.Opportunity{
				ExternalID:    "0061234567",
				Name:          "Acme - Renewal",
				StageRaw:      tt.stage,
				RecordTypeRaw: tt.recordType,
			}

			assert.Equal(t, tt.expected, classifier.Classify(opp))
		})
	}
}
