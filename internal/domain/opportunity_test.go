package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected StageKind
	}{
		{
			name:     "Closed Won é terminal",
			raw:      "Closed Won",
			expected: StageClosedWon,
		},
		{
			name:     "Closed Lost é terminal",
			raw:      "closed lost",
			expected: StageClosedLost,
		},
		{
			name:     "Estágio padrão do funil conta como aberto",
			raw:      "Negotiation",
			expected: StageOpen,
		},
		{
			name:     "Estágio customizado do Salesforce conta como aberto",
			raw:      "Internal Discovery",
			expected: StageOpen,
		},
		{
			name:     "Vazio é desconhecido",
			raw:      "  ",
			expected: StageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseStage(tt.raw))
		})
	}
}

func TestProductLine_MRR(t *testing.T) {
	tests := []struct {
		name     string
		line     ProductLine
		expected decimal.Decimal
	}{
		{
			name:     "TotalPrice informado é o MRR",
			line:     ProductLine{TotalPrice: 1130, UnitPrice: 999, Quantity: 3},
			expected: decimal.NewFromInt(1130),
		},
		{
			name:     "Sem TotalPrice o MRR é UnitPrice x Quantity",
			line:     ProductLine{UnitPrice: 150, Quantity: 4},
			expected: decimal.NewFromInt(600),
		},
		{
			name:     "Linha zerada tem MRR zero",
			line:     ProductLine{},
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(tt.line.MRR()),
				"esperado %s, obtido %s", tt.expected, tt.line.MRR())
		})
	}
}
