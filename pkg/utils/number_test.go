package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    decimal.Decimal
		expected string
	}{
		{
			name:     "Valor com milhões recebe separadores",
			value:    decimal.NewFromFloat(1234567.89),
			expected: "$1,234,567.89",
		},
		{
			name:     "Valor pequeno sem separador",
			value:    decimal.NewFromFloat(999.5),
			expected: "$999.50",
		},
		{
			name:     "Milhar exato",
			value:    decimal.NewFromInt(13560),
			expected: "$13,560.00",
		},
		{
			name:     "Zero",
			value:    decimal.Zero,
			expected: "$0.00",
		},
		{
			name:     "Negativo mantém o sinal antes do cifrão",
			value:    decimal.NewFromFloat(-1000.25),
			expected: "-$1,000.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(tt.value))
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 10.57, RoundWithTwoDecimalPlace(10.567))
	assert.Equal(t, 10.56, RoundWithTwoDecimalPlace(10.564))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}
