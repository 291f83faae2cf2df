package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCatalog_Resolve(t *testing.T) {
	catalog := DefaultProductCatalog()

	tests := []struct {
		name         string
		raw          string
		expectedName string
		found        bool
		excluded     bool
	}{
		{
			name:         "Nome canônico resolve direto",
			raw:          "Premium Support",
			expectedName: "Premium Support",
			found:        true,
		},
		{
			name:         "Lookup ignora caixa e espaços repetidos",
			raw:          "  premium   SUPPORT ",
			expectedName: "Premium Support",
			found:        true,
		},
		{
			name:         "Prefixo de conta e renewal é descartado antes do lookup",
			raw:          "Sunrise Recovery - Renewal - Premium Support",
			expectedName: "Premium Support",
			found:        true,
		},
		{
			name:         "Alias do price book resolve para o nome canônico",
			raw:          "Additional IQMR EINs",
			expectedName: "Additional IQ/MR EINs",
			found:        true,
		},
		{
			name:         "Produto excluído do ARR resolve mas fica marcado",
			raw:          "iVerify Monthly Credits",
			expectedName: "iVerify Monthly Credits",
			found:        true,
			excluded:     true,
		},
		{
			name:         "Kipu API dentro de linha composta resolve como excluído",
			raw:          "Acme - Renewal - Kipu API",
			expectedName: "Kipu API",
			found:        true,
			excluded:     true,
		},
		{
			name:  "Produto fora do catálogo não resolve",
			raw:   "Custom Implementation Fee",
			found: false,
		},
		{
			name:  "String vazia não resolve",
			raw:   "   ",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := catalog.Resolve(tt.raw)

			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expectedName, entry.Name)
				assert.Equal(t, tt.excluded, entry.ExcludedFromARR)
			}
		})
	}
}

func TestProductCatalog_Columns(t *testing.T) {
	catalog := DefaultProductCatalog()
	columns := catalog.Columns()

	assert.Len(t, columns, 9)
	assert.Equal(t, "Dazos CRM Platform (Legacy)", columns[0])
	assert.Equal(t, "Premium Support", columns[len(columns)-1])

	// Exceções de negócio nunca aparecem como coluna
	assert.NotContains(t, columns, "iVerify Monthly Credits")
	assert.NotContains(t, columns, "Kipu API")
	assert.NotContains(t, columns, OtherBucket)
}

func TestNormalizeProductName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Nome simples passa sem mudança",
			raw:      "Premium Support",
			expected: "Premium Support",
		},
		{
			name:     "Segmento após o último separador é o produto",
			raw:      "Acme - Renewal - Data Kipu API",
			expected: "Data Kipu API",
		},
		{
			name:     "Separador único também divide",
			raw:      "Acme - Premium Support",
			expected: "Premium Support",
		},
		{
			name:     "Hífen sem espaços não é separador",
			raw:      "IQ/MR-Addon",
			expected: "IQ/MR-Addon",
		},
		{
			name:     "String vazia vira vazia",
			raw:      "  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeProductName(tt.raw))
		})
	}
}
