package answering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveTimeExpression(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// Sexta-feira, 21 de agosto de 2026, meio-dia em Nova York
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, loc)

	tests := []struct {
		name          string
		question      string
		expectedAt    time.Time
		expectedLabel string
		hasDate       bool
	}{
		{
			name:          "Mês por extenso resolve para o fim do mês",
			question:      "What was our ARR in March 2025?",
			expectedAt:    time.Date(2025, 3, 31, 23, 59, 59, 0, loc),
			expectedLabel: "March 2025",
			hasDate:       true,
		},
		{
			name:          "Abreviação de mês também resolve",
			question:      "ARR in Mar 2025?",
			expectedAt:    time.Date(2025, 3, 31, 23, 59, 59, 0, loc),
			expectedLabel: "March 2025",
			hasDate:       true,
		},
		{
			name:          "Mês numérico resolve para o fim do mês",
			question:      "total ARR 03/2025",
			expectedAt:    time.Date(2025, 3, 31, 23, 59, 59, 0, loc),
			expectedLabel: "March 2025",
			hasDate:       true,
		},
		{
			name:          "Last month resolve para o mês anterior completo",
			question:      "How much ARR did we have last month?",
			expectedAt:    time.Date(2026, 7, 31, 23, 59, 59, 0, loc),
			expectedLabel: "July 2026",
			hasDate:       true,
		},
		{
			name:          "Yesterday resolve para o fim do dia anterior",
			question:      "what was the ARR yesterday",
			expectedAt:    time.Date(2026, 8, 20, 23, 59, 59, 0, loc),
			expectedLabel: "August 20, 2026",
			hasDate:       true,
		},
		{
			name:          "Last year resolve para o fim do ano anterior",
			question:      "ARR last year?",
			expectedAt:    time.Date(2025, 12, 31, 23, 59, 59, 0, loc),
			expectedLabel: "2025",
			hasDate:       true,
		},
		{
			name:     "Dezembro resolve para 31 de dezembro",
			question: "ARR in December 2024",
			expectedAt: time.Date(
				2024, 12, 31, 23, 59, 59, 0, loc,
			),
			expectedLabel: "December 2024",
			hasDate:       true,
		},
		{
			name:     "Pergunta sem data usa dados ao vivo",
			question: "What is our total contracted ARR?",
			hasDate:  false,
		},
		{
			name:     "Mês numérico inválido é ignorado",
			question: "ARR in 13/2025",
			hasDate:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, hasDate := ResolveTimeExpression(tt.question, now, loc)

			assert.Equal(t, tt.hasDate, hasDate)
			if tt.hasDate {
				assert.True(t, tt.expectedAt.Equal(resolved.At),
					"esperado %s, obtido %s", tt.expectedAt, resolved.At)
				assert.Equal(t, tt.expectedLabel, resolved.Label)
			}
		})
	}
}
