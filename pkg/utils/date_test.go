package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndOfMonth(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		year     int
		month    time.Month
		expected time.Time
	}{
		{
			name:     "Mês de 31 dias",
			year:     2025,
			month:    time.March,
			expected: time.Date(2025, 3, 31, 23, 59, 59, 0, loc),
		},
		{
			name:     "Fevereiro em ano bissexto",
			year:     2024,
			month:    time.February,
			expected: time.Date(2024, 2, 29, 23, 59, 59, 0, loc),
		},
		{
			name:     "Dezembro vira para o ano seguinte sem estourar",
			year:     2025,
			month:    time.December,
			expected: time.Date(2025, 12, 31, 23, 59, 59, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EndOfMonth(tt.year, tt.month, loc)
			assert.True(t, tt.expected.Equal(result), "esperado %s, obtido %s", tt.expected, result)
		})
	}
}

func TestDateIn(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	// 03:00 UTC de 22 de agosto ainda é 21 de agosto em Nova York
	instant := time.Date(2026, 8, 22, 3, 0, 0, 0, time.UTC)
	date := DateIn(instant, loc)

	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.August, date.Month())
	assert.Equal(t, 21, date.Day())
	assert.Equal(t, 0, date.Hour())
}
