package answering

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dazos/cfo-copilot-api/pkg/utils"
)

// ResolvedTime é o instante concreto derivado de uma expressão de data.
// At é sempre o fim do período no fuso de referência, para que o snapshot
// escolhido seja o último daquele período.
type ResolvedTime struct {
	At    time.Time
	Label string
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	monthNameYearPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.?,?\s+(\d{4})\b`)
	numericMonthPattern  = regexp.MustCompile(`\b(\d{1,2})/(\d{4})\b`)
)

// ResolveTimeExpression procura uma expressão de data no texto e a converte
// para um instante concreto. Retorna false quando o texto não contém
// expressão reconhecida; nesse caso a resposta usa dados ao vivo.
func ResolveTimeExpression(question string, now time.Time, loc *time.Location) (*ResolvedTime, bool) {
	lower := strings.ToLower(question)

	// Frases relativas
	switch {
	case strings.Contains(lower, "last month"):
		firstOfMonth := time.Date(now.In(loc).Year(), now.In(loc).Month(), 1, 0, 0, 0, 0, loc)
		lastMonth := firstOfMonth.AddDate(0, -1, 0)
		return &ResolvedTime{
			At:    utils.EndOfMonth(lastMonth.Year(), lastMonth.Month(), loc),
			Label: lastMonth.Format("January 2006"),
		}, true
	case strings.Contains(lower, "yesterday"):
		yesterday := now.In(loc).AddDate(0, 0, -1)
		return &ResolvedTime{
			At:    utils.EndOfDay(yesterday, loc),
			Label: yesterday.Format("January 2, 2006"),
		}, true
	case strings.Contains(lower, "last year"):
		lastYear := now.In(loc).Year() - 1
		return &ResolvedTime{
			At:    utils.EndOfMonth(lastYear, time.December, loc),
			Label: strconv.Itoa(lastYear),
		}, true
	}

	// Mês por extenso: "March 2025"
	if m := monthNameYearPattern.FindStringSubmatch(question); m != nil {
		month := monthsByName[strings.ToLower(m[1])]
		year, _ := strconv.Atoi(m[2])
		return &ResolvedTime{
			At:    utils.EndOfMonth(year, month, loc),
			Label: time.Date(year, month, 1, 0, 0, 0, 0, loc).Format("January 2006"),
		}, true
	}

	// Mês numérico: "03/2025"
	if m := numericMonthPattern.FindStringSubmatch(question); m != nil {
		monthNum, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if monthNum >= 1 && monthNum <= 12 {
			month := time.Month(monthNum)
			return &ResolvedTime{
				At:    utils.EndOfMonth(year, month, loc),
				Label: time.Date(year, month, 1, 0, 0, 0, 0, loc).Format("January 2006"),
			}, true
		}
	}

	return nil, false
}
