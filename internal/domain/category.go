package domain

// Category é a classificação de uma oportunidade para fins de receita.
// Uma oportunidade pertence a exatamente uma categoria.
type Category int

const (
	CategoryExcluded Category = iota
	CategoryARREligibleOpen
	CategoryARREligibleClosedWon
	CategoryPipeline
	CategoryBookingsClosedWon
	CategoryBookingsClosedLost
)

func (c Category) String() string {
	switch c {
	case CategoryARREligibleOpen:
		return "arr_eligible_open"
	case CategoryARREligibleClosedWon:
		return "arr_eligible_closed_won"
	case CategoryPipeline:
		return "pipeline"
	case CategoryBookingsClosedWon:
		return "bookings_closed_won"
	case CategoryBookingsClosedLost:
		return "bookings_closed_lost"
	default:
		return "excluded"
	}
}
