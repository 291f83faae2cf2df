package domain

import "time"

// ARRMultiplier converte MRR em ARR. Aplicado somente na apresentação; o
// armazenamento interno é sempre mensal para evitar conversão dupla.
const ARRMultiplier = 12

// ARRRow é a linha da tabela conta x produto, com valores já anualizados
type ARRRow struct {
	AccountID   string             `json:"account_id"`
	AccountName string             `json:"account_name"`
	Segment     string             `json:"segment"`
	ByProduct   map[string]float64 `json:"by_product"`
	TotalARR    float64            `json:"total_arr"`
}

// ARRTable é a tabela de ARR contratado por conta e produto
type ARRTable struct {
	Products       []string           `json:"products"`
	Rows           []*ARRRow          `json:"rows"`
	TotalByProduct map[string]float64 `json:"total_by_product"`
	GrandTotal     float64            `json:"grand_total"`
	// UnresolvedProducts registra nomes brutos que caíram no bucket "Other",
	// para atualização manual do catálogo
	UnresolvedProducts []string `json:"unresolved_products,omitempty"`
}

// AccountARR é o agregado de ARR por conta, sem abertura por produto
type AccountARR struct {
	AccountID        string  `json:"account_id"`
	AccountName      string  `json:"account_name"`
	OpenRenewalCount int     `json:"open_renewal_count"`
	ARR              float64 `json:"arr"`
}

// ARRByAccountResponse é a resposta do rollup por conta
type ARRByAccountResponse struct {
	Accounts []*AccountARR `json:"accounts"`
	TotalARR float64       `json:"total_arr"`
}

// BookingsRow é a linha plana usada nas visões de bookings
type BookingsRow struct {
	Account     string     `json:"account"`
	Opportunity string     `json:"opportunity"`
	Stage       string     `json:"stage"`
	RecordType  string     `json:"record_type"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	ARR         float64    `json:"arr"`
}

// ARRExample é um exemplo de oportunidade dentro de um bucket de ARR
type ARRExample struct {
	Name      string  `json:"name"`
	StageName string  `json:"stage_name"`
	ARR       float64 `json:"arr"`
	SfID      string  `json:"sf_id"`
}

// ARRExamplesResponse separa o ARR de renovações abertas do de fechadas-ganhas
type ARRExamplesResponse struct {
	OpenRenewalARR      float64       `json:"open_renewal_arr"`
	ClosedWonRenewalARR float64       `json:"closed_won_renewal_arr"`
	TotalRenewalARR     float64       `json:"total_renewal_arr"`
	OpenExamples        []*ARRExample `json:"open_examples"`
	ClosedWonExamples   []*ARRExample `json:"closed_won_examples"`
}

// DashboardKPI é o resumo do dashboard: ARR contratado e pipeline
type DashboardKPI struct {
	ARR                float64    `json:"arr"`
	Pipeline           float64    `json:"pipeline"`
	SalesforceSyncedAt *time.Time `json:"salesforce_synced_at,omitempty"`
}
