package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StageKind é a variante fechada do estágio de uma oportunidade.
// O valor bruto vindo do CRM é preservado em Opportunity.StageRaw; qualquer
// string desconhecida e não vazia é tratada como estágio aberto, pois o
// Salesforce permite estágios customizados (ex.: "Internal Discovery").
type StageKind int

const (
	StageUnknown StageKind = iota
	StageOpen
	StageClosedWon
	StageClosedLost
)

func (s StageKind) String() string {
	switch s {
	case StageOpen:
		return "open"
	case StageClosedWon:
		return "closed_won"
	case StageClosedLost:
		return "closed_lost"
	default:
		return "unknown"
	}
}

// ParseStage converte a string bruta do CRM para a variante de estágio
func ParseStage(raw string) StageKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return StageUnknown
	case "closed won":
		return StageClosedWon
	case "closed lost":
		return StageClosedLost
	default:
		return StageOpen
	}
}

// RecordTypeKind é a variante fechada do record type de uma oportunidade
type RecordTypeKind int

const (
	RecordTypeUnknown RecordTypeKind = iota
	RecordTypeRenewal
	RecordTypeNewBusiness
	RecordTypeExpansion
)

func (r RecordTypeKind) String() string {
	switch r {
	case RecordTypeRenewal:
		return "Renewal"
	case RecordTypeNewBusiness:
		return "New Business"
	case RecordTypeExpansion:
		return "Expansion"
	default:
		return "Unknown"
	}
}

// ParseRecordType converte RecordType.Name (case-insensitive, com trim)
func ParseRecordType(raw string) RecordTypeKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "renewal":
		return RecordTypeRenewal
	case "new business":
		return RecordTypeNewBusiness
	case "expansion":
		return RecordTypeExpansion
	default:
		return RecordTypeUnknown
	}
}

// Opportunity representa uma oportunidade sincronizada do Salesforce.
// Escrita exclusivamente pelo reconciliador de sincronização.
type Opportunity struct {
	ID                string     `json:"id"`
	ExternalID        string     `json:"sf_id"`
	Name              string     `json:"name"`
	Amount            float64    `json:"amount"`
	CloseDate         *time.Time `json:"close_date,omitempty"`
	StageRaw          string     `json:"stage_name"`
	RecordTypeRaw     string     `json:"record_type_name"`
	OpportunityType   *string    `json:"type,omitempty"`
	AccountExternalID string     `json:"account_id"`
	AccountName       string     `json:"account_name"`
	CreatedDate       *time.Time `json:"created_date,omitempty"`
	SyncedAt          time.Time  `json:"synced_at"`
}

// Stage retorna a variante de estágio derivada do valor bruto
func (o *Opportunity) Stage() StageKind {
	return ParseStage(o.StageRaw)
}

// RecordType retorna a variante de record type derivada do valor bruto
func (o *Opportunity) RecordType() RecordTypeKind {
	return ParseRecordType(o.RecordTypeRaw)
}

// ProductLine é um item de produto de uma oportunidade. TotalPrice é o valor
// mensal recorrente (MRR); ARR = MRR * 12 apenas na apresentação.
type ProductLine struct {
	ID                    string    `json:"id"`
	ExternalID            string    `json:"sf_id"`
	OpportunityExternalID string    `json:"opportunity_sf_id"`
	ProductName           string    `json:"product_name"`
	Quantity              float64   `json:"quantity"`
	UnitPrice             float64   `json:"unit_price"`
	TotalPrice            float64   `json:"total_price"`
	SyncedAt              time.Time `json:"synced_at"`
}

// MRR retorna o valor mensal recorrente da linha como decimal. Quando o CRM
// não envia TotalPrice, o valor é derivado de UnitPrice * Quantity.
func (p *ProductLine) MRR() decimal.Decimal {
	if p.TotalPrice != 0 {
		return decimal.NewFromFloat(p.TotalPrice)
	}
	return decimal.NewFromFloat(p.UnitPrice).Mul(decimal.NewFromFloat(p.Quantity))
}
