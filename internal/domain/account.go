package domain

import (
	"strings"
	"time"
)

// DefaultSegment é o segmento atribuído quando o Salesforce não informa Segment__c
const DefaultSegment = "SMB/ MM"

// Account representa uma conta de cliente sincronizada do Salesforce.
// O ExternalID (Salesforce Id) é imutável; os demais campos são sobrescritos
// a cada sincronização.
type Account struct {
	ID                string     `json:"id"`
	ExternalID        string     `json:"sf_id"`
	Name              string     `json:"name"`
	Type              *string    `json:"type,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Industry          *string    `json:"industry,omitempty"`
	Segment           *string    `json:"segment,omitempty"`
	AnnualRevenue     *float64   `json:"annual_revenue,omitempty"`
	NumberOfEmployees *int       `json:"number_of_employees,omitempty"`
	BillingCountry    *string    `json:"billing_country,omitempty"`
	BillingCity       *string    `json:"billing_city,omitempty"`
	BillingState      *string    `json:"billing_state,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Website           *string    `json:"website,omitempty"`
	CreatedDate       *time.Time `json:"created_date,omitempty"`
	SyncedAt          time.Time  `json:"synced_at"`
}

// SegmentOrDefault retorna o segmento da conta ou o segmento padrão
func (a *Account) SegmentOrDefault() string {
	if a.Segment != nil {
		if s := strings.TrimSpace(*a.Segment); s != "" {
			return s
		}
	}
	return DefaultSegment
}
