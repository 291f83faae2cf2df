package domain

// SyncReport é o resultado estruturado de uma sincronização com o Salesforce.
// Falhas parciais não abortam a operação: OK fica false, Error descreve a
// falha e os contadores refletem o que foi efetivamente gravado.
type SyncReport struct {
	OK                        bool   `json:"ok"`
	SyncedAccounts            int    `json:"synced_accounts"`
	SyncedOpportunities       int    `json:"synced_opportunities"`
	SyncedLineItems           int    `json:"synced_line_items"`
	RenewalOpportunitiesCount int    `json:"renewal_opportunities_count"`
	Error                     string `json:"error,omitempty"`
}
