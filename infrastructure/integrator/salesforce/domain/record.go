package domain

// Formas de resposta da API REST de consulta do Salesforce
// (GET /services/data/vXX.X/query?q=...).

// QueryResponse é o envelope paginado de uma consulta SOQL
type QueryResponse[T any] struct {
	TotalSize      int    `json:"totalSize"`
	Done           bool   `json:"done"`
	NextRecordsURL string `json:"nextRecordsUrl"`
	Records        []T    `json:"records"`
}

// Attributes acompanha cada registro retornado pela API
type Attributes struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// AccountRecord é o registro bruto de Account
type AccountRecord struct {
	Attributes        Attributes `json:"attributes"`
	ID                string     `json:"Id"`
	Name              string     `json:"Name"`
	Type              *string    `json:"Type"`
	Status            *string    `json:"Status__c"`
	Industry          *string    `json:"Industry"`
	Segment           *string    `json:"Segment__c"`
	AnnualRevenue     *float64   `json:"AnnualRevenue"`
	NumberOfEmployees *int       `json:"NumberOfEmployees"`
	BillingCountry    *string    `json:"BillingCountry"`
	BillingCity       *string    `json:"BillingCity"`
	BillingState      *string    `json:"BillingState"`
	Phone             *string    `json:"Phone"`
	Website           *string    `json:"Website"`
	CreatedDate       *string    `json:"CreatedDate"`
}

// RecordTypeRef é a referência aninhada RecordType de uma oportunidade
type RecordTypeRef struct {
	Name string `json:"Name"`
}

// AccountRef é a referência aninhada Account de uma oportunidade
type AccountRef struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// OpportunityRecord é o registro bruto de Opportunity
type OpportunityRecord struct {
	Attributes  Attributes     `json:"attributes"`
	ID          string         `json:"Id"`
	Name        string         `json:"Name"`
	Amount      *float64       `json:"Amount"`
	CloseDate   *string        `json:"CloseDate"`
	StageName   string         `json:"StageName"`
	Type        *string        `json:"Type"`
	RecordType  *RecordTypeRef `json:"RecordType"`
	Account     *AccountRef    `json:"Account"`
	CreatedDate *string        `json:"CreatedDate"`
}

// Product2Ref é a referência aninhada Product2 de um item de linha
type Product2Ref struct {
	Name string `json:"Name"`
}

// LineItemRecord é o registro bruto de OpportunityLineItem
type LineItemRecord struct {
	Attributes    Attributes   `json:"attributes"`
	ID            string       `json:"Id"`
	OpportunityID string       `json:"OpportunityId"`
	Quantity      *float64     `json:"Quantity"`
	UnitPrice     *float64     `json:"UnitPrice"`
	TotalPrice    *float64     `json:"TotalPrice"`
	Product2      *Product2Ref `json:"Product2"`
	Name          string       `json:"Name"`
}

// ProductName retorna o nome completo do produto da linha
func (l *LineItemRecord) ProductName() string {
	if l.Product2 != nil && l.Product2.Name != "" {
		return l.Product2.Name
	}
	return l.Name
}
