package sfclient

import (
	"context"
	"encoding/json"
	"fmt"

	sfdomain "github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/domain"
	"github.com/sirupsen/logrus"
)

const (
	soqlAccounts = `SELECT Id, Name, Type, Status__c, Industry, Segment__c,
		AnnualRevenue, NumberOfEmployees, BillingCountry, BillingCity,
		BillingState, Phone, Website, CreatedDate
		FROM Account`

	soqlOpportunities = `SELECT Id, Name, Amount, CloseDate, StageName, Type,
		RecordType.Name, Account.Id, Account.Name, CreatedDate
		FROM Opportunity`

	soqlLineItems = `SELECT Id, OpportunityId, Quantity, UnitPrice, TotalPrice,
		Product2.Name, Name
		FROM OpportunityLineItem`
)

// queryAll percorre todas as páginas de uma consulta SOQL. Em caso de falha
// no meio da paginação, os registros já obtidos são retornados junto com o
// erro, para que o chamador decida o que persistir.
func queryAll[T any](ctx context.Context, c *SFClient, soql string) ([]T, error) {
	records := make([]T, 0)
	path := c.queryPath(soql)

	for page := 1; ; page++ {
		body, err := c.doGet(ctx, path)
		if err != nil {
			return records, err
		}

		var response sfdomain.QueryResponse[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("salesforce: erro ao decodificar JSON")
			return records, fmt.Errorf("salesforce: resposta inválida na página %d: %w", page, err)
		}

		records = append(records, response.Records...)

		if response.Done || response.NextRecordsURL == "" {
			return records, nil
		}

		path = response.NextRecordsURL
	}
}
