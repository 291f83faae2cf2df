package sfclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	sfdomain "github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/domain"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/sirupsen/logrus"
)

type Client interface {
	QueryAccounts(ctx context.Context) ([]sfdomain.AccountRecord, error)
	QueryOpportunities(ctx context.Context) ([]sfdomain.OpportunityRecord, error)
	QueryLineItems(ctx context.Context) ([]sfdomain.LineItemRecord, error)
}

type SFClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &SFClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Salesforce.Timeout,
		},
	}
}

func (c *SFClient) QueryAccounts(ctx context.Context) ([]sfdomain.AccountRecord, error) {
	return queryAll[sfdomain.AccountRecord](ctx, c, soqlAccounts)
}

func (c *SFClient) QueryOpportunities(ctx context.Context) ([]sfdomain.OpportunityRecord, error) {
	return queryAll[sfdomain.OpportunityRecord](ctx, c, soqlOpportunities)
}

func (c *SFClient) QueryLineItems(ctx context.Context) ([]sfdomain.LineItemRecord, error) {
	return queryAll[sfdomain.LineItemRecord](ctx, c, soqlLineItems)
}

func (c *SFClient) queryPath(soql string) string {
	params := url.Values{}
	params.Add("q", soql)

	return fmt.Sprintf("/services/data/%s/query?%s", c.Cfg.Salesforce.APIVersion, params.Encode())
}

// doGet executa um GET autenticado contra a instância do Salesforce.
// O path já vem com query string montada (primeira página ou nextRecordsUrl).
func (c *SFClient) doGet(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.Cfg.Salesforce.URL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		logrus.WithError(err).Error("salesforce: erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Cfg.Salesforce.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("salesforce: erro ao fazer a requisição")
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("salesforce: credenciais rejeitadas (status %d): %s", resp.StatusCode, body)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, &TransientError{Err: fmt.Errorf("salesforce: status %d: %s", resp.StatusCode, body)}
	default:
		return nil, fmt.Errorf("salesforce: status inesperado %d: %s", resp.StatusCode, body)
	}
}
