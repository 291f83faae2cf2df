package handler

import (
	"net/http"

	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/api/handler/router"
	"github.com/dazos/cfo-copilot-api/internal/usecases/aggregating"
	"github.com/dazos/cfo-copilot-api/internal/usecases/answering"
	"github.com/dazos/cfo-copilot-api/internal/usecases/reporting"
	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/dazos/cfo-copilot-api/internal/usecases/syncing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sync(service syncing.SyncService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/salesforce",
			Method:  http.MethodPost,
			Handler: RunSalesforceSync(service),
		},
	}
}

func Dashboard(service aggregating.AggregatingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/kpi",
			Method:  http.MethodGet,
			Handler: GetDashboardKPI(service),
		},
		{
			Path:    "/v1/arr/by-account-product",
			Method:  http.MethodGet,
			Handler: GetARRTable(service),
		},
		{
			Path:    "/v1/arr/by-account",
			Method:  http.MethodGet,
			Handler: GetARRByAccount(service),
		},
		{
			Path:    "/v1/arr/examples",
			Method:  http.MethodGet,
			Handler: GetARRExamples(service),
		},
		{
			Path:    "/v1/bookings",
			Method:  http.MethodGet,
			Handler: GetBookings(service),
		},
	}
}

func Listings(
	accountRepo repository.AccountRepository,
	opportunityRepo repository.OpportunityRepository,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: ListAccounts(accountRepo),
		},
		{
			Path:    "/v1/opportunities",
			Method:  http.MethodGet,
			Handler: ListOpportunities(opportunityRepo),
		},
	}
}

func Copilot(service answering.AnsweringService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/copilot",
			Method:  http.MethodPost,
			Handler: AskCopilot(service),
		},
	}
}

func Snapshots(service snapshotting.SnapshotService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshots",
			Method:  http.MethodGet,
			Handler: ListSnapshots(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

func QuickBooks(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/quickbooks",
			Method:  http.MethodPost,
			Handler: RunQuickBooksSync(service),
		},
		{
			Path:    "/v1/quickbooks/reports/:type",
			Method:  http.MethodGet,
			Handler: GetLatestReport(service),
		},
	}
}
