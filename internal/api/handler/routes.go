package handler

import (
	"net/http"

	"github.com/adsight/ads-sync-engine/internal/api/handler/router"
	"github.com/adsight/ads-sync-engine/internal/usecases/account"
	"github.com/adsight/ads-sync-engine/internal/usecases/insighting"
	"github.com/adsight/ads-sync-engine/internal/usecases/syncing"
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

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: AdAccountList(service),
		},
		{
			Path:    "/v1/accounts",
			Method:  http.MethodPost,
			Handler: RegisterAdAccount(service),
		},
		{
			Path:    "/v1/accounts/:id",
			Method:  http.MethodPut,
			Handler: UpdateAdAccount(service),
		},
	}
}

func AccountSync(engine syncing.Engine) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/sync",
			Method:  http.MethodPost,
			Handler: SyncAdAccount(engine),
		},
	}
}

func AdMetrics(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/:id/ads/metrics",
			Method:  http.MethodGet,
			Handler: GetAdMetrics(service),
		},
		{
			Path:    "/v1/accounts/:id/ads/metrics/refresh",
			Method:  http.MethodPost,
			Handler: RefreshAdMetrics(service),
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
