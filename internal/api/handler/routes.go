package handler

import (
	"net/http"

	"github.com/vfg2006/commerce-insights-api/internal/api/handler/router"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/sales",
			Method:  http.MethodGet,
			Handler: GetSalesReport(service),
		},
		{
			Path:    "/v1/reports/sponsors",
			Method:  http.MethodGet,
			Handler: GetSponsorsReport(service),
		},
		{
			Path:    "/v1/reports/daily",
			Method:  http.MethodGet,
			Handler: GetDailyReport(service),
		},
		{
			Path:    "/v1/reports/refresh",
			Method:  http.MethodPost,
			Handler: RefreshReport(service),
		},
	}
}
