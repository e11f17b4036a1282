package handler

import (
	"net/http"

	"github.com/vfg2006/budget-guard-api/internal/api/handler/router"
	"github.com/vfg2006/budget-guard-api/pkg/middleware"
)

func Healthcheck(version string) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(version),
		},
	}
}

func Pacing(services PacingServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pacing/analyse",
			Method:      http.MethodPost,
			Handler:     AnalysePortfolio(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pacing/upload",
			Method:      http.MethodPost,
			Handler:     UploadPortfolio(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Snapshots(finder SnapshotFinder, reports ReportRenderer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/snapshots",
			Method:      http.MethodGet,
			Handler:     ListSnapshots(finder),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/snapshots/:id",
			Method:      http.MethodGet,
			Handler:     GetSnapshot(finder),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/snapshots/:id/report",
			Method:      http.MethodGet,
			Handler:     DownloadSnapshotReport(finder, reports),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
