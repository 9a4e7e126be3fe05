package handler

import (
	"net/http"

	"github.com/vfg2006/media-plan-api/internal/api/handler/router"
	"github.com/vfg2006/media-plan-api/internal/config"
	"github.com/vfg2006/media-plan-api/internal/usecases/authenticating"
	"github.com/vfg2006/media-plan-api/internal/usecases/converting"
	"github.com/vfg2006/media-plan-api/internal/usecases/planning"
	"github.com/vfg2006/media-plan-api/internal/usecases/recommending"
	"github.com/vfg2006/media-plan-api/pkg/middleware"
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
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Assumptions() []router.Route {
	return []router.Route{
		{
			Path:        "/v1/assumptions",
			Method:      http.MethodGet,
			Handler:     GetAssumptions(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Plans(planner planning.Planner, recommender recommending.Recommender) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/plans",
			Method:      http.MethodPost,
			Handler:     ComputePlan(planner, recommender),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Splits() []router.Route {
	return []router.Route{
		{
			Path:        "/v1/splits/round",
			Method:      http.MethodPost,
			Handler:     RoundSplits(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/splits/equalize",
			Method:      http.MethodPost,
			Handler:     EqualizeSplits(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/splits/normalize",
			Method:      http.MethodPost,
			Handler:     NormalizeSplits(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/splits/clear",
			Method:      http.MethodPost,
			Handler:     ClearSplits(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Fx(converter converting.Converter, provider converting.Provider, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/fx/rates",
			Method:      http.MethodGet,
			Handler:     GetRates(converter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/fx/rates",
			Method:      http.MethodPut,
			Handler:     SaveRates(converter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/fx/rates/pegs",
			Method:      http.MethodPost,
			Handler:     ApplyPegs(converter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/fx/rates/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshRates(converter, provider, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/fx/convert",
			Method:      http.MethodGet,
			Handler:     ConvertAmount(converter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
