package app

import (
	"fmt"

	"gorm.io/gorm"

	apphttp "github.com/yungbote/pactify-backend/internal/http"
	httpH "github.com/yungbote/pactify-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pactify-backend/internal/http/middleware"
	"github.com/yungbote/pactify-backend/internal/http/pages"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Contract *httpH.ContractHandler
	Wizard   *httpH.WizardHandler
	Realtime *httpH.RealtimeHandler
	Page     *httpH.PageHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services, hub *realtime.SSEHub, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	auth := httpH.NewAuthHandler(log, services.Auth, httpH.CookieConfig{Secure: cfg.CookieSecure, Domain: cfg.CookieDomain})
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Auth:     auth,
		User:     httpH.NewUserHandler(services.User),
		Contract: httpH.NewContractHandler(log, services.Contract, metrics),
		Wizard:   httpH.NewWizardHandler(services.Wizard),
		Realtime: httpH.NewRealtimeHandler(log, hub),
		Page:     httpH.NewPageHandler(log, auth, services.User, services.Contract, services.Wizard),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) (*apphttp.Server, error) {
	tmpl, err := pages.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		AllowedOrigins:  cfg.AllowedOrigins,
		Metrics:         metrics,
		Pages:           tmpl,
		AuthMiddleware:  middleware.Auth,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		ContractHandler: handlers.Contract,
		WizardHandler:   handlers.Wizard,
		RealtimeHandler: handlers.Realtime,
		PageHandler:     handlers.Page,
		HealthHandler:   handlers.Health,
	}), nil
}
