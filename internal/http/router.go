package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/pactify-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pactify-backend/internal/http/middleware"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics
	Pages          *template.Template

	AuthMiddleware  *httpMW.AuthMiddleware
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	ContractHandler *httpH.ContractHandler
	WizardHandler   *httpH.WizardHandler
	RealtimeHandler *httpH.RealtimeHandler
	PageHandler     *httpH.PageHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))
	if cfg.Pages != nil {
		r.SetHTMLTemplate(cfg.Pages)
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateProfile)
		}

		// Contracts
		if cfg.ContractHandler != nil {
			protected.GET("/contract-templates", cfg.ContractHandler.ListTemplates)
			protected.GET("/contracts", cfg.ContractHandler.ListContracts)
			protected.POST("/contracts", cfg.ContractHandler.CreateContract)
			protected.GET("/contracts/:id", cfg.ContractHandler.GetContract)
		}

		// Contract wizard
		if cfg.WizardHandler != nil {
			protected.POST("/contract-wizards", cfg.WizardHandler.Start)
			protected.GET("/contract-wizards/:id", cfg.WizardHandler.Get)
			protected.POST("/contract-wizards/:id/template", cfg.WizardHandler.SelectTemplate)
			protected.PATCH("/contract-wizards/:id/fields", cfg.WizardHandler.SetField)
			protected.POST("/contract-wizards/:id/next", cfg.WizardHandler.Next)
			protected.POST("/contract-wizards/:id/back", cfg.WizardHandler.Back)
			protected.POST("/contract-wizards/:id/submit", cfg.WizardHandler.Submit)
		}
	}

	// Pages
	if cfg.PageHandler != nil && cfg.Pages != nil {
		r.GET("/sign-in", cfg.PageHandler.SignInForm)
		r.POST("/sign-in", cfg.PageHandler.SignIn)

		signOut := r.Group("/")
		dashboard := r.Group("/dashboard")
		if cfg.AuthMiddleware != nil {
			signOut.Use(cfg.AuthMiddleware.OptionalAuth())
			dashboard.Use(cfg.AuthMiddleware.RequireSession())
		}
		signOut.POST("/sign-out", cfg.PageHandler.SignOut)

		dashboard.GET("/contracts", cfg.PageHandler.ContractList)
		dashboard.GET("/contracts/new", cfg.PageHandler.NewContract)
		dashboard.GET("/contracts/new/:wid", cfg.PageHandler.WizardStep)
		dashboard.POST("/contracts/new/:wid/template", cfg.PageHandler.WizardTemplate)
		dashboard.POST("/contracts/new/:wid/details", cfg.PageHandler.WizardDetails)
		dashboard.POST("/contracts/new/:wid/back", cfg.PageHandler.WizardBack)
		dashboard.POST("/contracts/new/:wid/submit", cfg.PageHandler.WizardSubmit)
		dashboard.GET("/contracts/:id", cfg.PageHandler.ContractDetail)
	}

	return r
}
