package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/api/handler"
	"github.com/99minutos/ebanking-console/internal/api/middleware"
	"github.com/99minutos/ebanking-console/internal/core/guard"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

// Deps are the collaborators of the console router.
type Deps struct {
	Sessions ports.SessionManager
	Screens  handler.ScreenSource
	// Health lists the dependencies checked by the readiness check.
	Health map[string]handler.Pinger
	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "ebanking_console",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper:    func(c echo.Context) bool { return c.Path() == "/metrics" },
	}))
	e.Use(middleware.Session(d.Sessions))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Sessions)
	adminHandler := handler.NewAdminHandler(d.Screens)
	agentHandler := handler.NewAgentHandler(d.Screens)
	clientHandler := handler.NewClientHandler(d.Screens)
	passwordHandler := handler.NewPasswordHandler(d.Screens)

	// --- Session routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)
	e.GET("/dashboard", authHandler.Dashboard, middleware.Guard(guard.RequireAuthenticated))

	pw := e.Group("/change-password", middleware.Guard(guard.RequireAuthenticated))
	pw.GET("", passwordHandler.Form)
	pw.POST("", passwordHandler.Submit)

	// --- Admin screens ---
	admin := e.Group("/admin", middleware.Guard(guard.RequireAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.POST("/charts", adminHandler.RefreshCharts)
	admin.PUT("/settings", adminHandler.SaveSettings)
	admin.GET("/agents", adminHandler.Agents)
	admin.POST("/agents", adminHandler.CreateAgent)
	admin.PUT("/agents/:id/status", adminHandler.ToggleAgent)
	admin.DELETE("/agents/:id", adminHandler.DeleteAgent)
	admin.GET("/currencies", adminHandler.Currencies)
	admin.POST("/currencies", adminHandler.CreateCurrency)
	admin.POST("/currencies/refresh", adminHandler.RefreshRates)
	admin.PUT("/currencies/:symbol/status", adminHandler.ToggleCurrency)
	admin.DELETE("/currencies/:symbol", adminHandler.DeleteCurrency)
	admin.GET("/system-settings", adminHandler.SystemSettings)
	admin.PUT("/system-settings", adminHandler.UpdateSystemSettings)
	admin.PUT("/system-settings/fee", adminHandler.UpdateFee)

	// --- Agent screens ---
	agent := e.Group("/agent", middleware.Guard(guard.RequireAgent))
	agent.GET("", agentHandler.Dashboard)
	agent.GET("/clients", agentHandler.Clients)
	agent.POST("/clients", agentHandler.CreateClient)
	agent.DELETE("/clients/:id", agentHandler.DeleteClient)
	agent.POST("/clients/:id/deposit", agentHandler.Deposit)
	agent.GET("/transactions", agentHandler.Transactions)
	agent.POST("/transactions/:id/verify", agentHandler.Verify)

	// --- Client screens ---
	client := e.Group("/client", middleware.Guard(guard.RequireClient))
	client.GET("", clientHandler.Dashboard)
	client.PUT("/reveal/:field", clientHandler.Reveal)
	client.POST("/crypto-transfer", clientHandler.TransferCrypto)
	client.GET("/transfer", clientHandler.Transfer)
	client.POST("/transfer", clientHandler.SubmitTransfer)
	client.GET("/mobile-recharge", clientHandler.MobileRecharge)
	client.POST("/mobile-recharge", clientHandler.SubmitRecharge)
	client.GET("/notifications", clientHandler.Notifications)
	client.PUT("/notifications/read-all", clientHandler.MarkAllNotificationsRead)
	client.PUT("/notifications/:id/read", clientHandler.MarkNotificationRead)
	client.DELETE("/notifications/:id", clientHandler.DeleteNotification)
	client.GET("/notifications/bell", clientHandler.Bell)
	client.PUT("/notifications/bell/toggle", clientHandler.ToggleBell)
	client.PUT("/notifications/bell/read-all", clientHandler.MarkAllBellRead)
	client.GET("/crypto-wallet", clientHandler.CryptoWallet)
	client.POST("/crypto-wallet/trade", clientHandler.Trade)
	client.PUT("/crypto-wallet/address", clientHandler.UpdateWalletAddress)

	// --- Health checks and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health/live", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Everything else goes to the login screen ---
	e.Any("/", authHandler.Fallback)
	e.Any("/*", authHandler.Fallback)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
