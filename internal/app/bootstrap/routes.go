// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	creditimportfeature "github.com/dalemusser/credithub/internal/app/features/creditimport"
	errorsfeature "github.com/dalemusser/credithub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/credithub/internal/app/features/health"
	logoutfeature "github.com/dalemusser/credithub/internal/app/features/logout"
	"github.com/dalemusser/credithub/internal/app/store/audit"
	userstore "github.com/dalemusser/credithub/internal/app/store/users"
	"github.com/dalemusser/credithub/internal/app/system/auditlog"
	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// CreditHub initializes the template engine, applies session middleware,
// and mounts the health check, logout, the error pages and the credit import.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Committee changes and disabled accounts take effect on the next request.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.CreditHubMongoDatabase))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	auditLog := auditlog.New(audit.New(deps.CreditHubMongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CreditHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Bulk credit import
	importHandler := creditimportfeature.NewHandler(deps.CreditHubMongoDatabase, creditimportfeature.Options{
		MaxBytes:       appCfg.ImportMaxBytes,
		MaxConcurrency: appCfg.ImportMaxConcurrency,
	}, errLog, auditLog, logger)
	r.Mount("/admin/credits", creditimportfeature.Routes(importHandler))

	return r, nil
}
