// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	authapifeature "github.com/devcollab/devcollab/internal/app/features/authapi"
	healthfeature "github.com/devcollab/devcollab/internal/app/features/health"
	profileapifeature "github.com/devcollab/devcollab/internal/app/features/profileapi"
	projectsapifeature "github.com/devcollab/devcollab/internal/app/features/projectsapi"
	requestsapifeature "github.com/devcollab/devcollab/internal/app/features/requestsapi"
	credentialstore "github.com/devcollab/devcollab/internal/app/store/credentials"
	participantstore "github.com/devcollab/devcollab/internal/app/store/participants"
	projectstore "github.com/devcollab/devcollab/internal/app/store/projects"
	requeststore "github.com/devcollab/devcollab/internal/app/store/requests"
	sessionstore "github.com/devcollab/devcollab/internal/app/store/sessions"
	userstore "github.com/devcollab/devcollab/internal/app/store/users"
	"github.com/devcollab/devcollab/internal/app/system/auth"
	"github.com/devcollab/devcollab/internal/app/system/mailer"
	"github.com/devcollab/devcollab/internal/app/system/notify"
	"github.com/devcollab/devcollab/internal/app/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. DevCollab wires the stores,
// use cases, and the auth service here, then mounts the JSON API
// feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	projects := projectstore.New(db, logger)
	requests := requeststore.New(db)
	participants := participantstore.New(db)
	credentials := credentialstore.New(db)
	sessions := sessionstore.New(db)

	mail := mailer.New(appCfg.MailAPIURL, appCfg.MailAPIKey, appCfg.MailFrom, appCfg.MailFromName, logger)
	tokens := auth.NewTokens(appCfg.TokenSecret, appCfg.TokenTTL)
	authSvc := auth.NewService(credentials, users, sessions, tokens, mail, appCfg.BaseURL, logger)

	notifier := notify.NewAcceptNotifier(users, projects, mail, logger)

	projectUC := usecase.NewProjects(projects, requests, participants, users)
	requestUC := usecase.NewRequests(requests, projects, participants, notifier)
	participantUC := usecase.NewParticipants(participants, users)
	profileUC := usecase.NewProfile(users)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account endpoints
	authHandler := authapifeature.NewHandler(authSvc, logger)
	r.Mount("/api/auth", authapifeature.Routes(authHandler, authSvc))

	// Project endpoints
	projectsHandler := projectsapifeature.NewHandler(projectUC, participantUC, logger)
	r.Mount("/api/projects", projectsapifeature.Routes(projectsHandler, authSvc))

	// Join-request endpoints
	requestsHandler := requestsapifeature.NewHandler(requestUC, projectUC, logger)
	r.Mount("/api/requests", requestsapifeature.Routes(requestsHandler, authSvc))

	// Own-profile endpoints
	profileHandler := profileapifeature.NewHandler(profileUC, logger)
	r.Mount("/api/profile", profileapifeature.Routes(profileHandler, authSvc))

	return r, nil
}
