package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatehouseio/gatehouse/internal/gate/service"
	"github.com/gatehouseio/gatehouse/internal/gate/store"
	"github.com/gatehouseio/gatehouse/pkg/httpx"
	"github.com/gatehouseio/gatehouse/pkg/jwtx"
	"github.com/gatehouseio/gatehouse/pkg/slogx"

	_ "github.com/gatehouseio/gatehouse/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	validate     *Validator

	store          store.Store
	AccountService *service.AccountService
	MFAService     *service.MFAService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		validate:     NewValidator(),
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerMFA()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatehouse Authentication API
//	@version		0.1.0
//	@description	Credential registration and sign-in service issuing stateless JWT access tokens.
//	@description
//	@description				All tokens are signed with HMAC-SHA256 (HS256) using a shared server secret.
//
//	@contact.name				Gatehouse Team
//	@contact.url				https://github.com/gatehouseio/gatehouse
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{
		AccountService: r.AccountService,
		Validate:       r.validate,
	}
	signInHandler := &SignInHandler{
		AccountService: r.AccountService,
		Validate:       r.validate,
	}
	claimsHandler := &ClaimsHandler{}

	r.Mux.Handle("POST /v1/auth/register", registerHandler)
	r.Mux.Handle("POST /v1/auth/signin", signInHandler)

	// Claims are served only from the context the bearer gate populates.
	r.Mux.Handle("GET /v1/auth/claims",
		httpx.Chain(claimsHandler,
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{AccountService: r.AccountService}

	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
	)

	r.Mux.Handle("GET /v1/profile", secured)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{
		MFAService: r.MFAService,
		Validate:   r.validate,
	}

	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.verifier),
	)
	securedActivate := httpx.Chain(http.HandlerFunc(h.HandleActivate),
		httpx.AuthnMiddleware(r.verifier),
	)

	r.Mux.Handle("POST /v1/mfa/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/mfa/activate", securedActivate)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
