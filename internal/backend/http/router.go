package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/httpx"
	"github.com/robochamp/backend/pkg/slogx"
)

// Services bundles everything the router exposes.
type Services struct {
	Auth       *service.AuthService
	Arenas     *service.ArenaService
	Categories *service.CategoryService
	Teams      *service.TeamService
	Matches    *service.MatchService
	Users      *service.UserService
}

// Router registers the /v1 API plus health endpoints.
type Router struct {
	svc      Services
	verifier httpx.TokenVerifier

	// ready reports backend readiness (database reachable).
	ready func(ctx context.Context) error
}

func NewRouter(svc Services, verifier httpx.TokenVerifier, ready func(ctx context.Context) error) *Router {
	return &Router{svc: svc, verifier: verifier, ready: ready}
}

// Handler builds the full handler tree. Rate limit profiles by surface:
// credential endpoints strict, authenticated mutations moderate, public
// reads loose.
func (rt *Router) Handler(log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Each route gets its own limiter bucket so one hot endpoint cannot
	// starve its neighbors.
	strict := func() []httpx.Middleware {
		return []httpx.Middleware{httpx.RateLimitByIP(httpx.StrictLimit)}
	}
	public := func() []httpx.Middleware {
		return []httpx.Middleware{httpx.RateLimitByIP(httpx.PublicLimit)}
	}
	authed := func(roles ...string) []httpx.Middleware {
		mws := []httpx.Middleware{
			httpx.RateLimitByIP(httpx.ModerateLimit),
			httpx.AuthnMiddleware(rt.verifier),
		}
		if len(roles) > 0 {
			mws = append(mws, httpx.RequireRole(roles...))
		}
		return mws
	}
	admin := func() []httpx.Middleware {
		return authed(string(domain.RoleAdmin))
	}
	referee := func() []httpx.Middleware {
		return authed(string(domain.RoleAdmin), string(domain.RoleJudge))
	}

	handle := func(pattern string, h http.HandlerFunc, mws []httpx.Middleware) {
		mux.Handle(pattern, httpx.Chain(h, mws...))
	}

	// Auth core.
	handle("POST /v1/auth/signup", rt.handleSignUp, strict())
	handle("POST /v1/auth/signin", rt.handleSignIn, strict())
	handle("POST /v1/auth/verify-email", rt.handleVerifyEmail, strict())
	handle("POST /v1/auth/request-verification", rt.handleRequestVerification, strict())
	handle("POST /v1/auth/refresh", rt.handleRefresh, strict())
	handle("POST /v1/auth/forgot-password", rt.handleForgotPassword, strict())
	handle("POST /v1/auth/reset-password", rt.handleResetPassword, strict())
	handle("POST /v1/auth/logout", rt.handleLogout, authed())
	handle("POST /v1/auth/change-password", rt.handleChangePassword, authed())

	// Categories.
	handle("GET /v1/categories", rt.handleListCategories, public())
	handle("GET /v1/categories/{id}", rt.handleGetCategory, public())
	handle("POST /v1/categories", rt.handleCreateCategory, admin())
	handle("PUT /v1/categories/{id}", rt.handleUpdateCategory, admin())
	handle("DELETE /v1/categories/{id}", rt.handleDeleteCategory, admin())

	// Arenas.
	handle("GET /v1/arenas", rt.handleListArenas, public())
	handle("GET /v1/arenas/{id}", rt.handleGetArena, public())
	handle("POST /v1/arenas", rt.handleCreateArena, admin())
	handle("PUT /v1/arenas/{id}", rt.handleUpdateArena, admin())
	handle("DELETE /v1/arenas/{id}", rt.handleDeleteArena, admin())

	// Teams.
	handle("GET /v1/teams", rt.handleListTeams, public())
	handle("GET /v1/teams/{id}", rt.handleGetTeam, public())
	handle("POST /v1/teams", rt.handleCreateTeam, admin())
	handle("PUT /v1/teams/{id}", rt.handleUpdateTeam, admin())
	handle("DELETE /v1/teams/{id}", rt.handleDeleteTeam, admin())

	// Matches. Lifecycle transitions are referee territory.
	handle("GET /v1/matches", rt.handleListMatches, public())
	handle("GET /v1/matches/{id}", rt.handleGetMatch, public())
	handle("POST /v1/matches", rt.handleCreateMatch, admin())
	handle("PUT /v1/matches/{id}", rt.handleUpdateMatch, admin())
	handle("DELETE /v1/matches/{id}", rt.handleDeleteMatch, admin())
	handle("POST /v1/matches/{id}/start", rt.handleStartMatch, referee())
	handle("POST /v1/matches/{id}/pause", rt.handlePauseMatch, referee())
	handle("POST /v1/matches/{id}/end", rt.handleEndMatch, referee())
	handle("POST /v1/matches/{id}/cancel", rt.handleCancelMatch, referee())
	handle("POST /v1/matches/{id}/result", rt.handleSetMatchResult, referee())

	// Users (admin surface).
	handle("GET /v1/users", rt.handleListUsers, admin())
	handle("GET /v1/users/{id}", rt.handleGetUser, admin())
	handle("PUT /v1/users/{id}/role", rt.handleUpdateUserRole, admin())
	handle("DELETE /v1/users/{id}", rt.handleDeleteUser, admin())

	mux.HandleFunc("GET /livez", rt.handleLivez)
	mux.HandleFunc("GET /readyz", rt.handleReadyz)

	return slogx.HTTPMiddleware(log)(mux)
}
