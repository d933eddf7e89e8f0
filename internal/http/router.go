package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobboard/internal/domain/user"
	"jobboard/internal/http/handlers"
	httpmw "jobboard/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	CompanyHandler     *handlers.CompanyHandler
	JobHandler         *handlers.JobHandler
	RefDataHandler     *handlers.RefDataHandler
	ApplicationHandler *handlers.ApplicationHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	RateLimiter        httpmw.Limiter
	Logger             *zap.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const (
	maxBodyBytes   = 1 << 20
	authRateLimit  = 10
	applyRateLimit = 30
	authRateWindow = time.Minute
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.limited(r.deps.AuthHandler.Register).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.limited(r.deps.AuthHandler.Login).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/refresh":
			r.deps.AuthHandler.Refresh(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.optional(r.deps.JobHandler.List).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/companies":
			r.deps.CompanyHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/categories":
			r.deps.RefDataHandler.ListCategories(w, req)
			return
		case req.Method == http.MethodGet && path == "/job-types":
			r.deps.RefDataHandler.ListJobTypes(w, req)
			return
		case req.Method == http.MethodGet && path == "/locations":
			r.deps.RefDataHandler.ListLocations(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/companies/") && path != "/companies/mine":
			r.deps.CompanyHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/categories/"):
			r.deps.RefDataHandler.GetCategory(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/job-types/"):
			r.deps.RefDataHandler.GetJobType(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/locations/"):
			r.deps.RefDataHandler.GetLocation(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && !strings.HasSuffix(path, "/applications") && path != "/jobs/mine":
			r.optional(r.deps.JobHandler.Get).ServeHTTP(w, req)
			return
		}

		protectedPrefixes := []string{"/auth/logout", "/users", "/companies", "/jobs", "/applications", "/categories", "/job-types", "/locations", "/admin"}
		for _, prefix := range protectedPrefixes {
			if strings.HasPrefix(path, prefix) {
				r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleProtected)).ServeHTTP(w, req)
				return
			}
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/auth/logout":
		r.deps.AuthHandler.Logout(w, req)
		return
	case req.Method == http.MethodGet && path == "/users/me":
		r.deps.UserHandler.GetMe(w, req)
		return
	case req.Method == http.MethodPatch && path == "/users/me":
		r.deps.UserHandler.UpdateMe(w, req)
		return
	case req.Method == http.MethodDelete && path == "/users/me":
		r.deps.UserHandler.DeactivateMe(w, req)
		return
	case req.Method == http.MethodPost && path == "/users/me/password":
		r.deps.AuthHandler.ChangePassword(w, req)
		return
	case req.Method == http.MethodPost && path == "/companies":
		r.deps.CompanyHandler.Create(w, req)
		return
	case req.Method == http.MethodGet && path == "/companies/mine":
		r.deps.CompanyHandler.GetMine(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/companies/"):
		r.deps.CompanyHandler.Delete(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		r.deps.JobHandler.Create(w, req)
		return
	case req.Method == http.MethodGet && path == "/jobs/mine":
		r.deps.JobHandler.ListMine(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		apply := httpmw.RateLimit(r.deps.RateLimiter, userKey, applyRateLimit, authRateWindow)(http.HandlerFunc(r.deps.ApplicationHandler.Apply))
		httpmw.RequireRole(user.RoleJobSeeker)(apply).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		r.deps.ApplicationHandler.ListForJob(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Update(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/my":
		r.deps.ApplicationHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Withdraw(w, req)
		return
	case req.Method == http.MethodPost && path == "/categories":
		r.deps.RefDataHandler.CreateCategory(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/categories/"):
		r.deps.RefDataHandler.UpdateCategory(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/categories/"):
		r.deps.RefDataHandler.DeleteCategory(w, req)
		return
	case req.Method == http.MethodPost && path == "/job-types":
		r.deps.RefDataHandler.CreateJobType(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/job-types/"):
		r.deps.RefDataHandler.UpdateJobType(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/job-types/"):
		r.deps.RefDataHandler.DeleteJobType(w, req)
		return
	case req.Method == http.MethodPost && path == "/locations":
		r.deps.RefDataHandler.CreateLocation(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/locations/"):
		r.deps.RefDataHandler.UpdateLocation(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/locations/"):
		r.deps.RefDataHandler.DeleteLocation(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.AdminList)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/admin/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.AdminCreate)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/admin/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.AdminGet)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/admin/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.AdminUpdate)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.AdminDelete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/admin/jobs/deactivate-stale":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.JobHandler.DeactivateStale)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) limited(handler http.HandlerFunc) http.Handler {
	return httpmw.RateLimit(r.deps.RateLimiter, httpmw.ClientIP, authRateLimit, authRateWindow)(handler)
}

func (r *Router) optional(handler http.HandlerFunc) http.Handler {
	return r.deps.AuthMiddleware.OptionalAuthenticate(handler)
}

// userKey buckets rate limits per account rather than per address. Runs
// after Authenticate, so a missing id falls back to the client IP.
func userKey(req *http.Request) string {
	if id, ok := httpmw.UserIDFromContext(req.Context()); ok {
		return "user:" + id.String()
	}
	return httpmw.ClientIP(req)
}
