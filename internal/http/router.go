package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobpulse/internal/http/handlers"
	"jobpulse/internal/http/metrics"
	httpmw "jobpulse/internal/http/middleware"
)

type RouterDependencies struct {
	PostingHandler   *handlers.PostingHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	MatchingHandler  *handlers.MatchingHandler
	EventHandler     *handlers.EventHandler
	AdminHandler     *handlers.AdminHandler
	MetricsHandler   *handlers.MetricsHandler
	AuthMiddleware   *httpmw.AuthMiddleware
	Metrics          *metrics.Collector
	Logger           *zap.Logger
	ViewLimiter      httpmw.Limiter
	ViewRateLimit    int
	ViewRateWindow   time.Duration
	RequestTimeout   time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
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
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/view"):
			limited := httpmw.RateLimit(r.deps.ViewLimiter, httpmw.ClientIP, r.deps.ViewRateLimit, r.deps.ViewRateWindow)(http.HandlerFunc(r.deps.PostingHandler.RecordView))
			limited.ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/events":
			r.deps.EventHandler.List(w, req)
			return
		}

		if strings.HasPrefix(path, "/postings") || strings.HasPrefix(path, "/events") || strings.HasPrefix(path, "/admin") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/postings":
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/postings":
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/analytics"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.AnalyticsHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/suggestions"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.MatchingHandler.Suggestions)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/matches"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.MatchingHandler.Matches)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/broadcast"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.MatchingHandler.Broadcast)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/publish"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Publish)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/unpublish"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Unpublish)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/postings/") && strings.HasSuffix(path, "/boost"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Boost)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/postings/"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/postings/"):
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.PostingHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/events":
		httpmw.RequireRole(httpmw.RoleEmployer)(http.HandlerFunc(r.deps.EventHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/admin/expiry":
		httpmw.RequireRole(httpmw.RoleAdmin)(http.HandlerFunc(r.deps.AdminHandler.TriggerExpiry)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
