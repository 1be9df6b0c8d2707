// Package http is the web surface: server-rendered pages for entering
// income, expenses, and donors, plus period reports with printable ledger
// pages.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hisab/internal/backend"
	"hisab/internal/cache"
	"hisab/internal/core"
	"hisab/internal/i18n"
	applog "hisab/internal/log"
	"hisab/internal/report"
	"hisab/internal/services"
	appweb "hisab/web"
)

type Server struct {
	http.Server
	templates *template.Template

	backend backend.Backend
	reports *services.ReportService
	httpLog *applog.StructuredLogger

	rateLimiter  *rateLimiter
	metrics      *securityMetrics
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
// The snapshot cache is invalidated through the transaction service hook, so
// a fresh save shows up in the very next report load.
func NewServer(addr string, result *backend.Result) *Server {
	mux := http.NewServeMux()

	snapshots := cache.NewLRUCache[*report.Snapshot](64, 5*time.Minute)
	reports := services.NewReportService(result.Backend, snapshots)
	if result.Transactions != nil {
		result.Transactions.OnWrite(reports.Invalidate)
	}

	manager := cache.NewManager()
	manager.Register(snapshots)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		backend: result.Backend,
		reports: reports,
		httpLog: applog.NewStructuredLogger(applog.New(applog.Config{
			Component: applog.ComponentHTTP,
			Handler:   slog.Default().Handler(),
		})),
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		cacheManager: manager,
	}

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("/income", s.withSecurityHeaders(s.handleIncome))
	mux.HandleFunc("/expenses", s.withSecurityHeaders(s.handleExpenses))
	mux.HandleFunc("/donors", s.withSecurityHeaders(s.handleDonors))
	mux.HandleFunc("/reports", s.withSecurityHeaders(s.handleReports))
	mux.HandleFunc("/reports/print", s.withSecurityHeaders(s.handleReportPrint))
	mux.HandleFunc("/reports/export.csv", s.withSecurityHeaders(s.handleReportExport))
	mux.HandleFunc("/language", s.withSecurityHeaders(s.handleLanguageToggle))

	// UI partials
	mux.HandleFunc("/ui/recent-transactions", s.withSecurityHeaders(s.handleRecentPartial))
	mux.HandleFunc("/ui/report-summary", s.withSecurityHeaders(s.handleReportSummaryPartial))

	return s
}

// templateFuncs exposes translation, direction, and money formatting to the
// templates. Translation lookups go through the process-wide locale.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t":    i18n.T,
		"dir":  i18n.Dir,
		"lang": func() string { return string(i18n.Current()) },
		"money": func(m core.Money) string {
			return m.String()
		},
	}
}

// Shutdown stops the HTTP server and background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging. POSTs are rate limited per client IP.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r, s.metrics)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.httpLog.LogHTTPStart(ctx, r, clientIP)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request", "client_ip", clientIP, "url", r.URL.String())
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.httpLog.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
