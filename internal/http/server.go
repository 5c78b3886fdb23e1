// Package http exposes the ledger over a small JSON API, the surface the
// invoice UI drives.
package http

import (
	"net/http"
	"time"

	"fatture/internal/ledger"
	"fatture/internal/log"
)

// handler timeout for a single request
const requestTimeout = 7 * time.Second

type Server struct {
	ledger  *ledger.Ledger
	logger  *log.Logger
	limiter *rateLimiter
}

// NewServer builds the API server. The returned http.Server has timeouts
// configured; callers may still adjust them before ListenAndServe.
func NewServer(addr string, lg *ledger.Ledger, logger *log.Logger, ratePerMinute int) *http.Server {
	s := &Server{
		ledger:  lg,
		logger:  logger.WithComponent(log.ComponentHTTP),
		limiter: newRateLimiter(ratePerMinute),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleHealth)

	mux.HandleFunc("/api/invoices", s.handleInvoices)
	mux.HandleFunc("/api/invoices/next-number", s.handleNextInvoiceNumber)
	mux.HandleFunc("/api/customers", s.handleCustomers)

	mux.HandleFunc("/api/analytics/monthly", s.handleMonthlyAnalytics)
	mux.HandleFunc("/api/analytics/yearly", s.handleYearlyAnalytics)
	mux.HandleFunc("/api/analytics/current-month", s.handleCurrentMonthAnalytics)
	mux.HandleFunc("/api/analytics/current-year", s.handleCurrentYearAnalytics)
	mux.HandleFunc("/api/analytics/summary", s.handleSummary)

	mux.HandleFunc("/api/settings", s.handleSettings)

	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/import", s.handleImport)
	mux.HandleFunc("/api/data", s.handleData)

	return &http.Server{
		Addr:           addr,
		Handler:        s.middleware(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

// middleware tags every request with an id, enforces the rate limit and
// logs the outcome.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		w.Header().Set("X-Request-ID", requestID)

		ip := clientIP(r)
		if !s.limiter.allow(ip) {
			s.logger.Warn("Rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, ip,
				log.FieldPath, r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("Request handled",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
