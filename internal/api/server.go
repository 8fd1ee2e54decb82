package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ammarstationary/internal/config"
	"ammarstationary/internal/database"
	"ammarstationary/internal/domain"
	"ammarstationary/internal/metrics"
	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the storefront and back-office HTTP API.
type HTTPServer struct {
	cfg      config.APIConfig
	catalog  domain.CatalogService
	bookings domain.BookingService
	promos   domain.PromoService
	exports  domain.ExportEnqueuer
	cache    domain.PromoCache
	auth     *HTTPAuth
	server   *http.Server
	logger   *zerolog.Logger

	// Per-client budget for the write endpoints, enforced through the
	// shared cache so all API instances count against one window.
	writeLimit  int
	writeWindow time.Duration
}

func NewHTTPServer(cfg config.APIConfig, catalog domain.CatalogService, bookings domain.BookingService, promos domain.PromoService, exports domain.ExportEnqueuer, cache domain.PromoCache, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:         cfg,
		catalog:     catalog,
		bookings:    bookings,
		promos:      promos,
		exports:     exports,
		cache:       cache,
		auth:        NewHTTPAuth(cfg),
		logger:      logger,
		writeLimit:  models.RateLimitRequests,
		writeWindow: models.RateLimitWindow * time.Second,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/cards", srv.handleCards)
	mux.HandleFunc("/api/v1/cards/", srv.handleCardByID)
	mux.HandleFunc("/api/v1/categories", srv.handleCategories)
	mux.HandleFunc("/api/v1/services", srv.handleServices)
	mux.HandleFunc("/api/v1/contact", srv.handleContact)
	mux.HandleFunc("/api/v1/quote", srv.handleQuote)
	mux.HandleFunc("/api/v1/bookings", srv.handleCreateBooking)

	mux.HandleFunc("/api/v1/admin/cards", srv.requireAdmin(srv.handleAdminCards))
	mux.HandleFunc("/api/v1/admin/cards/", srv.requireAdmin(srv.handleAdminCardByID))
	mux.HandleFunc("/api/v1/admin/categories", srv.requireAdmin(srv.handleAdminCategories))
	mux.HandleFunc("/api/v1/admin/categories/", srv.requireAdmin(srv.handleAdminCategoryByID))
	mux.HandleFunc("/api/v1/admin/services", srv.requireAdmin(srv.handleAdminServices))
	mux.HandleFunc("/api/v1/admin/services/", srv.requireAdmin(srv.handleAdminServiceByID))
	mux.HandleFunc("/api/v1/admin/promo-codes", srv.requireAdmin(srv.handleAdminPromos))
	mux.HandleFunc("/api/v1/admin/promo-codes/", srv.requireAdmin(srv.handleAdminPromoByID))
	mux.HandleFunc("/api/v1/admin/bookings", srv.requireAdmin(srv.handleAdminBookings))
	mux.HandleFunc("/api/v1/admin/bookings/stats", srv.requireAdmin(srv.handleAdminBookingStats))
	mux.HandleFunc("/api/v1/admin/bookings/", srv.requireAdmin(srv.handleAdminBookingByID))
	mux.HandleFunc("/api/v1/admin/contact", srv.requireAdmin(srv.handleAdminContact))
	mux.HandleFunc("/api/v1/admin/exports", srv.requireAdmin(srv.handleAdminExports))

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the composed handler chain for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, ok := s.auth.Client(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing or invalid api key")
			return
		}
		if !client.Admin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

// allowWrite charges one request against the caller's per-client window in
// the shared cache. The cache failing does not block traffic.
func (s *HTTPServer) allowWrite(r *http.Request) bool {
	if s.cache == nil {
		return true
	}
	allowed, err := s.cache.CheckRateLimit(r.Context(), "ratelimit:"+clientIP(r), s.writeLimit, s.writeWindow)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rate limit check failed, allowing request")
		return true
	}
	return allowed
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps service errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrDuplicateCode):
		writeError(w, http.StatusConflict, "promo code already exists")
	case errors.Is(err, database.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid status transition")
	case errors.Is(err, database.ErrPromoNotUsable):
		writeError(w, http.StatusUnprocessableEntity, "promo code is not valid")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// pathTail returns the remainder after prefix, rejecting nested paths.
func pathTail(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	tail := strings.TrimPrefix(path, prefix)
	if tail == "" || strings.Contains(tail, "/") {
		return "", false
	}
	return tail, true
}
