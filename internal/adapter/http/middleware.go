package httpadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// HeaderSellerUsername carries the caller identity set by the gateway.
const HeaderSellerUsername = "X-Seller-Username"

type sellerKey struct{}

// identify resolves the calling seller. Requests without a known identity
// are rejected with 401.
func (h *Handler) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(HeaderSellerUsername)
		if username == "" {
			h.writeError(w, r, fmt.Errorf("%w: missing %s header", port.ErrUnauthorized, HeaderSellerUsername))
			return
		}
		seller, err := h.sellers.Resolve(r.Context(), username)
		if errors.Is(err, port.ErrNotFound) {
			h.writeError(w, r, fmt.Errorf("%w: unknown seller %q", port.ErrUnauthorized, username))
			return
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sellerKey{}, seller)))
	})
}

// requireAdmin must run after identify. The role comes from the stored
// seller, never from the request.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := currentSeller(r); s == nil || !s.IsAdmin() {
			writeErrorBody(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentSeller(r *http.Request) *domain.Seller {
	s, _ := r.Context().Value(sellerKey{}).(*domain.Seller)
	return s
}

// rateLimit rejects clients over their search quota with 429. Limiter
// failures let the request through.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			h.logger.Warn("rate limiter unavailable", slog.Any("error", err))
			ok = true
		}
		if !ok {
			w.Header().Set("Retry-After", "60")
			writeErrorBody(w, http.StatusTooManyRequests, "search rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
