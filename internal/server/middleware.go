package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"gitlab.com/ingwane/api/enquiry-service/pkg/utils"
)

// maxRequestBodyBytes caps JSON payload size.
const maxRequestBodyBytes = 1 << 20

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLogMiddleware assigns each request a correlation ID, stores it
// on the context for downstream log lines, and writes an access log
// entry with metrics when the request completes.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))
		duration := time.Since(start)

		observer.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), duration)
		logger.FromContext(ctx).Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", duration),
			zap.String("remote_ip", clientIP(r)),
		)
	})
}

// recoveryMiddleware turns handler panics into JSON 500 responses.
// Panic detail is only exposed in development mode.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("Panic recovered in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				resp := errorResponse{Error: "Internal server error"}
				if s.cfg.IsDevelopment() {
					resp.Details = "panic: " + panicString(rec)
				} else {
					resp.Details = "Something went wrong"
				}
				utils.WriteJSONResponse(w, http.StatusInternalServerError, resp)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func panicString(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown"
}

// securityHeadersMiddleware sets a conservative header baseline on
// every response.
func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows credentialed cross-origin requests from the
// configured origin allow-list and answers preflights.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(s.cfg.CORS.AllowedOrigins))
	for _, origin := range s.cfg.CORS.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware rejects API requests from IPs over budget. Static
// assets and metrics are not limited.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") && !s.limiter.Allow(clientIP(r)) {
			observer.IncRateLimitRejection()
			logger.FromContext(r.Context()).Warn("Rate limit exceeded",
				zap.String("remote_ip", clientIP(r)),
				zap.String("path", r.URL.Path))
			utils.WriteJSONResponse(w, http.StatusTooManyRequests, errorResponse{
				Error: "Too many requests from this IP, please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// maxBodyMiddleware caps the request body size for API writes.
func (s *Server) maxBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the originating client address, honoring the first
// X-Forwarded-For hop set by the reverse proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
