package httpx

import (
	"log/slog"
	"net/http"

	"booknotes/internal/security"
)

// Chain applies middlewares so that the first one listed runs first.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// SecurityContextMiddleware issues a fresh script nonce for every request,
// evaluates the admin flag from the "admin" query parameter and sets the
// matching Content-Security-Policy.
func SecurityContextMiddleware(tokens security.TokenSource, gate security.AdminGate, policy security.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := tokens.NextToken()
			if err != nil {
				slog.Error("nonce generation failed",
					slog.String("request_id", RequestIDFrom(r)),
					slog.String("error", err.Error()))
				InternalError(w)
				return
			}
			admin := gate.IsAdmin(r.URL.Query().Get("admin"))

			w.Header().Set("Content-Security-Policy", policy.Header(nonce))
			w.Header().Set("Referrer-Policy", "no-referrer")

			ctx := ContextWithSecurity(r.Context(), nonce, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecurityHeadersMiddleware sets the static hardening headers.
func SecurityHeadersMiddleware(enableHSTS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")

			if enableHSTS {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests whose admin flag is not set. It must run
// after SecurityContextMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdminFrom(r) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
