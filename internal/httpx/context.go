package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	nonceKey     contextKey = "nonce"
	adminKey     contextKey = "admin"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// NonceFrom retrieves the script nonce issued for this response.
func NonceFrom(r *http.Request) string {
	if v, ok := r.Context().Value(nonceKey).(string); ok {
		return v
	}
	return ""
}

// IsAdminFrom reports the admin flag computed for this request.
func IsAdminFrom(r *http.Request) bool {
	v, _ := r.Context().Value(adminKey).(bool)
	return v
}

// ContextWithSecurity stores the per-request nonce and admin flag.
func ContextWithSecurity(ctx context.Context, nonce string, admin bool) context.Context {
	ctx = context.WithValue(ctx, nonceKey, nonce)
	return context.WithValue(ctx, adminKey, admin)
}
