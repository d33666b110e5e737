package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	sessionIDKey contextKey = "sessionID"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// SessionIDFrom retrieves the browse session ID recorded for access logging.
func SessionIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(sessionIDKey).(*string); ok && v != nil {
		return *v
	}
	return ""
}

// ContextWithSessionSlot reserves a slot a handler can fill with SetSessionID
// so the access log sees the session the request touched.
func ContextWithSessionSlot(ctx context.Context) context.Context {
	var id string
	return context.WithValue(ctx, sessionIDKey, &id)
}

// SetSessionID records the browse session handled by the request.
func SetSessionID(r *http.Request, id string) {
	if v, ok := r.Context().Value(sessionIDKey).(*string); ok && v != nil {
		*v = id
	}
}
