package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the type for values this package stores in request contexts.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TokenClaimsContextKey holds the validated *auth.Claims.
	TokenClaimsContextKey ContextKey = "tokenClaims"

	// TraceIDKey holds the per-request trace ID string.
	TraceIDKey ContextKey = "traceID"
)

// traceIDBytes is the trace ID's entropy; hex-encoded to 32 characters.
const traceIDBytes = 16

// SetTraceID attaches a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the context's trace ID, or "" when none was set.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

func newTraceID() string {
	b := make([]byte, traceIDBytes)
	if _, err := rand.Read(b); err != nil {
		// Correlation still works with a weaker ID; it just loses
		// unpredictability.
		slog.Error("failed to generate random trace ID", "error", err)
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}
