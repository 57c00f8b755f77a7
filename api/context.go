package api

import (
	"context"
)

type keyType string

const (
	adminKey keyType = "admin"
)

// ctxWithAdmin records the authenticated admin on the request context
func ctxWithAdmin(ctx context.Context, admin string) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// adminFromContext returns the authenticated admin, or "anonymous" when the
// mutation routes are not gated.
func adminFromContext(ctx context.Context) string {
	if admin, ok := ctx.Value(adminKey).(string); ok && admin != "" {
		return admin
	}
	return "anonymous"
}
