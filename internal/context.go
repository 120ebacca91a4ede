package internal

import "context"

type ctxKey string

const ContextOwnerKey ctxKey = "ownerID"

// OwnerIDFromContext returns the authenticated owner, or false when the request is anonymous.
func OwnerIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	ownerID, ok := ctx.Value(ContextOwnerKey).(int64)
	if !ok || ownerID <= 0 {
		return 0, false
	}
	return ownerID, true
}

func ContextWithOwnerID(ctx context.Context, ownerID int64) context.Context {
	return context.WithValue(ctx, ContextOwnerKey, ownerID)
}
