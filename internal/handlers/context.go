package handlers

import (
	"context"
	"net/http"

	"belediyeBack/internal/models"
)

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller attached by the auth middleware.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	return id, ok
}

// mustIdentity writes a 401 when the request carries no caller.
func mustIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		WriteError(w, models.ErrUnauthorized)
	}
	return id, ok
}
