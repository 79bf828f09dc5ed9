// Package rest exposes the public HTTP API: routing, the per-request identity
// resolver and the JSON handlers over the service layer.
package rest

import (
	"context"

	"github.com/growject/growject/internal/server/models"
)

type ctxKey string

const callerKey ctxKey = "caller"

// Capability is an enumerated permission. The system currently issues a
// single capability to every account; modeling it explicitly keeps identity
// data and authorization capability apart.
type Capability string

const CapabilityBasicUser Capability = "basic-user"

// Caller is the identity resolved for the current request. It lives only in
// that request's context and is never shared or cached across requests.
type Caller struct {
	User         *models.User
	Capabilities []Capability
}

func withCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromContext returns the authenticated caller attached to ctx, if any.
func CallerFromContext(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(callerKey).(*Caller)
	return c, ok
}
