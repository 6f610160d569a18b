// Package principal carries the authenticated caller through a request's
// context.
//
// A Principal wraps the API key record the validation pipeline resolved,
// together with the remote address it arrived from. Handlers retrieve it
// with Get and derive every authorization decision from it; nothing
// downstream of the middleware re-reads the Authorization header.
package principal

import (
	"context"

	"github.com/google/uuid"

	"github.com/cerbhq/cerberus/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Principal.
	Key ContextKey = "principal"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	// Key is the validated API key record. Its hash has already been
	// checked; the plaintext is gone by the time a Principal exists.
	Key *model.ApiKey

	// RemoteAddr is the peer address the request arrived from.
	RemoteAddr string
}

// FromKey creates a Principal from a validated API key.
func FromKey(key *model.ApiKey) *Principal {
	return &Principal{Key: key}
}

// WithRemoteAddr sets the peer address.
func (p *Principal) WithRemoteAddr(addr string) *Principal {
	p.RemoteAddr = addr
	return p
}

// TenantID returns the tenant the caller belongs to.
func (p *Principal) TenantID() uuid.UUID {
	return p.Key.TenantID
}

// IsTenantWide returns true when the caller's key carries no project scope.
func (p *Principal) IsTenantWide() bool {
	return p.Key.IsTenantWide()
}

// Get retrieves the Principal from context.
func Get(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(Key).(*Principal)
	return p, ok
}

// Set stores a Principal in context.
func Set(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, Key, p)
}
