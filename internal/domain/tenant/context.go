// Package tenant defines the Company aggregate and the explicit tenant
// context every data access is scoped by. There is no ambient global tenant
// state: callers carry a Context value (Scoped or Unscoped) through
// context.Context and the persistence layer refuses tenant-scoped writes
// without one.
package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Context identifies which tenant, if any, an operation runs under.
//
// Scoped contexts confine every query and write to one company. Unscoped
// contexts bypass scoping entirely and are reserved for trusted execution:
// migrations, batch jobs and platform operators.
type Context struct {
	companyID uuid.UUID
	scoped    bool
}

// Scoped returns a Context confined to the given company
func Scoped(companyID uuid.UUID) Context {
	return Context{companyID: companyID, scoped: true}
}

// Unscoped returns a Context that bypasses tenant scoping
func Unscoped() Context {
	return Context{}
}

// IsScoped reports whether the context is confined to a company
func (c Context) IsScoped() bool {
	return c.scoped
}

// CompanyID returns the company the context is scoped to.
// The second return is false for unscoped contexts.
func (c Context) CompanyID() (uuid.UUID, bool) {
	if !c.scoped {
		return uuid.Nil, false
	}
	return c.companyID, true
}

type contextKey struct{}

// Into attaches the tenant context to a context.Context
func Into(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// From extracts the tenant context. The second return is false when no
// tenant context was attached at all, which is distinct from an explicit
// Unscoped context.
func From(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(Context)
	return tc, ok
}

// CompanyIDFrom is a convenience for the common case: it returns the scoped
// company id, or false when the context is missing or unscoped.
func CompanyIDFrom(ctx context.Context) (uuid.UUID, bool) {
	tc, ok := From(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return tc.CompanyID()
}
