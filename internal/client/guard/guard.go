// Package guard gates protected client views on the locally stored session token.
//
// The check is advisory. The token is decoded without verifying its signature,
// because the client never holds the signing secret; the API verifies every
// request on its own. A view rendered by the guard can still be refused by the
// server, and callers must handle that.
package guard

import (
	"context"
	"time"

	"github.com/bioqr/bioqr-go/internal/crypto"
)

// TokenStore is the client's local token storage.
type TokenStore interface {
	Get() (string, error)
	Remove() error
}

// View is something the client can show.
type View interface {
	Render(ctx context.Context) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context) error

// Render calls f(ctx).
func (f ViewFunc) Render(ctx context.Context) error {
	return f(ctx)
}

// Outcome is what the guard decided to show.
type Outcome int

const (
	Redirect Outcome = iota
	Render
)

// Reason explains a Decision.
type Reason string

const (
	ReasonValid     Reason = "valid"
	ReasonNoToken   Reason = "no token"
	ReasonExpired   Reason = "expired"
	ReasonMalformed Reason = "malformed"
	ReasonStore     Reason = "store error"
)

// Decision is the result of a guard check.
type Decision struct {
	Outcome   Outcome
	Reason    Reason
	Identity  string
	ExpiresAt time.Time
	// Err is set when reading or clearing the local token failed.
	Err error
}

// Guard decides whether protected views may render.
type Guard struct {
	store TokenStore
	now   func() time.Time
}

// Option customises a Guard.
type Option func(*Guard)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Guard over store.
func New(store TokenStore, opts ...Option) *Guard {
	g := &Guard{store: store, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check inspects the stored token. An expired token is removed from the store.
func (g *Guard) Check() Decision {
	token, err := g.store.Get()
	if err != nil {
		return Decision{Outcome: Redirect, Reason: ReasonStore, Err: err}
	}
	if token == "" {
		return Decision{Outcome: Redirect, Reason: ReasonNoToken}
	}

	claims, err := crypto.Decode(token)
	if err != nil || claims.ExpiresAt == nil {
		return Decision{Outcome: Redirect, Reason: ReasonMalformed}
	}

	exp := claims.ExpiresAt.Time
	if exp.Before(g.now()) {
		return Decision{
			Outcome:   Redirect,
			Reason:    ReasonExpired,
			Identity:  claims.Identity(),
			ExpiresAt: exp,
			Err:       g.store.Remove(),
		}
	}

	return Decision{
		Outcome:   Render,
		Reason:    ReasonValid,
		Identity:  claims.Identity(),
		ExpiresAt: exp,
	}
}

// Protect wraps child so that it renders only when Check allows it; otherwise
// login renders instead. The decision is available to either view through
// FromContext.
func (g *Guard) Protect(child, login View) View {
	return ViewFunc(func(ctx context.Context) error {
		d := g.Check()
		ctx = context.WithValue(ctx, decisionKey{}, d)
		if d.Outcome == Render {
			return child.Render(ctx)
		}
		return login.Render(ctx)
	})
}

type decisionKey struct{}

// FromContext returns the decision made by Protect for the view being rendered.
func FromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}
