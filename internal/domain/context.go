package domain

import "context"

type principalKey struct{}
type restoringKey struct{}

// WithPrincipal stores a Principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the Principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithRestoring marks whether a session restore is in flight. The access
// guard renders a neutral loading view instead of redirecting while the
// flag is set.
func WithRestoring(ctx context.Context, restoring bool) context.Context {
	return context.WithValue(ctx, restoringKey{}, restoring)
}

// RestoringFromContext reports whether a session restore is in flight.
func RestoringFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(restoringKey{}).(bool)
	return v
}
