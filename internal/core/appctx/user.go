package appctx

import "context"

// User identifies the authenticated operator for a request.
type User struct {
	Name string
}

type userContextKey struct{}

// WithUser adds the authenticated user to context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns the authenticated user from context, or nil.
func GetUser(ctx context.Context) *User {
	if v, ok := ctx.Value(userContextKey{}).(*User); ok {
		return v
	}
	return nil
}

// GetUserName returns the authenticated user's name or "Admin" as fallback.
// The operator name is free-text attribution on ledger and stock records.
func GetUserName(ctx context.Context) string {
	if u := GetUser(ctx); u != nil && u.Name != "" {
		return u.Name
	}
	return "Admin"
}
