package store

import "context"

// ContextKey is the key used to store the store in the context.
var ContextKey = struct{ string }{"store"}

// FromContext returns the store from the context.
func FromContext(ctx context.Context) Store {
	if s, ok := ctx.Value(ContextKey).(Store); ok {
		return s
	}
	return nil
}

// WithContext returns a new context with the store.
func WithContext(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, ContextKey, s)
}
