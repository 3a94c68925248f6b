package logger

import (
	"context"

	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is what a request contributes to every entry logged under it.
type scope struct {
	requestID string
	accountID string
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeOf(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithAccountID marks ctx as acting for an authenticated account.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	s := scopeOf(ctx)
	s.accountID = accountID
	return context.WithValue(ctx, scopeKey{}, s)
}

func RequestIDFrom(ctx context.Context) string { return scopeOf(ctx).requestID }

func AccountIDFrom(ctx context.Context) string { return scopeOf(ctx).accountID }

// FromCtx returns the process logger tagged with whatever the request scope carries.
func FromCtx(ctx context.Context) *zap.Logger {
	s := scopeOf(ctx)

	fields := make([]zap.Field, 0, 2)
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	if s.accountID != "" {
		fields = append(fields, zap.String("account_id", s.accountID))
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
