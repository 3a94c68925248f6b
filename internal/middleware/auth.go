package middleware

import (
	"context"
	"errors"
	"net/http"

	"marketmate-be/internal/auth"
	"marketmate-be/internal/logger"
	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenParser verifies a bearer token and returns the account id it carries.
type TokenParser interface {
	Parse(token string) (string, error)
}

// AccountResolver loads the account a verified token refers to.
type AccountResolver interface {
	Resolve(ctx context.Context, id string) (*user.Account, error)
}

const (
	MsgNoToken         = "Not authorized, no token provided"
	MsgInvalidToken    = "Not authorized, invalid token"
	MsgUserNotFound    = "User not found"
	MsgInternal        = "Internal server error"
	MsgTooManyRequests = "Too many requests, please try again later"
)

const contextAccountKey = "account"

type accountCtxKey struct{}

func WithAccount(ctx context.Context, a *user.Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, a)
}

func AccountFromContext(ctx context.Context) (*user.Account, bool) {
	a, ok := ctx.Value(accountCtxKey{}).(*user.Account)
	return a, ok && a != nil
}

// AccountFrom returns the account stored by Authenticate.
func AccountFrom(c *gin.Context) (*user.Account, bool) {
	v, ok := c.Get(contextAccountKey)
	if !ok {
		return nil, false
	}
	a, ok := v.(*user.Account)
	return a, ok && a != nil
}

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// AbortInternal logs err and answers with a generic 500 carrying the request id.
func AbortInternal(c *gin.Context, err error) {
	ctx := c.Request.Context()
	logger.FromCtx(ctx).Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"message":   MsgInternal,
		"requestId": logger.RequestIDFrom(ctx),
	})
}

// Authenticate re-verifies the bearer token on every request and loads the
// account it names.
func Authenticate(tokens TokenParser, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := auth.ExtractAccessToken(c.Request)
		if raw == "" {
			abortMessage(c, http.StatusUnauthorized, MsgNoToken)
			return
		}

		id, err := tokens.Parse(raw)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Debug("token rejected", zap.Error(err))
			abortMessage(c, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		account, err := accounts.Resolve(c.Request.Context(), id)
		if errors.Is(err, user.ErrAccountNotFound) {
			abortMessage(c, http.StatusUnauthorized, MsgUserNotFound)
			return
		}
		if err != nil {
			AbortInternal(c, err)
			return
		}

		c.Set(contextAccountKey, account)
		c.Set(logger.ContextAccountIDKey, account.ID)
		ctx := logger.WithAccountID(c.Request.Context(), account.ID)
		c.Request = c.Request.WithContext(WithAccount(ctx, account))

		c.Next()
	}
}
