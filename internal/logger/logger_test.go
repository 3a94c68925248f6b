package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// swap installs l for the duration of the test.
func swap(t *testing.T, l *zap.Logger) {
	t.Helper()
	prev := current.Load()
	current.Store(l)
	t.Cleanup(func() { current.Store(prev) })
}

func TestNewConfig(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		cfg := newConfig("production", "info")
		assert.Equal(t, "json", cfg.Encoding)
		assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
		assert.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
		assert.Equal(t, "message", cfg.EncoderConfig.MessageKey)
		assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
	})

	t.Run("Development with debug level", func(t *testing.T) {
		cfg := newConfig("development", "debug")
		assert.Equal(t, "console", cfg.Encoding)
		assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
	})

	t.Run("Invalid level keeps default", func(t *testing.T) {
		assert.Equal(t, zapcore.InfoLevel, newConfig("production", "loud").Level.Level())
		assert.Equal(t, zapcore.DebugLevel, newConfig("development", "").Level.Level())
	})
}

func TestInit(t *testing.T) {
	swap(t, nil)
	prevGlobal := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prevGlobal) })

	Init("production", "warn")
	l := current.Load()
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.Same(t, l, zap.L())
}

func TestServiceField(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	swap(t, zap.New(core, zap.Fields(zap.String("service", ServiceName))))

	FromCtx(context.Background()).Info("hello")

	logs := observed.TakeAll()
	require.Len(t, logs, 1)
	assert.Equal(t, ServiceName, logs[0].ContextMap()["service"])
}

func TestL(t *testing.T) {
	swap(t, nil)
	prevGlobal := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prevGlobal) })
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_LEVEL", "error")

	l := L()
	require.NotNil(t, l)
	assert.Same(t, l, L())
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestIDFrom(ctx))
	assert.Equal(t, "", AccountIDFrom(ctx))

	withReq := WithRequestID(ctx, "req-123")
	withBoth := WithAccountID(withReq, "acc-9")

	assert.Equal(t, "req-123", RequestIDFrom(withBoth))
	assert.Equal(t, "acc-9", AccountIDFrom(withBoth))
	assert.Equal(t, "", AccountIDFrom(withReq))
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	swap(t, zap.New(core))

	t.Run("Request and account", func(t *testing.T) {
		ctx := WithAccountID(WithRequestID(context.Background(), "req-abc-123"), "acc-1")
		FromCtx(ctx).Info("scoped")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "acc-1", fields["account_id"])
	})

	t.Run("Empty scope", func(t *testing.T) {
		FromCtx(context.Background()).Info("bare")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Empty(t, logs[0].ContextMap())
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		seen = RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
		assert.Equal(t, w.Header().Get(HeaderRequestID), seen)
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "test-id-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "test-id-123", seen)
	})
}

func TestAccessLog(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	swap(t, zap.New(core))

	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/items", func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithAccountID(c.Request.Context(), "acc-1"))
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	logs := observed.TakeAll()
	assert.Len(t, logs, 1)
	assert.Equal(t, "incoming request", logs[0].Message)

	fields := logs[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/items", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, "acc-1", fields["account_id"])
}
