package logger

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName tags every entry so shared log sinks can tell processes apart.
const ServiceName = "marketmate-api"

var current atomic.Pointer[zap.Logger]

// newConfig picks JSON output for production and a colored console otherwise.
// An unparsable level leaves the environment's default in place.
func newConfig(env, level string) zap.Config {
	var cfg zap.Config
	switch env {
	case "production":
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.EncoderConfig = zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			MessageKey:     "message",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl, err := zap.ParseAtomicLevel(level); level != "" && err == nil {
		cfg.Level = lvl
	}
	return cfg
}

// Init builds the process logger and installs it as zap's global too.
func Init(env, level string) {
	l, err := newConfig(env, level).Build(
		zap.AddCaller(),
		zap.Fields(zap.String("service", ServiceName)),
	)
	if err != nil {
		panic(err)
	}
	use(l)
}

func use(l *zap.Logger) {
	current.Store(l)
	zap.ReplaceGlobals(l)
}

// L returns the process logger, building one from APP_ENV and LOG_LEVEL on first use.
func L() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	return current.Load()
}

func Sync() {
	if l := current.Load(); l != nil {
		_ = l.Sync()
	}
}
