package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// log is the process-wide logger, a no-op until Initialize is called
	log = zap.NewNop()

	sentryClient *sentry.Client
)

// Config holds logger configuration
type Config struct {
	Debug bool

	// SentryDSN enables error reporting; SentryClient takes precedence when set
	SentryDSN       string
	SentryClient    *sentry.Client
	BreadcrumbLevel zapcore.Level

	// Service is attached to every entry as the "service" field
	Service string
	Tags    map[string]string
}

// Initialize builds the global logger. Entries at Error and above are also
// reported to sentry when a DSN or client is configured.
func Initialize(cfg Config) error {
	base, err := newZapConfig(cfg.Debug).Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" || cfg.SentryClient != nil {
		base, err = attachSentry(base, cfg)
		if err != nil {
			return err
		}
	}

	if cfg.Service != "" {
		base = base.With(zap.String("service", cfg.Service))
	}
	log = base

	return nil
}

func newZapConfig(debug bool) zap.Config {
	if debug {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return zc
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return zc
}

func attachSentry(base *zap.Logger, cfg Config) (*zap.Logger, error) {
	sentryClient = cfg.SentryClient
	if sentryClient == nil {
		client, err := sentry.NewClient(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			AttachStacktrace: true,
			Debug:            cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		sentryClient = client
	}

	breadcrumbLevel := cfg.BreadcrumbLevel
	if breadcrumbLevel == zapcore.InvalidLevel {
		breadcrumbLevel = zapcore.InfoLevel
	}

	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   breadcrumbLevel,
		Tags:              cfg.Tags,
	}, zapsentry.NewSentryClientFromClient(sentryClient))
	if err != nil {
		return nil, err
	}

	return zapsentry.AttachCoreToLogger(core, base), nil
}

// Sync flushes buffered log entries
func Sync() {
	_ = log.Sync()
}

// Flush waits up to timeout for queued sentry events
func Flush(timeout time.Duration) {
	if sentryClient != nil {
		sentryClient.Flush(timeout)
	}
}

// FromContext returns the logger scoped to the sentry hub carried by ctx
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	return log.With(zapsentry.Context(ctx))
}

// Default returns the global logger
func Default() *zap.Logger {
	return log
}

// TokenID tags an entry with a marketplace token id
func TokenID(id uint64) zap.Field {
	return zap.Uint64("token_id", id)
}

// TxHash tags an entry with a transaction hash
func TxHash(hash common.Hash) zap.Field {
	return zap.String("tx_hash", hash.Hex())
}

// Block tags an entry with a block number
func Block(number uint64) zap.Field {
	return zap.Uint64("block_number", number)
}

// Address tags an entry with an account address
func Address(address common.Address) zap.Field {
	return zap.String("address", address.Hex())
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

// Error logs err as the message
func Error(err error, fields ...zap.Field) {
	log.Error(errorMessage(err), fields...)
}

func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	FromContext(ctx).Error(errorMessage(err), fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}

func FatalCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

func errorMessage(err error) string {
	if err == nil {
		return "error occurred"
	}
	return err.Error()
}
