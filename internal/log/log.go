// Package log configures the process logger: logrus with the nested
// formatter, optionally teeing into a rotated file.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RequestIDKey is the context key and log field holding the request id.
const RequestIDKey = "request_id"

type Fields = logrus.Fields

// Options controls logger construction.
type Options struct {
	Level    string
	File     string
	NoColors bool
	Caller   bool
}

var (
	mu     sync.RWMutex
	logger = logrus.StandardLogger()
)

// New builds a logger from opts. An empty level means info.
func New(opts Options) (*logrus.Logger, error) {
	l := logrus.New()

	lvl := logrus.InfoLevel
	if opts.Level != "" {
		var err error
		lvl, err = logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	l.SetLevel(lvl)

	l.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColors,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		FieldsOrder:     []string{RequestIDKey, "component"},
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})

	writers := []io.Writer{os.Stderr}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))
	l.SetReportCaller(opts.Caller)
	return l, nil
}

// Setup builds a logger and installs it as the package logger.
func Setup(opts Options) (*logrus.Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return l, nil
}

// L returns the package logger.
func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Or returns l, or the package logger when l is nil.
func Or(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return L()
	}
	return l
}

func Debug(fields Fields, msg string) { L().WithFields(fields).Debug(msg) }
func Info(fields Fields, msg string)  { L().WithFields(fields).Info(msg) }
func Warn(fields Fields, msg string)  { L().WithFields(fields).Warn(msg) }
func Error(fields Fields, msg string) { L().WithFields(fields).Error(msg) }

type ctxKey struct{}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "unknown".
func RequestID(ctx context.Context) string {
	if ctx != nil {
		if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
			return id
		}
	}
	return "unknown"
}

// FromContext returns an entry of l tagged with the request id in ctx.
func FromContext(ctx context.Context, l *logrus.Logger) *logrus.Entry {
	return Or(l).WithField(RequestIDKey, RequestID(ctx))
}
