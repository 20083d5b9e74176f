// Package sentry wraps the sentry-go client in a small builder used by
// the HTTP error handler for out-of-band alerts. Sends happen on a
// detached goroutine; the request path never waits on them and their
// failures are only logged.
package sentry

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long a fatal capture or graceful shutdown waits
// for buffered events.
var FlushTime = 2 * time.Second

// maxTraceLength caps stack traces attached to alerts; the alerting
// channel rejects oversized payloads.
const maxTraceLength = 3000

const truncationMarker = "\n... (truncated)"

type Sentry struct {
	context       echo.Context
	error         error
	message       string
	level         sentrygo.Level
	extras        map[string]interface{}
	tags          map[string]string
	contextValues map[string]sentrygo.Context
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithMessage(message string) *Sentry {
	s.message = message
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) WithContextValues(contextValues map[string]sentrygo.Context) *Sentry {
	s.contextValues = contextValues
	return s
}

func (s *Sentry) Debug(message string) {
	s.message = message
	s.level = sentrygo.LevelDebug
	go s.sendMessage()
}

func (s *Sentry) Debugf(format string, args ...interface{}) {
	s.Debug(fmt.Sprintf(format, args...))
}

func (s *Sentry) Info(message string) {
	s.message = message
	s.level = sentrygo.LevelInfo
	go s.sendMessage()
}

func (s *Sentry) Infof(format string, args ...interface{}) {
	s.Info(fmt.Sprintf(format, args...))
}

func (s *Sentry) Warning(message string) {
	s.message = message
	s.level = sentrygo.LevelWarning
	go s.sendMessage()
}

func (s *Sentry) Warningf(format string, args ...interface{}) {
	s.Warning(fmt.Sprintf(format, args...))
}

// Error captures err with the current request's stack trace and network
// metadata attached, without blocking the caller.
func (s *Sentry) Error(err error) {
	s.error = err
	s.level = sentrygo.LevelError
	s.attachRequestDetails()
	go s.sendError()
}

func (s *Sentry) Errorf(format string, args ...interface{}) {
	s.Error(fmt.Errorf(format, args...))
}

// Fatal captures err synchronously and flushes before returning, for
// use on paths that are about to terminate the process.
func (s *Sentry) Fatal(err error) {
	s.error = err
	s.level = sentrygo.LevelFatal
	s.attachRequestDetails()
	s.sendError()
	sentrygo.Flush(FlushTime)
}

func (s *Sentry) Fatalf(format string, args ...interface{}) {
	s.Fatal(fmt.Errorf(format, args...))
}

// Truncate caps a stack trace at the maximum alert payload size,
// appending a marker when content was dropped.
func Truncate(trace string) string {
	if len(trace) <= maxTraceLength {
		return trace
	}
	return trace[:maxTraceLength] + truncationMarker
}

// Convenience constructors and standalone senders.

func WithContext(c echo.Context) *Sentry { return new(Sentry).WithContext(c) }

func WithExtras(extras map[string]interface{}) *Sentry { return new(Sentry).WithExtras(extras) }

func WithTags(tags map[string]string) *Sentry { return new(Sentry).WithTags(tags) }

func WithContextValues(values map[string]sentrygo.Context) *Sentry {
	return new(Sentry).WithContextValues(values)
}

func Debug(message string)                      { new(Sentry).Debug(message) }
func Debugf(format string, args ...interface{}) { new(Sentry).Debugf(format, args...) }
func Info(message string)                       { new(Sentry).Info(message) }
func Infof(format string, args ...interface{})  { new(Sentry).Infof(format, args...) }
func Warning(message string)                    { new(Sentry).Warning(message) }
func Warningf(format string, args ...interface{}) {
	new(Sentry).Warningf(format, args...)
}
func Error(err error)                           { new(Sentry).Error(err) }
func Errorf(format string, args ...interface{}) { new(Sentry).Errorf(format, args...) }
func Fatal(err error)                           { new(Sentry).Fatal(err) }
func Fatalf(format string, args ...interface{}) { new(Sentry).Fatalf(format, args...) }

func (s *Sentry) attachRequestDetails() {
	if s.extras == nil {
		s.extras = map[string]interface{}{}
	}
	s.extras["stacktrace"] = Truncate(string(debug.Stack()))
	if s.context != nil {
		s.extras["ip_address"] = s.context.RealIP()
		s.extras["port"] = remotePort(s.context)
	}
}

func (s *Sentry) sendError() {
	defer recoverSend()

	if !enabled() || s.error == nil {
		return
	}

	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureException(s.error)
	})
}

func (s *Sentry) sendMessage() {
	defer recoverSend()

	if !enabled() || s.message == "" {
		return
	}

	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureMessage(s.message)
	})
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	if s.level != "" {
		scope.SetLevel(s.level)
	}
	if len(s.extras) > 0 {
		scope.SetExtras(s.extras)
	}
	if len(s.tags) > 0 {
		scope.SetTags(s.tags)
	}
	for key, value := range s.contextValues {
		scope.SetContext(key, value)
	}
}

func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub().Clone()
}

func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

// Alert failures must never reach the response path.
func recoverSend() {
	if r := recover(); r != nil {
		slog.Error("sentry alert failed", "panic", r)
	}
}

func remotePort(c echo.Context) string {
	if c.Request() == nil {
		return ""
	}
	addr := c.Request().RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return ""
}
