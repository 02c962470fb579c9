// Package reporting forwards unexpected server errors to Sentry.
package reporting

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Reporter receives errors that end up as 500 responses and recovered panics.
type Reporter interface {
	CaptureException(err error)
	Recover(rec interface{})
	Flush(timeout time.Duration) bool
}

// Nop discards everything.
type Nop struct{}

func (Nop) CaptureException(error)   {}
func (Nop) Recover(interface{})      {}
func (Nop) Flush(time.Duration) bool { return true }

type Sentry struct {
	hub *sentry.Hub
}

// New initializes Sentry when dsn is set and returns Nop otherwise.
func New(dsn, environment, release string, log *zap.Logger) Reporter {
	if dsn == "" {
		log.Info("SENTRY_DSN not set, error reporting disabled")
		return Nop{}
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		log.Warn("sentry initialization failed", zap.Error(err))
		return Nop{}
	}
	log.Info("sentry initialized", zap.String("environment", environment))
	return &Sentry{hub: sentry.CurrentHub()}
}

func (s *Sentry) CaptureException(err error) {
	if err == nil {
		return
	}
	s.hub.CaptureException(err)
}

func (s *Sentry) Recover(rec interface{}) {
	s.hub.Recover(rec)
}

func (s *Sentry) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}
