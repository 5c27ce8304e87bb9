package mongo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultHealthInterval = 15 * time.Second
	pingTimeout           = 3 * time.Second
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Supervisor tracks whether the store is reachable. It pings on a fixed
// interval while healthy and with bounded exponential backoff once a ping
// fails, until the store answers again.
type Supervisor struct {
	client    Pinger
	interval  time.Duration
	log       zerolog.Logger
	available atomic.Bool
	onChange  func(available bool)
}

// NewSupervisor returns a supervisor that starts out available, since it is
// created right after a successful connect.
func NewSupervisor(client Pinger, interval time.Duration, log zerolog.Logger) *Supervisor {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	s := &Supervisor{client: client, interval: interval, log: log}
	s.available.Store(true)
	return s
}

// OnChange registers a callback invoked on every availability transition.
// It must be set before Run.
func (s *Supervisor) OnChange(fn func(available bool)) {
	s.onChange = fn
}

// Available reports the result of the latest probe.
func (s *Supervisor) Available() bool {
	return s.available.Load()
}

// Check pings the store once without touching the availability flag.
func (s *Supervisor) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

// Run probes the store until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	failures := 0
	for {
		wait := s.interval
		if failures > 0 {
			wait = Backoff(failures - 1)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if s.probe(ctx) {
			failures = 0
		} else {
			failures++
		}
	}
}

func (s *Supervisor) probe(ctx context.Context) bool {
	err := s.Check(ctx)
	up := err == nil

	if s.available.Swap(up) != up {
		if up {
			s.log.Info().Msg("mongo reachable again")
		} else {
			s.log.Error().Err(err).Msg("mongo unreachable, failing store-backed requests")
		}
		if s.onChange != nil {
			s.onChange(up)
		}
	}
	return up
}
