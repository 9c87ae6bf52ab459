// Package reminders periodically announces listings whose pickup window is
// about to close.
package reminders

import (
	"context"
	"fmt"
	"time"

	"foodshare-backend/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Flagger is the listing store operation the job drives.
type Flagger interface {
	FlagExpiringSoon(ctx context.Context, window time.Duration) ([]domain.Listing, error)
}

type Service struct {
	Listings Flagger
	Schedule string        // cron spec, e.g. "@every 5m"
	Window   time.Duration // how far ahead of expiry to warn

	cron *cron.Cron
}

// cronLogger adapts zerolog to the cron logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Str("component", "cron").Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Str("component", "cron").Msg(msg)
}

// Start schedules the reminder job. It is a no-op when Schedule is empty.
func (s *Service) Start() error {
	if s.Schedule == "" {
		log.Info().Msg("expiry reminders disabled")
		return nil
	}
	s.cron = cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{})))
	if _, err := s.cron.AddFunc(s.Schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			log.Error().Err(err).Msg("expiry reminder run failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.Schedule, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", s.Schedule).Dur("window", s.Window).Msg("expiry reminders scheduled")
	return nil
}

// Stop waits up to 30s for a running job to finish.
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.cron.Stop(), 30*time.Second)
	defer cancel()
	<-ctx.Done()
}

// RunOnce flags the listings expiring within Window and returns how many were flagged.
func (s *Service) RunOnce(ctx context.Context) (int, error) {
	flagged, err := s.Listings.FlagExpiringSoon(ctx, s.Window)
	for _, l := range flagged {
		log.Info().Str("listing_id", l.ListingID.String()).Time("expiry_time", l.ExpiryTime).Msg("expiry reminder sent")
	}
	return len(flagged), err
}
