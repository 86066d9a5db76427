package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/habitta/internal/locale"
)

type TokenPurger interface {
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// PurgeResetTokens remove tokens de recuperação vencidos ou já usados.
func PurgeResetTokens(ctx context.Context, repo TokenPurger, onPurged func(int64)) error {
	n, err := repo.PurgeExpiredResetTokens(ctx, locale.Now())
	if err != nil {
		return err
	}

	if n > 0 {
		logrus.WithField("tokens", n).Info("purged password reset tokens")
	}
	if onPurged != nil {
		onPurged(n)
	}
	return nil
}

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(locale.Current())),
	}
}

// Hourly agenda job a cada hora cheia.
func (s *Scheduler) Hourly(name string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := job(ctx); err != nil {
			logrus.WithError(err).WithField("job", name).Error("scheduled job failed")
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop espera os jobs em execução terminarem.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
