// Package jobs runs the periodic sweeps of the cinema: booking expiry,
// show reminders, movie releases and showtime completion.
package jobs

import (
	"cinemaverse/config"
	"cinemaverse/logger"
	"cinemaverse/metrics"
	"cinemaverse/service"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	JobExpireBookings   = "expire-bookings"
	JobSendReminders    = "send-reminders"
	JobReleaseMovies    = "release-movies"
	JobCompleteShowtime = "complete-showtimes"
)

// runTimeout bounds a single run of any job.
const runTimeout = 2 * time.Minute

type Runner struct {
	services  *service.Services
	scheduler gocron.Scheduler
	cron      *cron.Cron
}

// New registers every job without starting them.
func New(services *service.Services, settings config.Settings) (*Runner, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, errors.Wrap(err, "create scheduler")
	}
	r := &Runner{services: services, scheduler: s}

	singleton := gocron.WithSingletonMode(gocron.LimitModeReschedule)
	if _, err := s.NewJob(
		gocron.DurationJob(settings.ExpiryInterval),
		gocron.NewTask(r.ExpireBookings),
		gocron.WithName(JobExpireBookings),
		singleton,
	); err != nil {
		return nil, errors.Wrap(err, "schedule booking expiry")
	}
	if _, err := s.NewJob(
		gocron.DurationJob(settings.ReminderInterval),
		gocron.NewTask(r.SendReminders),
		gocron.WithName(JobSendReminders),
		singleton,
	); err != nil {
		return nil, errors.Wrap(err, "schedule reminders")
	}
	if _, err := s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(r.ReleaseMovies),
		gocron.WithName(JobReleaseMovies),
		singleton,
	); err != nil {
		return nil, errors.Wrap(err, "schedule movie releases")
	}

	r.cron = cron.New(cron.WithLocation(time.UTC), cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(logger.Log)),
	))
	if _, err := r.cron.AddFunc(settings.ShowtimeSweepCron, r.CompleteShowtimes); err != nil {
		return nil, errors.Wrapf(err, "schedule showtime sweep %q", settings.ShowtimeSweepCron)
	}
	return r, nil
}

func (r *Runner) Start() {
	r.scheduler.Start()
	r.cron.Start()
	logger.Log.Info("background jobs started")
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() error {
	<-r.cron.Stop().Done()
	return r.scheduler.Shutdown()
}

func (r *Runner) ExpireBookings() {
	r.run(JobExpireBookings, func(ctx context.Context, log *logrus.Entry) error {
		n, err := r.services.Bookings.ExpirePending(ctx)
		if n > 0 {
			log.WithField("expired", n).Info("expired pending bookings")
		}
		return err
	})
}

func (r *Runner) SendReminders() {
	r.run(JobSendReminders, func(ctx context.Context, log *logrus.Entry) error {
		sent, failed, err := r.services.Bookings.SendReminders(ctx)
		if sent+failed > 0 {
			log.WithField("sent", sent).WithField("failed", failed).Info("sent show reminders")
		}
		return err
	})
}

func (r *Runner) ReleaseMovies() {
	r.run(JobReleaseMovies, func(ctx context.Context, log *logrus.Entry) error {
		n, err := r.services.Movies.ReleaseDue(ctx)
		if n > 0 {
			log.WithField("released", n).Info("movies now showing")
		}
		return err
	})
}

func (r *Runner) CompleteShowtimes() {
	r.run(JobCompleteShowtime, func(ctx context.Context, log *logrus.Entry) error {
		completed, expired, err := r.services.Showtimes.CompleteEnded(ctx)
		if completed > 0 {
			log.WithField("showtimes", completed).WithField("tickets", expired).Info("completed showtimes")
		}
		return err
	})
}

func (r *Runner) run(name string, fn func(ctx context.Context, log *logrus.Entry) error) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log := logger.WithJob(name)
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			log.WithField("panic", p).Error("job panicked")
		}
		metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()
	if err := fn(ctx, log); err != nil {
		log.WithError(err).Error("job failed")
	}
}
