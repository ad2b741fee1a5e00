package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/config"
	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// FlockTicker is the set of periodic mutations driven by the scheduler.
type FlockTicker interface {
	DecayHealth() *models.DeathNotice
	AgeChickens() *models.DeathNotice
	RandomEvent() models.RandomEvent
}

// Reporter logs a periodic farm report.
type Reporter interface {
	LogFarmReport()
}

// Scheduler manages the tick drivers and the periodic report.
type Scheduler struct {
	cron     *cron.Cron
	flock    FlockTicker
	reporter Reporter
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. A job that is still running
// when its next tick fires is skipped rather than queued.
func NewScheduler(cfg config.Config, flock FlockTicker, reporter Reporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	cl := cronLogger{sugar: logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &Scheduler{
		cron:     c,
		flock:    flock,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers all jobs and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.Duration("health_interval", s.cfg.Ticks.HealthInterval),
		zap.Duration("aging_interval", s.cfg.Ticks.AgingInterval),
		zap.Duration("event_interval", s.cfg.Ticks.EventInterval))

	s.schedule("health decay", every(s.cfg.Ticks.HealthInterval), s.decayHealth)
	s.schedule("aging", every(s.cfg.Ticks.AgingInterval), s.ageChickens)
	s.schedule("random event", every(s.cfg.Ticks.EventInterval), s.randomEvent)
	if s.reporter != nil {
		s.schedule("farm report", s.cfg.Reporting.CronSchedule, s.reporter.LogFarmReport)
	}

	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) schedule(name, spec string, job func()) {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		s.logger.Error("failed to schedule job", zap.String("job", name), zap.String("spec", spec), zap.Error(err))
	}
}

func (s *Scheduler) decayHealth() {
	if notice := s.flock.DecayHealth(); notice != nil {
		s.logger.Debug("health tick raised death notice", zap.String("chicken", notice.Name))
	}
}

func (s *Scheduler) ageChickens() {
	if notice := s.flock.AgeChickens(); notice != nil {
		s.logger.Debug("aging tick raised death notice", zap.String("chicken", notice.Name))
	}
}

func (s *Scheduler) randomEvent() {
	s.flock.RandomEvent()
}

func every(d time.Duration) string {
	return fmt.Sprintf("@every %s", d)
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
