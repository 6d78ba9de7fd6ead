package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gastropro/backoffice/pkg/logger"
	"github.com/gastropro/backoffice/pkg/metrics"
)

const (
	JobNotificationPurge = "notification_purge"
	JobStockSweep        = "stock_sweep"

	defaultPurgeSpec = "@daily"
	defaultSweepSpec = "@every 30m"
)

// ExpiryPurger removes notifications whose lifetime has elapsed.
type ExpiryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// StockSweeper re-evaluates every item at or below its threshold.
type StockSweeper interface {
	SweepStock(ctx context.Context) (int, error)
}

// JobStatus captures the outcome of the most recent run of a job.
type JobStatus struct {
	Schedule  string    `json:"schedule"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Affected  int64     `json:"affected"`
	Runs      int64     `json:"runs"`
}

// Cleaner runs the notification engine's housekeeping on cron schedules:
// purging expired notifications and sweeping stock for missed alerts.
type Cleaner struct {
	purger  ExpiryPurger
	sweeper StockSweeper
	cron    *cron.Cron
	now     func() time.Time
	log     *zap.Logger

	purgeSchedule string
	sweepSchedule string

	mu     sync.RWMutex
	status map[string]JobStatus
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used to stamp job runs.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithPurgeSchedule sets the cron spec for the expiry purge. An empty spec disables the job.
func WithPurgeSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		cleaner.purgeSchedule = spec
	}
}

// WithStockSweepSchedule sets the cron spec for the stock sweep. An empty spec disables the job.
func WithStockSweepSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		cleaner.sweepSchedule = spec
	}
}

// NewCleaner constructs a Cleaner. A nil dependency or an empty schedule skips
// the corresponding job.
func NewCleaner(purger ExpiryPurger, sweeper StockSweeper, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		purger:        purger,
		sweeper:       sweeper,
		now:           time.Now,
		purgeSchedule: defaultPurgeSpec,
		sweepSchedule: defaultSweepSpec,
		log:           logger.WithModule("maintenance"),
		status:        make(map[string]JobStatus),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	for _, job := range cleaner.jobs() {
		cleaner.status[job.name] = JobStatus{Schedule: job.schedule}
	}

	return cleaner
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) (int64, error)
}

func (c *Cleaner) jobs() []job {
	var jobs []job
	if c.purger != nil && c.purgeSchedule != "" {
		jobs = append(jobs, job{
			name:     JobNotificationPurge,
			schedule: c.purgeSchedule,
			run:      c.purger.PurgeExpired,
		})
	}
	if c.sweeper != nil && c.sweepSchedule != "" {
		jobs = append(jobs, job{
			name:     JobStockSweep,
			schedule: c.sweepSchedule,
			run: func(ctx context.Context) (int64, error) {
				created, err := c.sweeper.SweepStock(ctx)
				return int64(created), err
			},
		})
	}
	return jobs
}

// Enabled reports whether at least one job is configured.
func (c *Cleaner) Enabled() bool {
	return len(c.jobs()) > 0
}

// Start registers the configured jobs with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	jobs := c.jobs()
	if len(jobs) == 0 {
		return nil
	}

	for _, j := range jobs {
		j := j
		if _, err := c.cron.AddFunc(j.schedule, func() {
			if err := c.execute(context.Background(), j); err != nil {
				c.log.Warn("maintenance job failed", zap.String("job", j.name), zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("maintenance: schedule %s %q: %w", j.name, j.schedule, err)
		}
	}

	c.cron.Start()
	c.log.Info("maintenance scheduler started", zap.Int("jobs", len(jobs)))
	return nil
}

// Stop halts the underlying scheduler, returning a context that completes once running jobs finish.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes every configured job sequentially. Used in tests, by the
// manual cleanup endpoint path and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	for _, j := range c.jobs() {
		errs = multierr.Append(errs, c.execute(ctx, j))
	}
	return errs
}

// Status returns a snapshot of every configured job's last run.
func (c *Cleaner) Status() map[string]JobStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]JobStatus, len(c.status))
	for name, status := range c.status {
		out[name] = status
	}
	return out
}

func (c *Cleaner) execute(ctx context.Context, j job) error {
	affected, err := j.run(ctx)

	c.mu.Lock()
	status := c.status[j.name]
	status.Schedule = j.schedule
	status.LastRun = c.now().UTC()
	status.Affected = affected
	status.Runs++
	status.LastError = ""
	if err != nil {
		status.LastError = err.Error()
	}
	c.status[j.name] = status
	c.mu.Unlock()

	if err != nil {
		metrics.MaintenanceRuns.WithLabelValues(j.name, "failure").Inc()
		return fmt.Errorf("maintenance: %s: %w", j.name, err)
	}

	metrics.MaintenanceRuns.WithLabelValues(j.name, "success").Inc()
	c.log.Debug("maintenance job completed", zap.String("job", j.name), zap.Int64("affected", affected))
	return nil
}
