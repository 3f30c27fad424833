// Package scheduler runs the nightly close and housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/config"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/internal/repository/sheets"
)

// Store is the persistence surface the scheduled jobs need.
type Store interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	DeleteExpiredEphemeral(ctx context.Context, at time.Time) (int64, error)
}

// ProfitComputer closes the books for one restaurant's day.
type ProfitComputer interface {
	Compute(ctx context.Context, restaurant primitive.ObjectID, at time.Time) (*models.ProfitLossRecord, error)
}

// Scheduler manages the cron jobs: the nightly per-restaurant profit close
// with an optional spreadsheet export, and the expired ephemeral-dish sweep.
type Scheduler struct {
	cron     *cron.Cron
	store    Store
	profits  ProfitComputer
	exporter sheets.Exporter
	cfg      config.ReportingConfig
	logger   *zap.Logger
}

// New creates a scheduler in the configured timezone. A nil exporter simply
// skips the spreadsheet step.
func New(cfg config.ReportingConfig, store Store, profits ProfitComputer, exporter sheets.Exporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		store:    store,
		profits:  profits,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.nightlyClose); err != nil {
		s.logger.Error("failed to schedule nightly close", zap.Error(err))
	}

	// Hourly sweep backs up the TTL index in case it lags.
	if _, err := s.cron.AddFunc("@hourly", s.sweepEphemeral); err != nil {
		s.logger.Error("failed to schedule ephemeral sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) nightlyClose() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	restaurants, err := s.store.ListRestaurants(ctx)
	if err != nil {
		s.logger.Error("nightly close: listing restaurants failed", zap.Error(err))
		return
	}

	s.logger.Info("nightly close started", zap.Int("restaurants", len(restaurants)))

	for _, r := range restaurants {
		record, err := s.profits.Compute(ctx, r.ID, time.Now())
		if err != nil {
			s.logger.Error("nightly close failed for restaurant",
				zap.String("restaurant_id", r.ID.Hex()), zap.Error(err))
			continue
		}

		if s.exporter == nil {
			continue
		}

		row := []interface{}{
			record.Date.Format("2006-01-02"),
			r.Name,
			record.TotalIncome,
			record.TotalInventoryCost,
			record.TotalWasteCost,
			record.Profit,
		}
		if err := s.exporter.AppendRow(ctx, "ProfitLoss!A:F", row); err != nil {
			s.logger.Error("spreadsheet export failed",
				zap.String("restaurant_id", r.ID.Hex()), zap.Error(err))
		}
	}

	s.logger.Info("nightly close finished")
}

func (s *Scheduler) sweepEphemeral() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.store.DeleteExpiredEphemeral(ctx, time.Now())
	if err != nil {
		s.logger.Error("ephemeral dish sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("expired ephemeral dishes removed", zap.Int64("count", removed))
	}
}
