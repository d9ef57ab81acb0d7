package analytics

import (
	"context"
	"time"

	"bookmart-be/internal/logger"
	"bookmart-be/internal/metrics"

	"go.uber.org/zap"
)

// Service is the report façade the HTTP layer calls. Each operation loads
// one snapshot, validates it, and computes every sub-result from that
// snapshot, so no sub-result reflects a different moment than another.
type Service interface {
	UserOrderSummary(ctx context.Context) (*UserOrderSummaryReport, error)
	OrderProductStats(ctx context.Context) (*OrderProductStatsReport, error)
	OrderAnalysis(ctx context.Context, asOf time.Time) (*OrderAnalysisReport, error)
}

type service struct {
	repo            Repository
	reportsComputed metrics.Counter
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) loadValidated(ctx context.Context, report string) (*Snapshot, error) {
	log := logger.FromCtx(ctx).With(zap.String("report", report))
	timer := metrics.StartTimer()

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		log.Error("failed to load snapshot", zap.Error(err))
		return nil, err
	}

	if err := snap.Validate(); err != nil {
		log.Error("snapshot failed invariant check", zap.Error(err))
		return nil, err
	}

	log.Debug("snapshot ready",
		zap.Duration("load_duration", timer.Duration()),
		zap.Int("orders", len(snap.Orders)),
	)

	return snap, nil
}

func (s *service) UserOrderSummary(ctx context.Context) (*UserOrderSummaryReport, error) {
	snap, err := s.loadValidated(ctx, "user_order_summary")
	if err != nil {
		return nil, err
	}

	s.reportsComputed.Inc()
	return BuildUserOrderSummary(snap), nil
}

func (s *service) OrderProductStats(ctx context.Context) (*OrderProductStatsReport, error) {
	snap, err := s.loadValidated(ctx, "order_product_stats")
	if err != nil {
		return nil, err
	}

	s.reportsComputed.Inc()
	return BuildOrderProductStats(snap), nil
}

func (s *service) OrderAnalysis(ctx context.Context, asOf time.Time) (*OrderAnalysisReport, error) {
	snap, err := s.loadValidated(ctx, "order_analysis")
	if err != nil {
		return nil, err
	}

	s.reportsComputed.Inc()
	return BuildOrderAnalysis(snap, asOf), nil
}
