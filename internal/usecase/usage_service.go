package usecase

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/courtflow/nba-stats-api/internal/domain/usage"
	"github.com/courtflow/nba-stats-api/internal/platform/logging"
)

// UsageService records API invocations for offline analysis. Recording
// is strictly best effort: a failed insert is logged and swallowed so
// usage capture can never break a request. A nil service is a no-op,
// which lets the API run without a database attached.
type UsageService struct {
	repo   usage.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewUsageService(repo usage.Repository, logger *logging.Logger) *UsageService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UsageService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *UsageService) Record(ctx context.Context, endpoint string, params map[string]any, outcome string) {
	if s == nil || s.repo == nil {
		return
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return
	}

	payload := "{}"
	if len(params) > 0 {
		encoded, err := sonic.Marshal(params)
		if err != nil {
			s.logger.WarnContext(ctx, "encode usage payload failed", "endpoint", endpoint, "error", err)
		} else {
			payload = string(encoded)
		}
	}

	// The request may already be finishing; don't let its cancellation
	// drop the row.
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	record := usage.Record{
		Endpoint:    endpoint,
		Payload:     payload,
		Outcome:     strings.TrimSpace(outcome),
		RequestedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(insertCtx, record); err != nil {
		s.logger.WarnContext(ctx, "record usage failed", "endpoint", endpoint, "error", err)
	}
}

// RecentUsage exposes the most recent usage rows, newest first.
func (s *UsageService) RecentUsage(ctx context.Context, limit int) ([]usage.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UsageService.RecentUsage")
	defer span.End()

	if s == nil || s.repo == nil {
		return []usage.Record{}, nil
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}
