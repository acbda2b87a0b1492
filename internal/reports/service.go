package reports

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fdg312/health-assistant/internal/blob"
	"github.com/fdg312/health-assistant/internal/storage"
	"github.com/fdg312/health-assistant/internal/summary"
)

// RowSource отдаёт строки по дням, новые первыми
type RowSource interface {
	DailyRows(ctx context.Context, days int) ([]summary.DayRow, error)
}

// Service выгружает отчёты в blob store
type Service struct {
	rows         RowSource
	generator    Generator
	store        blob.Store
	keyPrefix    string
	maxRangeDays int
	logger       *zap.Logger

	Now func() time.Time
}

// NewService creates a new reports service
func NewService(rows RowSource, store blob.Store, keyPrefix string, maxRangeDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		rows:         rows,
		store:        store,
		keyPrefix:    keyPrefix,
		maxRangeDays: maxRangeDays,
		logger:       logger,
		Now:          time.Now,
	}
}

// Export renders the trailing window and uploads it.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.maxRangeDays > 0 && req.Days > s.maxRangeDays {
		return nil, fmt.Errorf("%w: max %d days", ErrRangeTooLarge, s.maxRangeDays)
	}

	rows, err := s.rows.DailyRows(ctx, req.Days)
	if errors.Is(err, summary.ErrNoData) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}

	now := s.Now()
	from := storage.WindowStart(now, req.Days)
	to := now.Format(storage.DateLayout)

	data, err := s.generator.Render(req.Format, from, to, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	report := &Report{
		ID:        uuid.New(),
		Format:    req.Format,
		From:      from,
		To:        to,
		Days:      len(rows),
		CreatedAt: now,
	}
	report.ObjectKey = path.Join(s.keyPrefix, fmt.Sprintf("%s_%s_%s.%s", from, to, report.ID, req.Format))

	report.SizeBytes, err = s.store.PutObject(ctx, report.ObjectKey, data, contentType(req.Format))
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	report.Location, err = s.store.Locate(ctx, report.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to locate report: %w", err)
	}

	s.logger.Info("report exported",
		zap.String("format", report.Format),
		zap.String("key", report.ObjectKey),
		zap.Int64("bytes", report.SizeBytes),
	)
	return report, nil
}
