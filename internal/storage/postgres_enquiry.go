package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
	"gitlab.com/ingwane/api/enquiry-service/pkg/utils"
)

// statsWindowDays bounds every EnquiryStats aggregate.
const statsWindowDays = 30

// CreateEnquiry inserts a new enquiry and populates its generated fields.
func (r *PostgresRepo) CreateEnquiry(ctx context.Context, enquiry *model.Enquiry) error {
	startTime := utils.Now()
	err := r.db.WithContext(ctx).Create(enquiry).Error
	observer.ObserveDbOperationDuration("create", time.Since(startTime), err)

	if err != nil {
		wrapped := checkConstraintViolation(err)
		logger.FromContext(ctx).Error("Failed to create enquiry",
			zap.String("email", enquiry.Email),
			zap.Error(wrapped))
		return wrapped
	}
	return nil
}

// ListEnquiries returns one page of enquiries, newest first, with the
// total row count for the filter.
func (r *PostgresRepo) ListEnquiries(ctx context.Context, filter model.ListFilter) ([]model.Enquiry, int64, error) {
	loggerCtx := logger.FromContext(ctx)

	query := r.db.WithContext(ctx).Model(&model.Enquiry{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	startTime := utils.Now()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		observer.ObserveDbOperationDuration("list", time.Since(startTime), err)
		wrapped := fmt.Errorf("%w: count failed: %w", apperrors.ErrDatabase, err)
		loggerCtx.Error("Failed to count enquiries", zap.String("status", filter.Status), zap.Error(wrapped))
		return nil, 0, wrapped
	}

	var enquiries []model.Enquiry
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&enquiries).Error
	observer.ObserveDbOperationDuration("list", time.Since(startTime), err)

	if err != nil {
		wrapped := fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, err)
		loggerCtx.Error("Failed to list enquiries",
			zap.String("status", filter.Status),
			zap.Int("page", filter.Page),
			zap.Int("limit", filter.Limit),
			zap.Error(wrapped))
		return nil, 0, wrapped
	}
	if enquiries == nil {
		enquiries = []model.Enquiry{}
	}
	return enquiries, total, nil
}

// FindEnquiryByID finds an enquiry by its ID.
func (r *PostgresRepo) FindEnquiryByID(ctx context.Context, id int64) (*model.Enquiry, error) {
	var enquiry model.Enquiry

	startTime := utils.Now()
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&enquiry).Error
	observer.ObserveDbOperationDuration("find_by_id", time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: enquiry_id %d: %w", apperrors.ErrNotFound, id, err)
		}
		wrapped := fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, err)
		logger.FromContext(ctx).Error("Failed to find enquiry by ID",
			zap.Int64("enquiry_id", id),
			zap.Error(wrapped))
		return nil, wrapped
	}
	return &enquiry, nil
}

// UpdateEnquiryStatus sets the status of an enquiry and returns the
// updated row. A nil adminNotes leaves the stored notes untouched.
func (r *PostgresRepo) UpdateEnquiryStatus(ctx context.Context, id int64, status string, adminNotes *string) (*model.Enquiry, error) {
	loggerCtx := logger.FromContext(ctx)

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": utils.Now(),
	}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	startTime := utils.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Enquiry{}).
		Where("id = ?", id).
		Updates(updates)
	err := result.Error
	observer.ObserveDbOperationDuration("update_status", time.Since(startTime), err)

	if err != nil {
		wrapped := checkConstraintViolation(err)
		loggerCtx.Error("Failed to update enquiry status",
			zap.Int64("enquiry_id", id),
			zap.String("status", status),
			zap.Error(wrapped))
		return nil, wrapped
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: enquiry_id %d", apperrors.ErrNotFound, id)
	}

	return r.FindEnquiryByID(ctx, id)
}

// EnquiryStats aggregates the total, per-status counts and the daily
// submission trend over the last 30 days.
func (r *PostgresRepo) EnquiryStats(ctx context.Context) (*model.EnquiryStats, error) {
	loggerCtx := logger.FromContext(ctx)
	stats := &model.EnquiryStats{DailyTrends: []model.DailyCount{}}

	// Every aggregate is bounded to the same trailing window, enquiries
	// older than that do not count towards the totals.
	windowClause := fmt.Sprintf("created_at >= CURRENT_DATE - INTERVAL '%d days'", statsWindowDays)

	startTime := utils.Now()

	var statusRows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Enquiry{}).
		Select("status, COUNT(*) AS count").
		Where(windowClause).
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		observer.ObserveDbOperationDuration("stats", time.Since(startTime), err)
		wrapped := fmt.Errorf("%w: status counts query failed: %w", apperrors.ErrDatabase, err)
		loggerCtx.Error("Failed to aggregate enquiry status counts", zap.Error(wrapped))
		return nil, wrapped
	}

	for _, row := range statusRows {
		stats.Total += row.Count
		switch row.Status {
		case model.StatusNew:
			stats.ByStatus.New = row.Count
		case model.StatusInProgress:
			stats.ByStatus.InProgress = row.Count
		case model.StatusResponded:
			stats.ByStatus.Responded = row.Count
		case model.StatusClosed:
			stats.ByStatus.Closed = row.Count
		}
	}

	var trendRows []struct {
		Date  time.Time
		Count int64
	}
	err = r.db.WithContext(ctx).
		Model(&model.Enquiry{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where(windowClause).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&trendRows).Error
	observer.ObserveDbOperationDuration("stats", time.Since(startTime), err)
	if err != nil {
		wrapped := fmt.Errorf("%w: daily trend query failed: %w", apperrors.ErrDatabase, err)
		loggerCtx.Error("Failed to aggregate enquiry daily trend", zap.Error(wrapped))
		return nil, wrapped
	}

	for _, row := range trendRows {
		stats.DailyTrends = append(stats.DailyTrends, model.DailyCount{
			Date:  row.Date.Format("2006-01-02"),
			Count: row.Count,
		})
	}

	return stats, nil
}
