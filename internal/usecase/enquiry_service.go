package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/mailer"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/internal/validator"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

// Listing page bounds. Requests outside these are clamped, not rejected.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Submit validates and persists a new enquiry, then queues the
// confirmation and admin notification emails. The enquiry is returned
// to the caller as soon as the row is written; mail delivery never
// blocks or fails a submission.
func (s *EnquiryService) Submit(ctx context.Context, req model.SubmitEnquiryRequest, ipAddress, userAgent string) (*model.Enquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.ServiceType = strings.TrimSpace(req.ServiceType)

	if err := validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	enquiry := &model.Enquiry{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		ServiceType: req.ServiceType,
		Status:      model.StatusNew,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
	}

	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	observer.IncEnquiriesSubmitted()

	logger.FromContext(ctx).Info("Enquiry submitted",
		zap.Int64("enquiry_id", enquiry.ID),
		zap.String("email", enquiry.Email),
		zap.String("subject", enquiry.Subject))

	// Mail tasks outlive the request, so detach cancellation but keep
	// the request ID for correlation.
	mailCtx := context.WithoutCancel(ctx)
	for _, kind := range []string{mailer.KindConfirmation, mailer.KindAdminNotification} {
		if err := s.mailWorker.SubmitTask(MailTaskData{Ctx: mailCtx, Kind: kind, Enquiry: enquiry}); err != nil {
			logger.FromContext(ctx).Warn("Failed to queue enquiry email",
				zap.Int64("enquiry_id", enquiry.ID),
				zap.String("kind", kind),
				zap.Error(err))
		}
	}

	return enquiry, nil
}

// List returns one page of enquiries, newest first, optionally filtered
// by status.
func (s *EnquiryService) List(ctx context.Context, status string, page, limit int) ([]model.Enquiry, model.Pagination, error) {
	// An unrecognized status filter simply does not take effect.
	if !model.IsValidStatus(status) {
		status = ""
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := model.ListFilter{Status: status, Page: page, Limit: limit}
	enquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
	return enquiries, pagination, nil
}

// Get returns a single enquiry by ID.
func (s *EnquiryService) Get(ctx context.Context, id int64) (*model.Enquiry, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus changes an enquiry's status and optionally its admin
// notes, returning the updated enquiry.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id int64, req model.UpdateStatusRequest) (*model.Enquiry, error) {
	if err := validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	enquiry, err := s.repo.UpdateStatus(ctx, id, req.Status, req.AdminNotes)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Enquiry status updated",
		zap.Int64("enquiry_id", id),
		zap.String("status", req.Status))
	return enquiry, nil
}

// Stats returns the aggregated enquiry statistics.
func (s *EnquiryService) Stats(ctx context.Context) (*model.EnquiryStats, error) {
	return s.repo.Stats(ctx)
}
