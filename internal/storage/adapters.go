package storage

import (
	"context"

	"gitlab.com/ingwane/api/enquiry-service/internal/model"
)

// EnquiryRepoAdapter adapts the PostgresRepo to the EnquiryRepo interface
type EnquiryRepoAdapter struct {
	postgres *PostgresRepo
}

// NewEnquiryRepoAdapter creates a new enquiry repository adapter
func NewEnquiryRepoAdapter(postgres *PostgresRepo) EnquiryRepo {
	return &EnquiryRepoAdapter{postgres: postgres}
}

// Create inserts a new enquiry
func (a *EnquiryRepoAdapter) Create(ctx context.Context, enquiry *model.Enquiry) error {
	return a.postgres.CreateEnquiry(ctx, enquiry)
}

// List returns one page of enquiries with the total count
func (a *EnquiryRepoAdapter) List(ctx context.Context, filter model.ListFilter) ([]model.Enquiry, int64, error) {
	return a.postgres.ListEnquiries(ctx, filter)
}

// FindByID finds an enquiry by ID
func (a *EnquiryRepoAdapter) FindByID(ctx context.Context, id int64) (*model.Enquiry, error) {
	return a.postgres.FindEnquiryByID(ctx, id)
}

// UpdateStatus updates an enquiry's status and admin notes
func (a *EnquiryRepoAdapter) UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) (*model.Enquiry, error) {
	return a.postgres.UpdateEnquiryStatus(ctx, id, status, adminNotes)
}

// Stats aggregates enquiry statistics
func (a *EnquiryRepoAdapter) Stats(ctx context.Context) (*model.EnquiryStats, error) {
	return a.postgres.EnquiryStats(ctx)
}

// Close closes the repository
func (a *EnquiryRepoAdapter) Close(ctx context.Context) error {
	return a.postgres.Close(ctx)
}

// Ensure adapter implements the interface
var _ EnquiryRepo = (*EnquiryRepoAdapter)(nil)
