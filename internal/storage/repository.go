package storage

import (
	"context"

	"gitlab.com/ingwane/api/enquiry-service/internal/model"
)

// EnquiryRepo defines enquiry storage operations
type EnquiryRepo interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	List(ctx context.Context, filter model.ListFilter) ([]model.Enquiry, int64, error)
	FindByID(ctx context.Context, id int64) (*model.Enquiry, error)
	UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) (*model.Enquiry, error)
	Stats(ctx context.Context) (*model.EnquiryStats, error)
	Close(ctx context.Context) error
}
