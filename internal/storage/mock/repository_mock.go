package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gitlab.com/ingwane/api/enquiry-service/internal/model"
)

// EnquiryRepoMock mocks the EnquiryRepo interface
type EnquiryRepoMock struct {
	mock.Mock
}

// Create mocks the Create method
func (m *EnquiryRepoMock) Create(ctx context.Context, enquiry *model.Enquiry) error {
	args := m.Called(ctx, enquiry)
	return args.Error(0)
}

// List mocks the List method
func (m *EnquiryRepoMock) List(ctx context.Context, filter model.ListFilter) ([]model.Enquiry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Enquiry), args.Get(1).(int64), args.Error(2)
}

// FindByID mocks the FindByID method
func (m *EnquiryRepoMock) FindByID(ctx context.Context, id int64) (*model.Enquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enquiry), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method
func (m *EnquiryRepoMock) UpdateStatus(ctx context.Context, id int64, status string, adminNotes *string) (*model.Enquiry, error) {
	args := m.Called(ctx, id, status, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enquiry), args.Error(1)
}

// Stats mocks the Stats method
func (m *EnquiryRepoMock) Stats(ctx context.Context) (*model.EnquiryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EnquiryStats), args.Error(1)
}

// Close mocks the Close method
func (m *EnquiryRepoMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
