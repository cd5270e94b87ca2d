package usecase

import (
	"gitlab.com/ingwane/api/enquiry-service/internal/storage"
)

// EnquiryService implements the enquiry submission and admin operations
type EnquiryService struct {
	repo       storage.EnquiryRepo
	mailWorker IMailWorker
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(repo storage.EnquiryRepo, mailWorker IMailWorker) *EnquiryService {
	return &EnquiryService{
		repo:       repo,
		mailWorker: mailWorker,
	}
}
