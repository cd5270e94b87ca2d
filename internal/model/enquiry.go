package model

import (
	"time"
)

// Enquiry status values. Every enquiry starts as StatusNew.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusResponded  = "responded"
	StatusClosed     = "closed"
)

// KnownStatuses lists every valid enquiry status.
var KnownStatuses = []string{StatusNew, StatusInProgress, StatusResponded, StatusClosed}

// IsValidStatus reports whether s is a recognized enquiry status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusResponded, StatusClosed:
		return true
	}
	return false
}

// Enquiry represents a contact-form enquiry in the PostgreSQL database.
type Enquiry struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null" validate:"required,email,max=255"`
	Phone       string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Subject     string    `json:"subject" gorm:"type:varchar(500);not null" validate:"required,max=500"`
	Message     string    `json:"message" gorm:"type:text;not null" validate:"required"`
	ServiceType string    `json:"service_type,omitempty" gorm:"column:service_type;type:varchar(100)"`
	Status      string    `json:"status" gorm:"type:varchar(50);default:new;index"`
	AdminNotes  string    `json:"admin_notes,omitempty" gorm:"column:admin_notes;type:text"`
	IPAddress   string    `json:"ip_address,omitempty" gorm:"column:ip_address;type:varchar(64)"`
	UserAgent   string    `json:"user_agent,omitempty" gorm:"column:user_agent;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Enquiry model.
func (Enquiry) TableName() string {
	return "enquiries"
}

// SubmitEnquiryRequest is the payload accepted by the submit endpoint.
type SubmitEnquiryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Subject     string `json:"subject" validate:"required,max=500"`
	Message     string `json:"message" validate:"required"`
	ServiceType string `json:"service_type" validate:"omitempty,max=100"`
}

// UpdateStatusRequest is the payload accepted by the status update endpoint.
// AdminNotes is a pointer so an absent field preserves the stored notes.
type UpdateStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=new in_progress responded closed"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=5000"`
}

// ListFilter narrows and pages the enquiry listing.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// Offset returns the row offset implied by the page and limit.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes one page of a listing result.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// StatusCounts breaks the enquiry total down by status.
type StatusCounts struct {
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Responded  int64 `json:"responded"`
	Closed     int64 `json:"closed"`
}

// DailyCount is one day's submission count in the trend series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// EnquiryStats aggregates totals, per-status counts and the 30-day
// daily submission trend.
type EnquiryStats struct {
	Total       int64        `json:"total"`
	ByStatus    StatusCounts `json:"byStatus"`
	DailyTrends []DailyCount `json:"dailyTrends"`
}
