package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/config"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

func newTestEnquiry() *model.Enquiry {
	return &model.Enquiry{
		ID:          7,
		Name:        "Thandi Dlamini",
		Email:       "thandi@example.com",
		Phone:       "+27 82 555 0101",
		Subject:     "Safety audit",
		Message:     "First line.\nSecond line with <tags>.",
		ServiceType: "audits",
		IPAddress:   "203.0.113.7",
		CreatedAt:   time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC),
	}
}

func disabledDispatcher(t *testing.T) *Dispatcher {
	logger.Log = zaptest.NewLogger(t).Named("test")
	cfg := &config.Config{}
	cfg.SMTP.Enabled = false
	return NewDispatcher(cfg)
}

func TestSendConfirmation_DisabledIsNoop(t *testing.T) {
	d := disabledDispatcher(t)
	err := d.SendConfirmation(context.Background(), newTestEnquiry())
	assert.NoError(t, err)
}

func TestSendAdminNotification_DisabledIsNoop(t *testing.T) {
	d := disabledDispatcher(t)
	err := d.SendAdminNotification(context.Background(), newTestEnquiry())
	assert.NoError(t, err)
}

func TestVerify_DisabledIsNoop(t *testing.T) {
	d := disabledDispatcher(t)
	assert.NoError(t, d.Verify(context.Background()))
}

func TestVerify_MissingHostFails(t *testing.T) {
	logger.Log = zaptest.NewLogger(t).Named("test")
	cfg := &config.Config{}
	cfg.SMTP.Enabled = true
	cfg.SMTP.FromEmail = "noreply@example.com"
	d := NewDispatcher(cfg)

	err := d.Verify(context.Background())
	assert.Error(t, err)
	assert.True(t, apperrors.IsMailError(err))
}

func TestRenderConfirmation(t *testing.T) {
	enquiry := newTestEnquiry()
	html, text, err := renderConfirmation(enquiry)
	assert.NoError(t, err)
	assert.Contains(t, html, "Thank you for your enquiry, Thandi Dlamini!")
	assert.Contains(t, html, "<strong>Safety audit</strong>")
	assert.Contains(t, text, "Safety audit")
}

func TestRenderAdminNotification(t *testing.T) {
	enquiry := newTestEnquiry()
	html, text, err := renderAdminNotification(enquiry, "https://admin.example.com")
	assert.NoError(t, err)
	assert.Contains(t, html, "thandi@example.com")
	assert.Contains(t, html, "https://admin.example.com")
	assert.Contains(t, html, "203.0.113.7")
	// Line breaks survive, markup in the message does not.
	assert.Contains(t, html, "First line.<br>Second line")
	assert.Contains(t, html, "&lt;tags&gt;")
	assert.NotContains(t, html, "<tags>")
	assert.Contains(t, text, "Service: audits")
}

func TestRenderAdminNotification_Fallbacks(t *testing.T) {
	enquiry := newTestEnquiry()
	enquiry.Phone = ""
	enquiry.ServiceType = ""
	enquiry.IPAddress = ""
	html, _, err := renderAdminNotification(enquiry, "https://admin.example.com")
	assert.NoError(t, err)
	assert.Contains(t, html, "Not provided")
	assert.Contains(t, html, "Not specified")
	assert.Contains(t, html, "Unknown")
}
