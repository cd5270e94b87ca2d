package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/config"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/internal/observer"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

// Mail kinds reported to metrics.
const (
	KindConfirmation      = "confirmation"
	KindAdminNotification = "admin_notification"
)

// Mailer sends the two enquiry emails.
type Mailer interface {
	SendConfirmation(ctx context.Context, enquiry *model.Enquiry) error
	SendAdminNotification(ctx context.Context, enquiry *model.Enquiry) error
}

// Dispatcher sends enquiry emails over SMTP. When disabled it logs the
// send and reports success so submissions never depend on mail delivery.
type Dispatcher struct {
	enabled      bool
	host         string
	port         int
	username     string
	password     string
	fromEmail    string
	fromName     string
	adminEmail   string
	dashboardURL string
}

// NewDispatcher creates a mail dispatcher from the SMTP configuration.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		enabled:      cfg.SMTP.Enabled,
		host:         cfg.SMTP.Host,
		port:         cfg.SMTP.Port,
		username:     cfg.SMTP.Username,
		password:     cfg.SMTP.Password,
		fromEmail:    cfg.SMTP.FromEmail,
		fromName:     cfg.SMTP.FromName,
		adminEmail:   cfg.SMTP.AdminEmail,
		dashboardURL: cfg.SMTP.DashboardURL,
	}
}

// Verify probes the SMTP server without sending anything. Called once at
// startup; a failure is reported to the caller who decides whether to
// continue with mail disabled.
func (d *Dispatcher) Verify(ctx context.Context) error {
	if !d.enabled {
		logger.FromContext(ctx).Info("Mail dispatch disabled, skipping SMTP verification")
		return nil
	}
	if d.host == "" || d.fromEmail == "" {
		return fmt.Errorf("%w: smtp host and from address are required", apperrors.ErrMail)
	}

	addr := fmt.Sprintf("%s:%d", d.host, d.port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to smtp server %s: %w", apperrors.ErrMail, addr, err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("%w: smtp handshake failed: %w", apperrors.ErrMail, err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: d.host}); err != nil {
			return fmt.Errorf("%w: starttls failed: %w", apperrors.ErrMail, err)
		}
	}
	if d.username != "" {
		auth := smtp.PlainAuth("", d.username, d.password, d.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: smtp authentication failed: %w", apperrors.ErrMail, err)
		}
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%w: smtp quit failed: %w", apperrors.ErrMail, err)
	}
	logger.FromContext(ctx).Info("SMTP server verified and ready to send",
		zap.String("host", d.host),
		zap.Int("port", d.port))
	return nil
}

// SendConfirmation emails the client acknowledging their enquiry.
func (d *Dispatcher) SendConfirmation(ctx context.Context, enquiry *model.Enquiry) error {
	loggerCtx := logger.FromContext(ctx)
	if !d.enabled {
		loggerCtx.Info("Mail dispatch disabled, skipping confirmation email",
			zap.Int64("enquiry_id", enquiry.ID),
			zap.String("to", enquiry.Email))
		observer.IncMailSend(KindConfirmation, "skipped")
		return nil
	}

	htmlBody, textBody, err := renderConfirmation(enquiry)
	if err != nil {
		observer.IncMailSend(KindConfirmation, "error")
		return fmt.Errorf("%w: failed to render confirmation email: %w", apperrors.ErrMail, err)
	}

	subject := "Enquiry Received - Ingwan'Elihle Health & Safety"
	if err := d.sendHTML(enquiry.Email, subject, htmlBody, textBody); err != nil {
		observer.IncMailSend(KindConfirmation, "error")
		loggerCtx.Error("Failed to send confirmation email",
			zap.Int64("enquiry_id", enquiry.ID),
			zap.String("to", enquiry.Email),
			zap.Error(err))
		return err
	}

	observer.IncMailSend(KindConfirmation, "success")
	loggerCtx.Info("Confirmation email sent",
		zap.Int64("enquiry_id", enquiry.ID),
		zap.String("to", enquiry.Email))
	return nil
}

// SendAdminNotification emails the admin inbox about a new enquiry.
func (d *Dispatcher) SendAdminNotification(ctx context.Context, enquiry *model.Enquiry) error {
	loggerCtx := logger.FromContext(ctx)
	if !d.enabled {
		loggerCtx.Info("Mail dispatch disabled, skipping admin notification",
			zap.Int64("enquiry_id", enquiry.ID))
		observer.IncMailSend(KindAdminNotification, "skipped")
		return nil
	}
	if d.adminEmail == "" {
		observer.IncMailSend(KindAdminNotification, "error")
		return fmt.Errorf("%w: admin email address not configured", apperrors.ErrMail)
	}

	htmlBody, textBody, err := renderAdminNotification(enquiry, d.dashboardURL)
	if err != nil {
		observer.IncMailSend(KindAdminNotification, "error")
		return fmt.Errorf("%w: failed to render admin notification: %w", apperrors.ErrMail, err)
	}

	subject := fmt.Sprintf("New Enquiry Received: %s", enquiry.Subject)
	if err := d.sendHTML(d.adminEmail, subject, htmlBody, textBody); err != nil {
		observer.IncMailSend(KindAdminNotification, "error")
		loggerCtx.Error("Failed to send admin notification",
			zap.Int64("enquiry_id", enquiry.ID),
			zap.Error(err))
		return err
	}

	observer.IncMailSend(KindAdminNotification, "success")
	loggerCtx.Info("Admin notification sent", zap.Int64("enquiry_id", enquiry.ID))
	return nil
}

// sendHTML sends a multipart/alternative message with plain text fallback.
func (d *Dispatcher) sendHTML(to, subject, htmlBody, textBody string) error {
	if d.host == "" || d.fromEmail == "" {
		return fmt.Errorf("%w: mail dispatcher not properly configured", apperrors.ErrMail)
	}

	var auth smtp.Auth
	if d.username != "" {
		auth = smtp.PlainAuth("", d.username, d.password, d.host)
	}

	from := d.fromEmail
	if d.fromName != "" {
		from = fmt.Sprintf("%s <%s>", d.fromName, d.fromEmail)
	}

	boundary := "----=_NextPart_enquiry_service"

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		textBody + "\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody + "\r\n" +
		fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", d.host, d.port)
	if err := smtp.SendMail(addr, auth, d.fromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("%w: failed to send email: %w", apperrors.ErrMail, err)
	}
	return nil
}

var _ Mailer = (*Dispatcher)(nil)
