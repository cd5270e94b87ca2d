package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gitlab.com/ingwane/api/enquiry-service/internal/model"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
    <div style="background: #0E766C; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
        <h1 style="margin: 0;">Ingwan'Elihle</h1>
        <p style="margin: 5px 0 0; opacity: 0.9;">Health &amp; Safety Management Consultants</p>
    </div>
    <div style="padding: 30px;">
        <h2 style="color: #0E766C;">Thank you for your enquiry, {{.Name}}!</h2>
        <p>We have received your enquiry regarding: <strong>{{.Subject}}</strong></p>
        <p>Our team will review your request and get back to you within 24-48 hours during business hours.</p>

        <div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #D4B483;">
            <h4 style="margin-top: 0; color: #0E766C;">What happens next?</h4>
            <ul style="margin-bottom: 0;">
                <li>Our team will assess your requirements</li>
                <li>We'll contact you to discuss your needs</li>
                <li>We'll provide a tailored solution proposal</li>
            </ul>
        </div>

        <p>If you have any urgent questions, please contact us at:</p>
        <p style="margin: 10px 0;">
            <strong>Phone:</strong> +27 77 439 9165<br>
            <strong>Email:</strong> info@ingwanelihle.co.za
        </p>

        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

        <p style="color: #666; font-size: 14px;">
            This is an automated confirmation. Please do not reply to this email.<br>
            &copy; {{.Year}} Ingwan'Elihle Health &amp; Safety Management Consultants
        </p>
    </div>
</div>`))

var adminTmpl = template.Must(template.New("admin").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #0E766C;">New Enquiry Received</h2>

    <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; border-left: 4px solid #0E766C;">
        <h3 style="margin-top: 0;">Enquiry Details</h3>
        <table style="width: 100%; border-collapse: collapse;">
            <tr>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>ID:</strong></td>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.ID}}</td>
            </tr>
            <tr>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Name:</strong></td>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.Name}}</td>
            </tr>
            <tr>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Email:</strong></td>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.Email}}</td>
            </tr>
            <tr>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Phone:</strong></td>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.Phone}}</td>
            </tr>
            <tr>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Service:</strong></td>
                <td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.ServiceType}}</td>
            </tr>
            <tr>
                <td style="padding: 8px 0;"><strong>Received:</strong></td>
                <td style="padding: 8px 0;">{{.Received}}</td>
            </tr>
        </table>

        <h4 style="margin: 20px 0 10px; color: #0E766C;">Message:</h4>
        <div style="background: white; padding: 15px; border-radius: 5px; border: 1px solid #ddd;">
            {{.Message}}
        </div>
    </div>

    <div style="margin-top: 30px; text-align: center;">
        <a href="{{.DashboardURL}}"
           style="background: #0E766C; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
            View in Dashboard
        </a>
    </div>

    <p style="color: #666; font-size: 12px; margin-top: 30px;">
        Enquiry ID: {{.ID}} &bull; IP: {{.IPAddress}}
    </p>
</div>`))

type confirmationData struct {
	Name    string
	Subject string
	Year    int
}

type adminData struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	ServiceType  string
	Received     string
	Message      template.HTML
	DashboardURL string
	IPAddress    string
}

// renderConfirmation builds the HTML and plain text bodies of the
// client confirmation email.
func renderConfirmation(enquiry *model.Enquiry) (string, string, error) {
	data := confirmationData{
		Name:    enquiry.Name,
		Subject: enquiry.Subject,
		Year:    time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}

	text := fmt.Sprintf(`Thank you for your enquiry, %s!

We have received your enquiry regarding: %s

Our team will review your request and get back to you within 24-48 hours during business hours.

If you have any urgent questions, please contact us:
Phone: +27 77 439 9165
Email: info@ingwanelihle.co.za

This is an automated confirmation. Please do not reply to this email.
`, enquiry.Name, enquiry.Subject)

	return buf.String(), text, nil
}

// renderAdminNotification builds the HTML and plain text bodies of the
// new-enquiry notification sent to the admin inbox.
func renderAdminNotification(enquiry *model.Enquiry, dashboardURL string) (string, string, error) {
	phone := enquiry.Phone
	if phone == "" {
		phone = "Not provided"
	}
	serviceType := enquiry.ServiceType
	if serviceType == "" {
		serviceType = "Not specified"
	}
	ipAddress := enquiry.IPAddress
	if ipAddress == "" {
		ipAddress = "Unknown"
	}

	// Escape first, then keep user line breaks in the rendered message.
	escaped := template.HTMLEscapeString(enquiry.Message)
	message := template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))

	data := adminData{
		ID:           enquiry.ID,
		Name:         enquiry.Name,
		Email:        enquiry.Email,
		Phone:        phone,
		ServiceType:  serviceType,
		Received:     enquiry.CreatedAt.Format("2006-01-02 15:04:05 MST"),
		Message:      message,
		DashboardURL: dashboardURL,
		IPAddress:    ipAddress,
	}

	var buf bytes.Buffer
	if err := adminTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}

	text := fmt.Sprintf(`New enquiry received.

ID: %d
Name: %s
Email: %s
Phone: %s
Service: %s
Received: %s

Message:
%s
`, enquiry.ID, enquiry.Name, enquiry.Email, phone, serviceType, data.Received, enquiry.Message)

	return buf.String(), text, nil
}
