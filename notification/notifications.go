package notification

import (
	"fmt"
	"os"
	"projectform/common"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	mail "gopkg.in/mail.v2"
)

const sendGuardExpiration = 24 * time.Hour

// sendGuard keeps at most one delivery attempt per admitted enrollment number.
var sendGuard = cache.New(sendGuardExpiration, 1*time.Hour)

type SmtpConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	Sender   string `validate:"required,email"`
	Password string `validate:"required"`
}

var (
	ActiveSmtpConfig *SmtpConfig

	SendTimeout = 10 * time.Second

	DeliverFunc = Deliver
)

// ParseSmtpConfigFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_SENDER and
// SMTP_PASSWORD. An absent configuration is tolerated: nil is returned and
// confirmation sending degrades to a logged no-op.
func ParseSmtpConfigFromEnv() (*SmtpConfig, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	config := &SmtpConfig{Host: host, Port: port,
		Sender: os.Getenv("SMTP_SENDER"), Password: os.Getenv("SMTP_PASSWORD")}
	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SendConfirmation builds and delivers the confirmation mail for one accepted
// submission. It never fails the submission: every problem is logged and
// reported as false.
func SendConfirmation(email, fullName, projectName, enrollmentNumber string) bool {
	config := ActiveSmtpConfig
	if config == nil {
		common.Log.Warn("mail transport is not configured, confirmation not sent")
		return false
	}

	if _, found := sendGuard.Get(enrollmentNumber); found {
		common.Log.Warn("confirmation for enrollment " + enrollmentNumber + " was already attempted")
		return false
	}
	sendGuard.Set(enrollmentNumber, time.Now(), cache.DefaultExpiration)

	subject, htmlBody, textBody := BuildConfirmationMessage(email, fullName, projectName, enrollmentNumber, time.Now())
	if err := DeliverFunc(config, email, subject, htmlBody, textBody); err != nil {
		common.Log.Warnf("could not send confirmation email: %v", err)
		return false
	}
	return true
}

// BuildConfirmationMessage renders the subject, html body and plain text
// alternative summarizing one accepted submission.
func BuildConfirmationMessage(email, fullName, projectName, enrollmentNumber string, generatedAt time.Time) (subject, htmlBody, textBody string) {
	subject = "Project Submission Confirmation"
	date := generatedAt.Format("2006-01-02 15:04:05")

	htmlBody = fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; border: 1px solid #d1d5db; border-radius: 12px; padding: 30px;">
      <h2 style="text-align: center;">Submission Successful</h2>
      <p>Hello <strong>%s</strong>,</p>
      <p>Thank you for submitting your project. Your submission has been successfully recorded in our system.</p>
      <div style="border-left: 4px solid #215E61; padding: 15px; margin: 20px 0;">
        <p><strong>Submission Details:</strong></p>
        <p><strong>Project Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Enrollment Number:</strong> %s</p>
        <p><strong>Submission Date:</strong> %s</p>
      </div>
      <p>Our team will review your submission shortly. If you need to make changes, please contact an administrator.</p>
      <hr>
      <p style="color: #6b7280; font-size: 14px; text-align: center;">
        This is an automated email. Please do not reply to this message.
      </p>
    </div>
  </body>
</html>`, fullName, projectName, email, enrollmentNumber, date)

	textBody = fmt.Sprintf(`Submission Successful

Hello %s,

Thank you for submitting your project. Your submission has been successfully recorded in our system.

Submission Details:
- Project Name: %s
- Email: %s
- Enrollment Number: %s
- Submission Date: %s

Our team will review your submission shortly. If you need to make changes, please contact an administrator.

This is an automated email. Please do not reply to this message.
`, fullName, projectName, email, enrollmentNumber, date)

	return subject, htmlBody, textBody
}

// Deliver performs one authenticated STARTTLS delivery with a bounded
// dial/send timeout.
func Deliver(config *SmtpConfig, recipient, subject, htmlBody, textBody string) error {
	m := mail.NewMessage()
	m.SetHeader("From", config.Sender)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := mail.NewDialer(config.Host, config.Port, config.Sender, config.Password)
	d.Timeout = SendTimeout
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return d.DialAndSend(m)
}
