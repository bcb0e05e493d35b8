package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendInitialPasswordEmail(toEmail, toName, password string) error
	SendDrivePostedEmail(toEmails []string, companyName, driveName string, deadline time.Time) error
	SendOfferEmail(toEmail, toName, jobTitle, companyName string) error
	SendOfferAcceptedEmail(toEmail, toName, jobTitle, companyName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendInitialPasswordEmail delivers the generated password to a newly
// registered account.
func (s *EmailServiceImpl) SendInitialPasswordEmail(toEmail, toName, password string) error {
	if s.config.Username == "" || s.config.Password == "" {
		// Development mode, log instead of sending
		s.logger.Warn().
			Str("to_email", toEmail).
			Str("password", password).
			Msg("SMTP credentials not configured - initial password email not sent. Use the password above for testing.")
		return nil
	}

	subject := "Your Placement Cell Account"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to the Placement Cell</h2>
				<p>Hello %s,</p>
				<p>An account has been created for you on the placement portal. Use the credentials below to log in:</p>
				<p>Email: <strong>%s</strong><br>Password: <strong>%s</strong></p>
				<p>Please change your password after your first login.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, toName, toEmail, password)

	return s.sendHTMLEmail([]string{toEmail}, subject, body)
}

// SendDrivePostedEmail announces a newly posted company drive to all
// eligible-cohort students.
func (s *EmailServiceImpl) SendDrivePostedEmail(toEmails []string, companyName, driveName string, deadline time.Time) error {
	if len(toEmails) == 0 {
		return nil
	}
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Int("recipients", len(toEmails)).
			Str("company", companyName).
			Msg("SMTP credentials not configured - drive announcement not sent.")
		return nil
	}

	subject := fmt.Sprintf("New Opportunity: %s - %s", companyName, driveName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Placement Opportunity</h2>
				<p>%s is now accepting applications under the %s drive.</p>
				<p>The application deadline is <strong>%s</strong>.</p>
				<p>Log in to the placement portal to view the openings and apply.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, companyName, driveName, deadline.Format("02 Jan 2006 15:04"))

	return s.sendHTMLEmail(toEmails, subject, body)
}

// SendOfferEmail informs a student that an offer was extended.
func (s *EmailServiceImpl) SendOfferEmail(toEmail, toName, jobTitle, companyName string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("to_email", toEmail).
			Str("job_title", jobTitle).
			Msg("SMTP credentials not configured - offer email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Job Offer: %s at %s", jobTitle, companyName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Congratulations!</h2>
				<p>Hello %s,</p>
				<p>You have been offered the position of <strong>%s</strong> at <strong>%s</strong>.</p>
				<p>Log in to the placement portal to accept or decline the offer.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, toName, jobTitle, companyName)

	return s.sendHTMLEmail([]string{toEmail}, subject, body)
}

// SendOfferAcceptedEmail confirms an accepted offer to the student.
func (s *EmailServiceImpl) SendOfferAcceptedEmail(toEmail, toName, jobTitle, companyName string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("to_email", toEmail).
			Str("job_title", jobTitle).
			Msg("SMTP credentials not configured - offer accepted email not sent.")
		return nil
	}

	subject := fmt.Sprintf("Offer Accepted - %s at %s", jobTitle, companyName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Offer Accepted</h2>
				<p>Hello %s,</p>
				<p>You have accepted the offer for <strong>%s</strong> at <strong>%s</strong>.</p>
				<p>The placement team will guide you through the next steps. Keep your documents ready for verification.</p>
				<p>Best regards,<br>The Placement Cell</p>
			</div>
		</body>
		</html>
	`, toName, jobTitle, companyName)

	return s.sendHTMLEmail([]string{toEmail}, subject, body)
}

// sendHTMLEmail sends an HTML email to one or more recipients
func (s *EmailServiceImpl) sendHTMLEmail(toEmails []string, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		for _, to := range toEmails {
			if err = client.Rcpt(to); err != nil {
				return fmt.Errorf("failed to set recipient: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		toEmails,
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
