package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dawitf/ece-backend/internal/app/models"
)

// MailService is the outbound mail delegate. Sends are best-effort;
// callers decide whether a failure downgrades or aborts the operation.
type MailService interface {
	SendWelcomeEmail(m WelcomeMail) error
	SendAssignmentEmail(m AssignmentMail) error
	SendPasswordResetEmail(toEmail, resetLink string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// WelcomeMail describes an account-creation notification.
type WelcomeMail struct {
	ToName     string
	ToEmail    string
	Password   string
	Role       models.Role
	CourseName string
	CourseCode string
	BatchYear  string
	StreamName string
}

// AssignmentMail describes a course-assignment notification.
type AssignmentMail struct {
	ToName     string
	ToEmail    string
	CourseName string
	CourseCode string
	BatchYear  string
	StreamName string
}

// MailServiceImpl implements MailService over plain SMTP
type MailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewMailService creates a new MailService
func NewMailService(config SMTPConfig, logger zerolog.Logger) MailService {
	return &MailServiceImpl{config: config, logger: logger}
}

func (s *MailServiceImpl) send(toEmail, subject, body string) error {
	// Without credentials, log the mail instead of sending (development)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	from := s.config.FromEmail
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.config.FromName, from),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := smtp.SendMail(addr, auth, from, []string{toEmail}, []byte(msg)); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail notifies a newly created user of their credentials
// and role context.
func (s *MailServiceImpl) SendWelcomeEmail(m WelcomeMail) error {
	var roleDescription, additionalInfo string
	switch m.Role {
	case models.RoleStaff:
		roleDescription = "You have been assigned as a Staff member."
		if m.CourseName != "" {
			additionalInfo = fmt.Sprintf("You have been assigned to the course: %s (%s). Batch Year: %s.", m.CourseName, m.CourseCode, m.BatchYear)
		}
	case models.RoleDepartmentAdmin:
		roleDescription = "You are a Department Admin."
	case models.RoleRepresentative:
		roleDescription = "You are a Representative."
		additionalInfo = fmt.Sprintf("Batch Year: %s.", m.BatchYear)
	}
	if m.StreamName != "" && additionalInfo != "" {
		additionalInfo += fmt.Sprintf(" Stream: %s.", m.StreamName)
	}

	body := fmt.Sprintf(`Hello %s,

Welcome to the Electrical and Computer Engineering (ECE) department!

Your account has been created. %s %s You can now access the department's website using the following credentials:

Email: %s
Password: %s

You can change your password after login on the profile page.

Regards,
ECE Department`, m.ToName, roleDescription, additionalInfo, m.ToEmail, m.Password)

	return s.send(m.ToEmail, "Welcome to the ECE Department", body)
}

// SendAssignmentEmail notifies a staff member of a new course assignment.
func (s *MailServiceImpl) SendAssignmentEmail(m AssignmentMail) error {
	streamLine := "No stream assigned."
	if m.StreamName != "" {
		streamLine = fmt.Sprintf("Stream: %s.", m.StreamName)
	}

	body := fmt.Sprintf(`Hello %s,

You have been assigned a new course in the Electrical and Computer Engineering (ECE) department!

Course: %s (%s)
Batch Year: %s
%s

Please review the course details and get in touch if you have any questions.

Regards,
ECE Department`, m.ToName, m.CourseName, m.CourseCode, m.BatchYear, streamLine)

	return s.send(m.ToEmail, "Course Assignment Notification", body)
}

// SendPasswordResetEmail sends a reset link that expires in 15 minutes.
func (s *MailServiceImpl) SendPasswordResetEmail(toEmail, resetLink string) error {
	body := fmt.Sprintf(`Hello,

We received a request to reset your password. You can reset your password by clicking the link below:

%s

This link will expire in 15 minutes. If you did not request a password reset, please ignore this email.

Regards,
ECE Department`, resetLink)

	return s.send(toEmail, "Password Reset Request", body)
}
