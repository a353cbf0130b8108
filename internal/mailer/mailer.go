package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers account verification and password reset messages.
type Mailer interface {
	SendOTP(toEmail, code string) error
	SendPasswordReset(toEmail, resetLink string) error
}

type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

func (s *SMTPMailer) SendOTP(toEmail, code string) error {
	body := fmt.Sprintf("Your OTP code is %s. It will expire in 5 minutes.", code)
	return s.send(toEmail, "Verify your account", body)
}

func (s *SMTPMailer) SendPasswordReset(toEmail, resetLink string) error {
	body := fmt.Sprintf("Use the link below to reset your password. It is valid for 30 minutes.\n\n%s", resetLink)
	return s.send(toEmail, "Password reset", body)
}

func (s *SMTPMailer) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", toEmail, err)
	}
	return nil
}
