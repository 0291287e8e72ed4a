package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nWelcome to the volunteer marketplace. Browse public projects and find a task that fits your skills.\n\nBest regards,\nThe Marketplace Team", name)
	return s.send(email, "Welcome to the volunteer marketplace", body)
}

func (s *emailService) SendNotificationEmail(ctx context.Context, email, name, message string) error {
	body := fmt.Sprintf("Hello %s,\n\n%s\n\nBest regards,\nThe Marketplace Team", name, message)
	return s.send(email, "You have a new notification", body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
