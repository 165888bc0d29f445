package service

import (
	"context"
	"fmt"
	"time"

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

func (s *emailService) SendOverdueReminder(ctx context.Context, to, customerName, itemName string, dueDate time.Time, daysOverdue int32) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Rental overdue: %s", itemName))

	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s was due on %s and is now %d day(s) overdue.\n\nPlease return it at your earliest convenience to avoid further late fees.\n\nThank you",
		customerName, itemName, dueDate.Format("January 2, 2006"), daysOverdue)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}

	return nil
}
