package email

import (
	"context"
	"fmt"

	"github.com/frain-dev/partrotate/config"
	"github.com/frain-dev/partrotate/notification"
	"github.com/frain-dev/partrotate/smtp"
)

const defaultSubject = "Partition maintenance report"

type Email struct {
	s  *smtp.SmtpClient
	to string
}

func NewEmailNotificationSender(smtpCfg *config.SMTPConfiguration) (notification.Sender, error) {
	s, err := smtp.New(smtpCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp client: %v", err)
	}

	return &Email{s: s, to: smtpCfg.To}, nil
}

func (e *Email) SendNotification(ctx context.Context, n *notification.Notification) error {
	return e.s.SendTextNotification(e.to, defaultSubject, n.Text)
}
