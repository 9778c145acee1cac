package slack

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/slack-go/slack"

	partrotate "github.com/frain-dev/partrotate"
	"github.com/frain-dev/partrotate/notification"
)

type Slack struct {
	webhookURL string
	agent      string
}

func NewSlackNotificationSender(webhookURL string) notification.Sender {
	s := &Slack{webhookURL: webhookURL}
	s.agent = "Partrotate/" + partrotate.GetVersion()
	return s
}

func (s *Slack) SendNotification(ctx context.Context, nc *notification.Notification) error {
	attachment := slack.Attachment{
		AuthorName: s.agent,
		Text:       nc.Text,
		Ts:         json.Number(strconv.FormatInt(time.Now().Unix(), 10)),
	}

	msg := &slack.WebhookMessage{
		Attachments: []slack.Attachment{attachment},
	}

	err := slack.PostWebhookContext(ctx, s.webhookURL, msg)
	if err != nil {
		return err
	}
	return nil
}
