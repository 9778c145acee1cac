package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	partrotate "github.com/frain-dev/partrotate"
	"github.com/frain-dev/partrotate/notification"
)

const defaultBaseURL = "https://api.telegram.org"

type Telegram struct {
	baseURL  string
	botToken string
	chatID   string
	agent    string
	client   *http.Client
}

func NewTelegramNotificationSender(botToken, chatID string) notification.Sender {
	return &Telegram{
		baseURL:  defaultBaseURL,
		botToken: botToken,
		chatID:   chatID,
		agent:    "Partrotate/" + partrotate.GetVersion(),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) SendNotification(ctx context.Context, nc *notification.Notification) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", nc.Text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", t.agent)

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send message to telegram: %d, %s", resp.StatusCode, body)
	}

	return nil
}
