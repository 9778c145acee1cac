package telegram

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/frain-dev/partrotate/notification"
)

func newTestSender() *Telegram {
	return NewTelegramNotificationSender("6327:AAE", "-4578699157").(*Telegram)
}

func TestTelegram_SendNotification(t *testing.T) {
	sender := newTestSender()

	httpmock.ActivateNonDefault(sender.client)
	defer httpmock.DeactivateAndReset()

	url := "https://api.telegram.org/bot6327:AAE/sendMessage"
	httpmock.RegisterResponder(http.MethodPost, url,
		httpmock.NewStringResponder(http.StatusOK, `{"ok":true}`))

	err := sender.SendNotification(context.Background(), &notification.Notification{Text: "Added partition p20241030 for table db1.tab_user."})
	require.NoError(t, err)

	info := httpmock.GetCallCountInfo()
	require.Equal(t, 1, info["POST "+url])
}

func TestTelegram_SendNotification_FailsOnNon200(t *testing.T) {
	sender := newTestSender()

	httpmock.ActivateNonDefault(sender.client)
	defer httpmock.DeactivateAndReset()

	url := "https://api.telegram.org/bot6327:AAE/sendMessage"
	httpmock.RegisterResponder(http.MethodPost, url,
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream unavailable"))

	err := sender.SendNotification(context.Background(), &notification.Notification{Text: "hello"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Contains(t, err.Error(), "upstream unavailable")
}
