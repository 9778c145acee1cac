package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent     []string
	failures int
}

func (f *fakeSender) SendNotification(_ context.Context, n *Notification) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("transport down")
	}
	f.sent = append(f.sent, n.Text)
	return nil
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		max        int
		wantChunks int
	}{
		{
			name:       "short message is a single chunk",
			text:       "hello",
			max:        MaxMessageLength,
			wantChunks: 1,
		},
		{
			name:       "exact limit is a single chunk",
			text:       strings.Repeat("a", MaxMessageLength),
			max:        MaxMessageLength,
			wantChunks: 1,
		},
		{
			name:       "9000 characters split into 3 chunks",
			text:       strings.Repeat("x", 5000) + strings.Repeat("y", 4000),
			max:        MaxMessageLength,
			wantChunks: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := SplitMessage(tc.text, tc.max)
			require.Len(t, chunks, tc.wantChunks)

			for _, chunk := range chunks {
				require.LessOrEqual(t, len([]rune(chunk)), tc.max)
			}

			require.Equal(t, tc.text, strings.Join(chunks, ""))
		})
	}
}

func TestDeliver_SkipsEmptyText(t *testing.T) {
	sender := &fakeSender{}

	err := Deliver(context.Background(), sender, "")
	require.NoError(t, err)
	require.Empty(t, sender.sent)
}

func TestDeliver_SendsChunksInOrder(t *testing.T) {
	sender := &fakeSender{}
	text := strings.Repeat("x", 5000) + strings.Repeat("y", 4000)

	err := Deliver(context.Background(), sender, text)
	require.NoError(t, err)
	require.Len(t, sender.sent, 3)
	require.Equal(t, text, strings.Join(sender.sent, ""))
}

func TestDeliver_PropagatesTransportErrors(t *testing.T) {
	sender := &fakeSender{failures: 1}

	err := Deliver(context.Background(), sender, "report body")
	require.Error(t, err)
	require.Empty(t, sender.sent)
}
