package notification

import "context"

// MaxMessageLength is the transport limit for a single message. Longer
// reports are delivered as ordered chunks.
const MaxMessageLength = 4096

type Notification struct {
	Text string `json:"text,omitempty"`
}

type Sender interface {
	SendNotification(context.Context, *Notification) error
}

// SplitMessage cuts text into ordered chunks of at most max characters.
// Concatenating the chunks reproduces the original text exactly.
func SplitMessage(text string, max int) []string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return []string{text}
	}

	var chunks []string
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}

// Deliver sends text through s, chunked to the transport limit, each chunk
// an independent message. Empty text is skipped silently.
func Deliver(ctx context.Context, s Sender, text string) error {
	if text == "" {
		return nil
	}

	for _, chunk := range SplitMessage(text, MaxMessageLength) {
		if err := s.SendNotification(ctx, &Notification{Text: chunk}); err != nil {
			return err
		}
	}

	return nil
}
