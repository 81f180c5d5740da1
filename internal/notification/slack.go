package notification

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackSender posts operator messages to a Slack channel via a bot token.
type SlackSender struct {
	client    *slack.Client
	channelID string
}

// NewSlackSender creates a Slack sender. Returns nil when the token or
// channel is missing so callers can treat the channel as absent.
func NewSlackSender(botToken, channelID string) *SlackSender {
	if botToken == "" || channelID == "" {
		return nil
	}
	return &SlackSender{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

// Send posts a plain-text message to the configured channel.
func (s *SlackSender) Send(ctx context.Context, text string) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	return nil
}
