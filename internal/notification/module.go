// Package notification delivers operator-facing messages over Slack and,
// optionally, SMTP. It is the assistant's notify side-effect target and also
// listens on the event bus.
package notification

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	assistanttransport "realty-portal-backend/internal/assistant/transport"
	"realty-portal-backend/internal/events"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
)

// Module fans operator notifications out to the configured channels.
type Module struct {
	slack *SlackSender
	email *EmailSender
	log   *logger.Logger
}

// NewModule creates the notification module. Either channel may be absent;
// with both absent the module is a no-op and NotifyLead reports that.
func NewModule(cfg *config.Config, log *logger.Logger) *Module {
	return &Module{
		slack: NewSlackSender(cfg.GetSlackBotToken(), cfg.GetSlackChannelID()),
		email: NewEmailSender(cfg),
		log:   log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// Enabled reports whether at least one channel is configured.
func (m *Module) Enabled() bool {
	return m.slack != nil || m.email != nil
}

// NotifyLead pushes a captured lead to every configured channel. Implements
// the assistant engine's OperatorNotifier port.
func (m *Module) NotifyLead(ctx context.Context, lead assistanttransport.LeadInfo, transcriptSummary string) error {
	if !m.Enabled() {
		return fmt.Errorf("no operator channel configured")
	}

	text := formatLead(lead, transcriptSummary)

	var errs []string
	if m.slack != nil {
		if err := m.slack.Send(ctx, text); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if m.email != nil {
		subject := fmt.Sprintf("Nuevo lead: %s", lead.Name)
		if err := m.email.Send(ctx, subject, text); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify lead: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SendOperatorMessage delivers an arbitrary text to every configured channel.
// Background jobs use it for digests and reminders.
func (m *Module) SendOperatorMessage(ctx context.Context, subject, text string) error {
	if !m.Enabled() {
		return fmt.Errorf("no operator channel configured")
	}

	var errs []string
	if m.slack != nil {
		if err := m.slack.Send(ctx, text); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if m.email != nil {
		if err := m.email.Send(ctx, subject, text); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("send operator message: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RegisterHandlers subscribes to the domain events the operator cares about.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCaptured{}.EventName(), m)
	bus.Subscribe(events.PropertyPublished{}.EventName(), m)
}

// Handle routes events to the appropriate notification.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCaptured:
		// The assistant already notified through its side effect; the bus
		// subscription covers leads recorded through other paths and keeps
		// an audit trail in the logs.
		m.log.Info("lead captured", "leadId", e.LeadID, "intent", e.Intent)
		return nil
	case events.PropertyPublished:
		if m.slack == nil {
			return nil
		}
		text := fmt.Sprintf("Nueva propiedad publicada: *%s* en %s ($%.0f)", e.Title, e.Location, e.Price)
		return m.slack.Send(ctx, text)
	default:
		return nil
	}
}

func formatLead(lead assistanttransport.LeadInfo, transcriptSummary string) string {
	var b strings.Builder
	b.WriteString("*Nuevo lead capturado*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", lead.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", lead.Phone)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	if lead.Intent != "" {
		fmt.Fprintf(&b, "Interés: %s\n", lead.Intent)
	}
	if transcriptSummary != "" {
		fmt.Fprintf(&b, "\nResumen de la conversación:\n%s", truncate(transcriptSummary, 2500))
	}
	return b.String()
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "…"
}
