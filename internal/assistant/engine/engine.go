// Package engine runs the conversational sales assistant: prompt assembly,
// model fallback, reply parsing and lead side effects.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"realty-portal-backend/internal/assistant/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
)

// Invoker generates one model completion. Implementations wrap a provider SDK.
type Invoker interface {
	Generate(ctx context.Context, model, systemInstructions, prompt string) (string, error)
}

// LeadRecorder stores a completed lead capture.
type LeadRecorder interface {
	RecordLead(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) error
}

// OperatorNotifier pushes a captured lead to the operator channel.
type OperatorNotifier interface {
	NotifyLead(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) error
}

// Engine is the stateless per-request assistant.
type Engine struct {
	invoker           Invoker
	models            []string
	siteBaseURL       string
	recorder          LeadRecorder
	notifier          OperatorNotifier
	sideEffectTimeout time.Duration
	log               *logger.Logger
}

// Config holds the engine's dependencies. Recorder and Notifier may be nil;
// the corresponding side effect is then skipped.
type Config struct {
	Invoker           Invoker
	Models            []string
	SiteBaseURL       string
	Recorder          LeadRecorder
	Notifier          OperatorNotifier
	SideEffectTimeout time.Duration
	Logger            *logger.Logger
}

// New creates an assistant engine.
func New(cfg Config) *Engine {
	timeout := cfg.SideEffectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Engine{
		invoker:           cfg.Invoker,
		models:            cfg.Models,
		siteBaseURL:       cfg.SiteBaseURL,
		recorder:          cfg.Recorder,
		notifier:          cfg.Notifier,
		sideEffectTimeout: timeout,
		log:               cfg.Logger,
	}
}

// modelReply is the JSON document the model is constrained to produce.
type modelReply struct {
	Reply    string              `json:"reply"`
	LeadInfo *transport.LeadInfo `json:"leadInfo,omitempty"`
}

// Chat runs one assistant turn: try each candidate model in order, parse the
// structured reply, and when this turn first completes the lead fire the
// store+notify side effects before returning. Side-effect failures never
// alter the reply.
func (e *Engine) Chat(ctx context.Context, req transport.ChatRequest) (transport.ChatResponse, error) {
	if e.invoker == nil {
		return transport.ChatResponse{}, apperr.Unavailable("assistant is not configured: missing model API key")
	}

	system := BuildSystemInstructions(e.siteBaseURL, req.Language, req.Properties, req.KnownLead)
	prompt := BuildPrompt(req.UserMessage, req.ChatHistory)

	reply, err := e.generateWithFallback(ctx, system, prompt)
	if err != nil {
		return transport.ChatResponse{}, err
	}

	// The model restates the full leadInfo on every turn, so only the turn
	// that first completes the contact fires the side effects. A request
	// whose knownLead is already complete was captured on an earlier turn.
	if reply.LeadInfo != nil && reply.LeadInfo.Complete() && !req.KnownLead.Complete() {
		e.dispatchLeadSideEffects(ctx, *reply.LeadInfo, summarizeTranscript(req))
	}

	return transport.ChatResponse{Reply: reply.Reply}, nil
}

// generateWithFallback walks the candidate list strictly in order. Fatal
// failures (exhausted quota, revoked key) stop immediately; everything else
// records the error and moves on. Exhaustion returns one aggregated error
// naming every candidate's failure.
func (e *Engine) generateWithFallback(ctx context.Context, system, prompt string) (modelReply, error) {
	var failures []string

	for _, model := range e.models {
		raw, err := e.invoker.Generate(ctx, model, system, prompt)
		if err != nil {
			failures = append(failures, fmt.Sprintf("[%s]: %v", model, err))
			if isFatal(err) {
				e.log.Error("assistant model failed fatally", "model", model, "error", err)
				break
			}
			e.log.Warn("assistant model failed, trying next", "model", model, "error", err)
			continue
		}

		var reply modelReply
		if err := json.Unmarshal([]byte(raw), &reply); err != nil || reply.Reply == "" {
			failures = append(failures, fmt.Sprintf("[%s]: unparseable reply", model))
			e.log.Warn("assistant reply unparseable, trying next", "model", model)
			continue
		}
		return reply, nil
	}

	return modelReply{}, apperr.Unavailable("all assistant models failed").
		WithDetails(strings.Join(failures, " "))
}

// isFatal reports whether the failure signals that no other candidate can
// succeed either: the key's quota is gone or the key itself is dead.
func isFatal(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, signal := range []string{
		"quota",
		"resource_exhausted",
		"api key not valid",
		"api_key_invalid",
		"leaked",
		"permission denied",
		"permission_denied",
	} {
		if strings.Contains(msg, signal) {
			return true
		}
	}
	return false
}

// dispatchLeadSideEffects stores the lead and notifies the operator
// concurrently, each under the shared timeout budget. Both outcomes are
// logged; neither failure propagates.
func (e *Engine) dispatchLeadSideEffects(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) {
	effectCtx, cancel := context.WithTimeout(ctx, e.sideEffectTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(effectCtx)

	if e.recorder != nil {
		g.Go(func() error {
			err := e.recorder.RecordLead(gctx, lead, transcriptSummary)
			e.log.SideEffectOutcome("lead.store", err)
			return nil
		})
	}
	if e.notifier != nil {
		g.Go(func() error {
			err := e.notifier.NotifyLead(gctx, lead, transcriptSummary)
			e.log.SideEffectOutcome("lead.notify", err)
			return nil
		})
	}

	// Goroutines swallow their own errors; Wait only blocks until both finish.
	_ = g.Wait()
}

// summarizeTranscript flattens the conversation for storage and notification.
func summarizeTranscript(req transport.ChatRequest) string {
	var b strings.Builder
	for _, msg := range req.ChatHistory {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Text)
	}
	fmt.Fprintf(&b, "user: %s", req.UserMessage)

	summary := b.String()
	const maxLen = 8000
	if len(summary) > maxLen {
		// Keep the tail, stepping forward to a rune boundary so a multibyte
		// character is never split.
		start := len(summary) - maxLen
		for start < len(summary) && !utf8.RuneStart(summary[start]) {
			start++
		}
		summary = summary[start:]
	}
	return summary
}
