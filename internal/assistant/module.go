// Package assistant provides the conversational sales assistant module.
package assistant

import (
	"context"

	"realty-portal-backend/internal/assistant/engine"
	"realty-portal-backend/internal/assistant/gemini"
	"realty-portal-backend/internal/assistant/handler"
	"realty-portal-backend/internal/assistant/transport"
	apphttp "realty-portal-backend/internal/http"
	leadsservice "realty-portal-backend/internal/leads/service"
	leadstransport "realty-portal-backend/internal/leads/transport"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
	"realty-portal-backend/platform/validator"
)

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	engine  *engine.Engine
}

// NewModule creates and initializes the assistant module. leadsSvc may be nil
// (no database) and notifier may be nil (no operator channel); the matching
// side effect is then skipped.
func NewModule(ctx context.Context, cfg config.AssistantConfig, leadsSvc *leadsservice.Service, notifier engine.OperatorNotifier, val *validator.Validator, log *logger.Logger) (*Module, error) {
	invokerClient, err := gemini.NewClient(ctx, cfg.GetGeminiAPIKey())
	if err != nil {
		return nil, err
	}

	var invoker engine.Invoker
	if invokerClient != nil {
		invoker = invokerClient
	}

	var recorder engine.LeadRecorder
	if leadsSvc != nil {
		recorder = &leadRecorder{svc: leadsSvc}
	}

	eng := engine.New(engine.Config{
		Invoker:           invoker,
		Models:            cfg.GetAssistantModels(),
		SiteBaseURL:       cfg.GetSiteBaseURL(),
		Recorder:          recorder,
		Notifier:          notifier,
		SideEffectTimeout: cfg.GetSideEffectTimeout(),
		Logger:            log,
	})

	return &Module{
		handler: handler.New(eng, val),
		engine:  eng,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// RegisterRoutes mounts the chat endpoint on the provided router context.
// The endpoint is public but rate limited; non-POST methods get 405.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limited := ctx.ChatRateLimiter.RateLimit()
	ctx.V1.POST("/chat", limited, m.handler.Chat)
	for _, method := range []string{"GET", "PUT", "PATCH", "DELETE", "HEAD"} {
		ctx.V1.Handle(method, "/chat", m.handler.MethodNotAllowed)
	}
}

// leadRecorder adapts the leads service to the engine's port.
type leadRecorder struct {
	svc *leadsservice.Service
}

func (r *leadRecorder) RecordLead(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) error {
	_, err := r.svc.Record(ctx, leadstransport.RecordLeadRequest{
		Name:              lead.Name,
		Phone:             lead.Phone,
		Email:             lead.Email,
		Intent:            lead.Intent,
		TranscriptSummary: transcriptSummary,
	})
	return err
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
