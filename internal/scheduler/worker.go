package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	agentsrepo "realty-portal-backend/internal/agents/repository"
	agentssvc "realty-portal-backend/internal/agents/service"
	"realty-portal-backend/internal/notification"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
)

// digestCron fires the agent metrics digest every morning (server time).
const digestCron = "0 8 * * *"

// Worker processes background tasks in its own process (cmd/worker).
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	agents    *agentssvc.Service
	notifier  *notification.Module
	log       *logger.Logger
}

// NewWorker builds the asynq server, the periodic scheduler and the task mux.
func NewWorker(cfg *config.Config, pool *pgxpool.Pool, notifier *notification.Module, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
	})

	periodic := asynq.NewScheduler(opt, nil)

	w := &Worker{
		server:    server,
		scheduler: periodic,
		mux:       asynq.NewServeMux(),
		agents:    agentssvc.New(agentsrepo.New(pool), log),
		notifier:  notifier,
		log:       log,
	}

	w.mux.HandleFunc(TaskAgentMetricsDigest, w.handleAgentMetricsDigest)
	w.mux.HandleFunc(TaskLeadFollowup, w.handleLeadFollowup)

	digestTask, err := NewAgentMetricsDigestTask()
	if err != nil {
		return nil, err
	}
	if _, err := periodic.Register(digestCron, digestTask, asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register digest schedule: %w", err)
	}

	return w, nil
}

// Run starts the periodic scheduler and blocks processing tasks until ctx is
// cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start periodic scheduler: %w", err)
	}
	return w.server.Run(w.mux)
}

// handleAgentMetricsDigest posts the sales team digest to the operator channel.
func (w *Worker) handleAgentMetricsDigest(ctx context.Context, task *asynq.Task) error {
	agents, err := w.agents.List(ctx)
	if err != nil {
		return err
	}
	stats, err := w.agents.StatsAll(ctx)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(agents))
	for _, a := range agents {
		names[a.ID.String()] = a.Name
	}

	var b strings.Builder
	b.WriteString("*Resumen diario del equipo de ventas*\n")
	for _, s := range stats {
		name := names[s.AgentID.String()]
		if name == "" {
			name = s.AgentID.String()
		}
		fmt.Fprintf(&b, "- %s: %d propiedades, cartera $%.0f, tasa de cierre %.0f%%\n",
			name, s.AssignedCount, s.PortfolioValue, s.CloseRate*100)
	}

	if err := w.notifier.SendOperatorMessage(ctx, "Resumen diario del equipo de ventas", b.String()); err != nil {
		return err
	}
	w.log.Info("agent metrics digest sent", "agents", len(stats))
	return nil
}

// handleLeadFollowup reminds the operator about an aging lead.
func (w *Worker) handleLeadFollowup(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowupPayload(task)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Recordatorio: el lead *%s* (%s, %s) sigue sin seguimiento.",
		payload.Name, payload.Phone, payload.Email)
	if err := w.notifier.SendOperatorMessage(ctx, "Recordatorio de seguimiento de lead", text); err != nil {
		return err
	}
	w.log.Info("lead followup reminder sent", "leadId", payload.LeadID)
	return nil
}
