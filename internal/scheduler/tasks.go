// Package scheduler provides asynq task definitions, the enqueue client and
// the worker that processes background jobs.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskAgentMetricsDigest is the daily sales team performance digest.
const TaskAgentMetricsDigest = "digest.agent_metrics"

// TaskLeadFollowup reminds the operator about a lead captured N hours ago.
const TaskLeadFollowup = "leads.followup"

// AgentMetricsDigestPayload is empty; the digest always covers all agents.
type AgentMetricsDigestPayload struct{}

// LeadFollowupPayload identifies the lead to chase.
type LeadFollowupPayload struct {
	LeadID string `json:"leadId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// NewAgentMetricsDigestTask creates the digest task.
func NewAgentMetricsDigestTask() (*asynq.Task, error) {
	data, err := json.Marshal(AgentMetricsDigestPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAgentMetricsDigest, data), nil
}

// NewLeadFollowupTask creates a followup task for one lead.
func NewLeadFollowupTask(payload LeadFollowupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowup, data), nil
}

// ParseLeadFollowupPayload decodes a followup task.
func ParseLeadFollowupPayload(task *asynq.Task) (LeadFollowupPayload, error) {
	var payload LeadFollowupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadFollowupPayload{}, err
	}
	return payload, nil
}
