package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"realty-portal-backend/platform/config"
)

// Client enqueues background tasks from the API process.
type Client struct {
	client *asynq.Client
	queue  string
	delay  time.Duration
}

// NewClient creates the enqueue client. Returns an error when REDIS_URL is
// unset; callers treat that as "scheduling disabled".
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		delay:  cfg.GetLeadFollowupDelay(),
	}, nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleLeadFollowup enqueues a followup reminder for the configured delay
// after capture.
func (c *Client) ScheduleLeadFollowup(ctx context.Context, payload LeadFollowupPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadFollowupTask(payload)
	if err != nil {
		return err
	}

	delay := c.delay
	if delay <= 0 {
		delay = 24 * time.Hour
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
