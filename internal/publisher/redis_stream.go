// Package publisher emits update-job lifecycle events onto a Redis
// stream so dashboards and the websocket fanout can follow ingestion
// progress.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	jobStream    = "puckcast.jobs"
	streamMaxLen = 1000
)

// JobEvent is one lifecycle event for an update job
type JobEvent struct {
	Job       string         `json:"job"`
	Phase     string         `json:"phase"`
	Detail    map[string]any `json:"detail,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventPublisher publishes job events to a Redis stream. A nil
// publisher is valid and drops events, so callers never need to guard.
type EventPublisher struct {
	client *redis.Client
}

// New creates an event publisher over an existing Redis client
func New(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// Publish appends one event to the job stream, trimming old entries
func (p *EventPublisher) Publish(ctx context.Context, event JobEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: jobStream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"data":      string(data),
			"timestamp": event.Timestamp.Unix(),
		},
	}).Err()
}

// JobStarted publishes a start event
func (p *EventPublisher) JobStarted(ctx context.Context, job string) {
	_ = p.Publish(ctx, JobEvent{Job: job, Phase: "started"})
}

// JobCompleted publishes a completion event with result details
func (p *EventPublisher) JobCompleted(ctx context.Context, job string, detail map[string]any) {
	_ = p.Publish(ctx, JobEvent{Job: job, Phase: "completed", Detail: detail})
}

// JobFailed publishes a failure event
func (p *EventPublisher) JobFailed(ctx context.Context, job string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	_ = p.Publish(ctx, JobEvent{Job: job, Phase: "failed", Error: msg})
}
