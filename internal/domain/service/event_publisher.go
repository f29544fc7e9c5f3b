package service

import (
	"context"
	"time"
)

// LeadEvent announces a newly stored lead to the sales follow-up pipeline.
type LeadEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	LeadID      string    `json:"lead_id"`
	Source      string    `json:"source"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Format      string    `json:"format,omitempty"`
	Course      string    `json:"course"`
	Date        time.Time `json:"date"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLeadEvent publishes a lead event for async processing
	PublishLeadEvent(ctx context.Context, event *LeadEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
