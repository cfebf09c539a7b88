package submission

import (
	"context"
	"time"
)

// Result is returned after the payload was stored and the notification sent.
type Result struct {
	Status string `json:"status" example:"ok"`
	Key    string `json:"s3_key" example:"submissions/20250101T120000Z-1735732800000-5f0c.json"`
}

// BlobStore durably stores raw documents under a key.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// Location renders the key as a human-readable address, e.g. s3://bucket/key.
	Location(key string) string
}

// Message is a plain-text email.
type Message struct {
	Subject string
	Body    string
}

// Notifier delivers one notification message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Clock is time.Now, swappable in tests.
type Clock func() time.Time
