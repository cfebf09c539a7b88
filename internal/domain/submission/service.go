package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const contentTypeJSON = "application/json"

type Servicer interface {
	Submit(ctx context.Context, payload json.RawMessage) (*Result, error)
}

// Service relays submissions to the blob store and then notifies.
// The two steps are not transactional: a stored blob stays in place when
// the notification fails.
type Service struct {
	blobs    BlobStore
	notifier Notifier
	now      Clock
	log      *slog.Logger
}

func NewService(blobs BlobStore, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		blobs:    blobs,
		notifier: notifier,
		now:      time.Now,
		log:      log.With("component", "submission_service"),
	}
}

// WithClock replaces the time source used for keys and subjects.
func (s *Service) WithClock(now Clock) *Service {
	s.now = now
	return s
}

func (s *Service) Submit(ctx context.Context, payload json.RawMessage) (*Result, error) {
	body, pretty, err := normalize(payload)
	if err != nil {
		return nil, err
	}

	key, ts := newKey(s.now())

	if err := s.blobs.Put(ctx, key, body, contentTypeJSON); err != nil {
		s.log.Error("failed to store submission", "key", key, "error", err)
		return nil, &StepError{Step: StepBlobWrite, Key: key, Err: err}
	}

	msg := Message{
		Subject: "Nova submissão de formulário - " + ts,
		Body: fmt.Sprintf(
			"Recebemos uma nova submissão.\n\nConteúdo:\n%s\n\nArquivo salvo em: %s",
			pretty, s.blobs.Location(key),
		),
	}

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.log.Error("failed to send submission notification", "key", key, "error", err)
		return nil, &StepError{Step: StepNotify, Key: key, Err: err}
	}

	s.log.Info("submission stored", "key", key, "size", len(body))

	return &Result{Status: "ok", Key: key}, nil
}

// normalize validates that payload is a JSON object and returns its
// compact and indented forms.
func normalize(payload json.RawMessage) ([]byte, string, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, "", ErrInvalidPayload
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, trimmed, "", "  "); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return compact.Bytes(), pretty.String(), nil
}
