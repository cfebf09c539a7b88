package record

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Service defines the business logic for tabela records
type Service struct {
	repo Repository
	log  *slog.Logger
}

type Servicer interface {
	Create(ctx context.Context, name string, age int) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, id int, name string, age int) (*Record, error)
	Delete(ctx context.Context, id int) (string, error)
}

// NewService creates a new record service
func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "record_service"),
	}
}

// DeletedMessage is the confirmation returned by a successful Delete.
func DeletedMessage(id int) string {
	return fmt.Sprintf("Registro %d deletado com sucesso", id)
}

// Create inserts a record and returns it with the assigned id
func (s *Service) Create(ctx context.Context, name string, age int) (*Record, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(sess)

	rec, err := sess.Create(ctx, name, age)
	if err != nil {
		s.log.Error("failed to create record", "name", name, "error", err)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created", "record_id", rec.ID)

	return rec, nil
}

// List returns every stored record in insertion order
func (s *Service) List(ctx context.Context) ([]Record, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(sess)

	records, err := sess.List(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// Update replaces name and age of an existing record.
// The lookup and the write share one session.
func (s *Service) Update(ctx context.Context, id int, name string, age int) (*Record, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(sess)

	rec, err := sess.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get record for update", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record for update: %w", err)
	}

	rec.Name = name
	rec.Age = age

	if err := sess.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			// deleted between lookup and write
			return nil, ErrNotFound
		}
		s.log.Error("failed to update record", "record_id", id, "error", err)
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.log.Info("record updated", "record_id", id)

	return rec, nil
}

// Delete removes a record and returns the confirmation message
func (s *Service) Delete(ctx context.Context, id int) (string, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return "", err
	}
	defer s.release(sess)

	if err := sess.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return "", fmt.Errorf("delete record: %w", err)
	}

	s.log.Info("record deleted", "record_id", id)

	return DeletedMessage(id), nil
}

func (s *Service) session(ctx context.Context) (Session, error) {
	sess, err := s.repo.Session(ctx)
	if err != nil {
		s.log.Error("failed to open session", "error", err)
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}

func (s *Service) release(sess Session) {
	if err := sess.Close(); err != nil {
		s.log.Warn("failed to release session", "error", err)
	}
}
