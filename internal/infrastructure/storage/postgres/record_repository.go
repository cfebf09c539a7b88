package postgres

import (
	"context"
	"errors"
	"fmt"

	"tabela/internal/domain/record"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

// RecordRepository hands out one pooled connection per session.
type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Session(ctx context.Context) (record.Session, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &recordSession{conn: conn, log: r.log}, nil
}

type recordSession struct {
	conn *pgxpool.Conn
	log  *slog.Logger
}

// Columns may hold NULLs in tables created by earlier deployments.
const selectColumns = `id, COALESCE(nome, ''), COALESCE(idade, 0)`

func (s *recordSession) Create(ctx context.Context, name string, age int) (*record.Record, error) {
	const query = `
		INSERT INTO tabela (nome, idade)
		VALUES ($1, $2)
		RETURNING ` + selectColumns

	var rec record.Record
	err := s.conn.QueryRow(ctx, query, name, age).Scan(&rec.ID, &rec.Name, &rec.Age)
	if err != nil {
		s.log.Error("failed to insert record", "error", err)
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return &rec, nil
}

func (s *recordSession) List(ctx context.Context) ([]record.Record, error) {
	const query = `SELECT ` + selectColumns + ` FROM tabela ORDER BY id`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]record.Record, 0)
	for rows.Next() {
		var rec record.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Age); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

func (s *recordSession) Get(ctx context.Context, id int) (*record.Record, error) {
	const query = `SELECT ` + selectColumns + ` FROM tabela WHERE id = $1`

	var rec record.Record
	err := s.conn.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Name, &rec.Age)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		s.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	return &rec, nil
}

func (s *recordSession) Update(ctx context.Context, rec *record.Record) error {
	const query = `UPDATE tabela SET nome = $1, idade = $2 WHERE id = $3`

	tag, err := s.conn.Exec(ctx, query, rec.Name, rec.Age, rec.ID)
	if err != nil {
		s.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (s *recordSession) Delete(ctx context.Context, id int) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM tabela WHERE id = $1`, id)
	if err != nil {
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (s *recordSession) Close() error {
	s.conn.Release()
	return nil
}
