package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tabela/internal/domain/record"

	"golang.org/x/exp/slog"
)

// RecordRepository hands out one *sql.Conn per session.
type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRecordRepository(db *sql.DB, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Session(ctx context.Context) (record.Session, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &recordSession{conn: conn, log: r.log}, nil
}

type recordSession struct {
	conn *sql.Conn
	log  *slog.Logger
}

const selectColumns = `id, COALESCE(nome, ''), COALESCE(idade, 0)`

func (s *recordSession) Create(ctx context.Context, name string, age int) (*record.Record, error) {
	res, err := s.conn.ExecContext(ctx, `INSERT INTO tabela (nome, idade) VALUES (?, ?)`, name, age)
	if err != nil {
		s.log.Error("failed to insert record", "error", err)
		return nil, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &record.Record{ID: int(id), Name: name, Age: age}, nil
}

func (s *recordSession) List(ctx context.Context) ([]record.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+selectColumns+` FROM tabela ORDER BY id`)
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
	var rec record.Record
	err := s.conn.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM tabela WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &rec.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		s.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}

	return &rec, nil
}

func (s *recordSession) Update(ctx context.Context, rec *record.Record) error {
	res, err := s.conn.ExecContext(ctx, `UPDATE tabela SET nome = ?, idade = ? WHERE id = ?`, rec.Name, rec.Age, rec.ID)
	if err != nil {
		s.log.Error("failed to update record", "record_id", rec.ID, "error", err)
		return fmt.Errorf("update record: %w", err)
	}
	return checkAffected(res)
}

func (s *recordSession) Delete(ctx context.Context, id int) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM tabela WHERE id = ?`, id)
	if err != nil {
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return fmt.Errorf("delete record: %w", err)
	}
	return checkAffected(res)
}

func (s *recordSession) Close() error {
	return s.conn.Close()
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	return nil
}
