package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no document matches the id and owner.
var ErrNotFound = errors.New("not found")

const documentColumns = `id, user_id, file_name, file_size, file_type, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// Store persists document metadata.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Create inserts d and returns the stored row. An empty ID is generated and an empty
// status defaults to uploaded.
func (s *Store) Create(ctx context.Context, d Document) (Document, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = "uploaded"
	}
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO documents (id, user_id, file_name, file_size, file_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+documentColumns,
		d.ID, d.UserID, d.FileName, d.FileSize, d.FileType, d.Status,
	)
	out, err := scanDocument(row)
	if err != nil {
		return Document{}, fmt.Errorf("error inserting document: %w", err)
	}
	return out, nil
}

// ListByUser returns the user's documents, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return docs, nil
}

// Get returns the document with id owned by userID or ErrNotFound.
func (s *Store) Get(ctx context.Context, userID, id string) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("error querying document: %w", err)
	}
	return d, nil
}

// UpdateStatus moves the document from status from to status to. It returns ErrNotFound
// when the document does not exist for userID or is no longer in status from.
func (s *Store) UpdateStatus(ctx context.Context, userID, id, from, to string) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE documents SET status = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND status = $3
		 RETURNING `+documentColumns,
		id, userID, from, to,
	)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("error updating document status: %w", err)
	}
	return d, nil
}

func scanDocument(r scanner) (Document, error) {
	var d Document
	err := r.Scan(&d.ID, &d.UserID, &d.FileName, &d.FileSize, &d.FileType, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
