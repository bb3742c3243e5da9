package app

import (
	"context"

	docdb "github.com/tbeaudouin05/tenderguard-api/api/services/documents/db"
)

//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=app

// Repository is the persistence the documents service needs; *docdb.Store implements it.
type Repository interface {
	Create(ctx context.Context, d docdb.Document) (docdb.Document, error)
	ListByUser(ctx context.Context, userID string) ([]docdb.Document, error)
	Get(ctx context.Context, userID, id string) (docdb.Document, error)
	UpdateStatus(ctx context.Context, userID, id, from, to string) (docdb.Document, error)
}
