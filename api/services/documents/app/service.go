package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	docdb "github.com/tbeaudouin05/tenderguard-api/api/services/documents/db"
)

// Service defines the document metadata operations available to an authenticated user.
type Service interface {
	Create(ctx context.Context, userID string, req CreateDocumentRequest) (Document, error)
	List(ctx context.Context, userID string) ([]Document, error)
	UpdateStatus(ctx context.Context, userID, id string, req UpdateStatusRequest) (Document, error)
}

type serviceImpl struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return serviceImpl{repo: repo, validate: v}
}

// Create records metadata for a new upload in status uploaded.
func (s serviceImpl) Create(ctx context.Context, userID string, req CreateDocumentRequest) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	if err := s.validateCreate(req); err != nil {
		documentUploads.WithLabelValues(outcomeRejected).Inc()
		return Document{}, err
	}
	d, err := s.repo.Create(ctx, docdb.Document{
		UserID:   userID,
		FileName: req.FileName,
		FileSize: req.FileSize,
		FileType: req.FileType,
		Status:   string(StatusUploaded),
	})
	if err != nil {
		documentUploads.WithLabelValues(outcomeError).Inc()
		return Document{}, fmt.Errorf("%w: Failed to save document %s: %v", ErrDatabase, req.FileName, err)
	}
	documentUploads.WithLabelValues(outcomeCreated).Inc()
	slog.Info("document recorded", "user_id", userID, "document_id", d.ID, "file_type", d.FileType, "file_size", d.FileSize)
	return toDocument(d), nil
}

// List returns the caller's documents, newest first.
func (s serviceImpl) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, toDocument(r))
	}
	return docs, nil
}

// UpdateStatus advances a document along uploaded, processing, completed; failed is
// reachable from uploaded and processing. Completed and failed are terminal.
func (s serviceImpl) UpdateStatus(ctx context.Context, userID, id string, req UpdateStatusRequest) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	if err := s.validate.Struct(req); err != nil {
		return Document{}, fmt.Errorf("%w: invalid status %q", ErrBadRequest, req.Status)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Document{}, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}

	current, err := s.repo.Get(ctx, userID, id)
	if errors.Is(err, docdb.ErrNotFound) {
		return Document{}, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	from := Status(current.Status)
	if !canTransition(from, req.Status) {
		return Document{}, fmt.Errorf("%w: cannot move document from %s to %s", ErrBadRequest, from, req.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, userID, id, string(from), string(req.Status))
	if errors.Is(err, docdb.ErrNotFound) {
		// Changed between the read and the guarded update.
		return Document{}, fmt.Errorf("%w: document %s is no longer %s", ErrBadRequest, id, from)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	slog.Info("document status changed", "user_id", userID, "document_id", id, "from", from, "to", req.Status)
	return toDocument(updated), nil
}

func (s serviceImpl) validateCreate(req CreateDocumentRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	var missing, invalid []string
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			missing = append(missing, fe.Field())
		case fe.Field() == "file_size" && fe.Tag() == "lte":
			return fmt.Errorf("%w: File %s is too large. Maximum size is 10MB.", ErrBadRequest, req.FileName)
		case fe.Field() == "file_type" && fe.Tag() == "oneof":
			return fmt.Errorf("%w: File %s has an unsupported format. Please use PDF, DOC, DOCX, or image files.", ErrBadRequest, req.FileName)
		default:
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: Missing required fields: %s", ErrBadRequest, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: invalid fields: %s", ErrBadRequest, strings.Join(invalid, ", "))
}

func toDocument(d docdb.Document) Document {
	return Document{
		ID:        d.ID,
		FileName:  d.FileName,
		FileSize:  d.FileSize,
		FileType:  d.FileType,
		Status:    Status(d.Status),
		CreatedAt: d.CreatedAt,
	}
}
