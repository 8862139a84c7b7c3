package documents

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/business-nexus/nexus/internal/identifier"
	"github.com/business-nexus/nexus/internal/notification"
	"github.com/business-nexus/nexus/internal/store"
)

const documentsKey = "documents:deals"

const pdfContentType = "application/pdf"

// Service owns the deal document collection.
//
// A nil document result means "not found" and is the caller's signal, not an
// error. Errors carry storage failures and failed content reads only.
type Service struct {
	store    store.Store
	notifier notification.Notifier
}

// NewService builds a document service instance.
func NewService(st store.Store, notifier notification.Notifier) *Service {
	return &Service{store: st, notifier: notifier}
}

// UploadInput captures an uploaded file and its owner.
type UploadInput struct {
	FileName     string
	ContentType  string
	Size         int64
	LastModified time.Time
	OwnerID      string
	Content      io.Reader
}

// CreateFromUpload ingests the file's bytes, encodes them as a data URL and
// persists a new draft document before returning it. A failed read of the
// content is the one condition propagated as an error to the caller.
func (s *Service) CreateFromUpload(ctx context.Context, input UploadInput) (DealDocument, error) {
	data, err := io.ReadAll(input.Content)
	if err != nil {
		return DealDocument{}, fmt.Errorf("read file: %w", err)
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	dataURL := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	lastModified := input.LastModified
	if lastModified.IsZero() {
		lastModified = time.Now().UTC()
	}

	doc := DealDocument{
		ID:           identifier.New("doc"),
		Name:         input.FileName,
		Type:         documentType(input.ContentType, input.FileName),
		Size:         fmt.Sprintf("%.1f MB", float64(input.Size)/(1<<20)),
		LastModified: lastModified.UTC().Format("2006-01-02"),
		Shared:       false,
		URL:          "",
		OwnerID:      input.OwnerID,
		Status:       StatusDraft,
		DataURL:      dataURL,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.Upsert(ctx, doc); err != nil {
		return DealDocument{}, err
	}
	return doc, nil
}

// Upsert inserts the document, or replaces the one with a matching id in
// place. An empty id gets generated.
func (s *Service) Upsert(ctx context.Context, doc DealDocument) (DealDocument, error) {
	docs, err := s.readDocuments(ctx)
	if err != nil {
		return DealDocument{}, err
	}
	if doc.ID == "" {
		doc.ID = identifier.New("doc")
	}
	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	if err := s.store.Write(ctx, documentsKey, docs); err != nil {
		return DealDocument{}, err
	}
	return doc, nil
}

// UpdateStatus sets the document's status. The first transition to signed
// stamps SignedAt; later ones leave the existing stamp alone. Returns nil when
// no document has the id.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*DealDocument, error) {
	docs, err := s.readDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		docs[i].Status = status
		if status == StatusSigned && docs[i].SignedAt == nil {
			now := time.Now().UTC()
			docs[i].SignedAt = &now
		}
		if err := s.store.Write(ctx, documentsKey, docs); err != nil {
			return nil, err
		}
		updated := docs[i]
		return &updated, nil
	}
	return nil, nil
}

// SaveSignature stores the captured signature, forces the document into the
// signed state and refreshes SignedAt unconditionally; unlike UpdateStatus,
// re-signing always moves the stamp. Returns nil when no document has the id.
func (s *Service) SaveSignature(ctx context.Context, id, signature string) (*DealDocument, error) {
	docs, err := s.readDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		now := time.Now().UTC()
		docs[i].Signature = signature
		docs[i].Status = StatusSigned
		docs[i].SignedAt = &now
		if err := s.store.Write(ctx, documentsKey, docs); err != nil {
			return nil, err
		}
		updated := docs[i]

		if s.notifier != nil {
			_ = s.notifier.Send(ctx, notification.Message{
				Kind:        notification.KindDocumentSigned,
				Destination: updated.OwnerID,
				Body:        fmt.Sprintf("Document %s was signed", updated.Name),
			})
		}
		return &updated, nil
	}
	return nil, nil
}

// Delete removes the document unconditionally; unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	docs, err := s.readDocuments(ctx)
	if err != nil {
		return err
	}
	kept := docs[:0:0]
	for _, doc := range docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	return s.store.Write(ctx, documentsKey, kept)
}

// Documents returns all documents, newest first.
func (s *Service) Documents(ctx context.Context) ([]DealDocument, error) {
	docs, err := s.readDocuments(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *Service) readDocuments(ctx context.Context) ([]DealDocument, error) {
	var docs []DealDocument
	if err := s.store.Read(ctx, documentsKey, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// documentType labels PDFs explicitly and falls back to the uppercased
// file-name extension.
func documentType(contentType, fileName string) string {
	if contentType == pdfContentType {
		return "PDF"
	}
	if dot := strings.LastIndex(fileName, "."); dot >= 0 && dot < len(fileName)-1 {
		return strings.ToUpper(fileName[dot+1:])
	}
	return "FILE"
}
