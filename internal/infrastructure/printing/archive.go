package printing

import (
	"context"
	"errors"

	"github.com/printdesk/backend/internal/domain/printing"
	"github.com/printdesk/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// DocumentArchive keeps a copy of every rendered PDF in object storage
type DocumentArchive struct {
	storage storage.ObjectStorage
	logger  *zap.Logger
}

// NewDocumentArchive creates an archive over objectStorage
func NewDocumentArchive(objectStorage storage.ObjectStorage, logger *zap.Logger) *DocumentArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentArchive{storage: objectStorage, logger: logger}
}

// Store uploads pdf under the archive key of the document and returns the key.
// Archiving the same document again overwrites the previous copy.
func (a *DocumentArchive) Store(ctx context.Context, docType printing.DocType, id string, pdf []byte) (string, error) {
	if id == "" {
		return "", NewRenderError(ErrCodeStorageFailed, "document id is empty", nil)
	}
	if len(pdf) == 0 {
		return "", NewRenderError(ErrCodeStorageFailed, "document is empty", nil)
	}

	key := docType.ArchiveKey(id)
	if err := a.storage.Upload(ctx, key, pdf, pdfContentType); err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", NewRenderError(ErrCodeStorageFailed, "failed to archive "+key, err)
	}

	a.logger.Debug("document archived",
		zap.String("doc_type", docType.String()),
		zap.String("key", key),
		zap.Int("bytes", len(pdf)))
	return key, nil
}
