package printing

import (
	"github.com/printdesk/backend/internal/domain/printing"
)

// Document is a rendered PDF ready to be served
type Document struct {
	DocType    printing.DocType
	FileName   string
	Content    []byte
	PageCount  int
	ArchiveKey string // empty when archiving is disabled or failed
}

// ContentType is the MIME type of every rendered document
const ContentType = "application/pdf"
