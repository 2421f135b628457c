package printing

import (
	"bytes"
	"context"
	"time"

	"github.com/printdesk/backend/internal/domain/printing"
)

// RenderRequest is one HTML document to print. Timeout overrides the
// renderer default when positive.
type RenderRequest struct {
	HTML       string
	Layout     printing.Layout
	Title      string
	FooterHTML string
	Timeout    time.Duration
}

type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer turns HTML into PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	ErrCodeStorageFailed    = "STORAGE_FAILED"
)

// RenderError carries one of the ErrCode constants so callers can map
// printing failures without matching on messages
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }

var (
	pageMarker = []byte("/Type /Page")
	treeMarker = []byte("/Type /Pages")
)

// estimatePageCount counts page objects minus page tree nodes, never less than one
func estimatePageCount(pdf []byte) int {
	return max(bytes.Count(pdf, pageMarker)-bytes.Count(pdf, treeMarker), 1)
}
