package printing

import (
	"fmt"

	"github.com/google/uuid"
)

// DocType names a printable business document
type DocType string

const (
	DocTypeQuote         DocType = "QUOTE"
	DocTypeOrder         DocType = "ORDER"
	DocTypeRevenueReport DocType = "REVENUE_REPORT"
)

type docInfo struct {
	title  string
	folder string
	// file is the download name pattern; %s takes the short id
	file string
}

var docTypes = map[DocType]docInfo{
	DocTypeQuote:         {"Orçamento", "quotes", "orcamento-%s.pdf"},
	DocTypeOrder:         {"Pedido", "orders", "pedido-%s.pdf"},
	DocTypeRevenueReport: {"Relatório de Faturamento", "reports", "relatorio-faturamento.pdf"},
}

// AllDocTypes lists the document types in menu order
func AllDocTypes() []DocType {
	return []DocType{DocTypeQuote, DocTypeOrder, DocTypeRevenueReport}
}

func (d DocType) IsValid() bool {
	_, ok := docTypes[d]
	return ok
}

func (d DocType) String() string { return string(d) }

// DisplayName is the title printed in the document header
func (d DocType) DisplayName() string {
	if info, ok := docTypes[d]; ok {
		return info.title
	}
	return string(d)
}

// ArchiveKey is the object key of the archived copy. id is the entity id,
// or the period for reports.
func (d DocType) ArchiveKey(id string) string {
	folder := "other"
	if info, ok := docTypes[d]; ok {
		folder = info.folder
	}
	return fmt.Sprintf("documents/%s/%s.pdf", folder, id)
}

func (d DocType) FileName(id uuid.UUID) string {
	info, ok := docTypes[d]
	if !ok {
		return ShortID(id) + ".pdf"
	}
	if d == DocTypeRevenueReport {
		return info.file
	}
	return fmt.Sprintf(info.file, ShortID(id))
}

// ShortID is the first 8 hex digits of id, printed as the document number
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// PaperSize is an ISO sheet size
type PaperSize string

const (
	PaperSizeA4 PaperSize = "A4"
	PaperSizeA5 PaperSize = "A5"
)

// sheet sizes in millimeters, portrait
var sheets = map[PaperSize][2]int{
	PaperSizeA4: {210, 297},
	PaperSizeA5: {148, 210},
}

func (p PaperSize) IsValid() bool {
	_, ok := sheets[p]
	return ok
}

func (p PaperSize) String() string { return string(p) }

// Dimensions is the portrait width and height in millimeters. Unknown sizes
// print as A4.
func (p PaperSize) Dimensions() (width, height int) {
	size, ok := sheets[p]
	if !ok {
		size = sheets[PaperSizeA4]
	}
	return size[0], size[1]
}

type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

func (o Orientation) String() string { return string(o) }
