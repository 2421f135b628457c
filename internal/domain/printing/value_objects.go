package printing

import "github.com/printdesk/backend/internal/domain/shared"

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// NewMargins creates a new Margins value object
func NewMargins(top, right, bottom, left int) (Margins, error) {
	if top < 0 || right < 0 || bottom < 0 || left < 0 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot be negative")
	}
	if top > 50 || right > 50 || bottom > 50 || left > 50 {
		return Margins{}, shared.NewDomainError("INVALID_MARGINS", "Margins cannot exceed 50mm")
	}
	return Margins{Top: top, Right: right, Bottom: bottom, Left: left}, nil
}

// DefaultMargins returns the margins used on every business document
func DefaultMargins() Margins {
	return Margins{Top: 12, Right: 12, Bottom: 16, Left: 12}
}

// IsZero returns true if all margins are zero
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// Layout is the page setup of a rendered document
type Layout struct {
	PaperSize   PaperSize   `json:"paper_size"`
	Orientation Orientation `json:"orientation"`
	Margins     Margins     `json:"margins"`
}

// LayoutFor returns the page setup of a document type.
// The revenue report is landscape so the trend table fits one row per month.
func LayoutFor(d DocType) Layout {
	l := Layout{
		PaperSize:   PaperSizeA4,
		Orientation: OrientationPortrait,
		Margins:     DefaultMargins(),
	}
	if d == DocTypeRevenueReport {
		l.Orientation = OrientationLandscape
	}
	return l
}

// ContentWidth returns the printable width in millimeters
func (l Layout) ContentWidth() int {
	w, h := l.PaperSize.Dimensions()
	if l.Orientation == OrientationLandscape {
		w = h
	}
	return w - l.Margins.Left - l.Margins.Right
}
