package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/backend/internal/domain/catalog"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrEmptyLine is returned for a line with neither product nor description.
var ErrEmptyLine = shared.NewDomainError("INVALID_LINE", "A line needs a product or a description")

// ErrLineProductNotFound is returned when a line names a product that does not exist.
var ErrLineProductNotFound = shared.NewDomainError("INVALID_PRODUCT", "Product not found")

var errLineProductMismatch = shared.NewDomainError("INVALID_PRODUCT", "Line product does not match the loaded product")

// checkLineProduct verifies product is the one id refers to
func checkLineProduct(id *uuid.UUID, product *catalog.Product) error {
	switch {
	case id == nil:
		return nil
	case product == nil:
		return ErrLineProductNotFound
	case product.ID != *id:
		return errLineProductMismatch
	}
	return nil
}

// Line is the priced entry shared by quotes and orders.
//
// PriceLocked lines carry a subtotal that was supplied by the caller (for
// example copied from a quote). Their subtotal is never recomputed.
type Line struct {
	ID          uuid.UUID
	ProductID   *uuid.UUID
	ProductName string // snapshot for documents
	Description string
	Quantity    int
	Width       *decimal.Decimal
	Height      *decimal.Decimal
	Subtotal    decimal.Decimal
	PriceLocked bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineInput carries the writable fields of a line.
// A non-nil Subtotal bypasses the pricing calculator and locks the price.
type LineInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    int
	Width       *decimal.Decimal
	Height      *decimal.Decimal
	Subtotal    *decimal.Decimal
}

// newLine builds a priced line. product must be the product referenced by
// input.ProductID, or nil for a manual line.
func newLine(input LineInput, product *catalog.Product) (Line, error) {
	now := time.Now()
	l := Line{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	if err := l.apply(input, product); err != nil {
		return Line{}, err
	}
	return l, nil
}

func (l *Line) apply(input LineInput, product *catalog.Product) error {
	if err := checkLineProduct(input.ProductID, product); err != nil {
		return err
	}
	description := strings.TrimSpace(input.Description)
	if product == nil && description == "" {
		return ErrEmptyLine
	}
	if input.Quantity < 0 {
		return ErrInvalidQuantity
	}

	var subtotal decimal.Decimal
	locked := input.Subtotal != nil
	if locked {
		if input.Subtotal.IsNegative() {
			return ErrInvalidSubtotal
		}
		subtotal = shared.RoundMoney(*input.Subtotal)
	} else {
		s, err := CalculateSubtotal(product, input.Quantity, input.Width, input.Height)
		if err != nil {
			return err
		}
		subtotal = s
	}

	l.ProductID = input.ProductID
	l.ProductName = ""
	if product != nil {
		l.ProductName = product.Name
	}
	l.Description = description
	l.Quantity = input.Quantity
	l.Width = input.Width
	l.Height = input.Height
	l.Subtotal = subtotal
	l.PriceLocked = locked
	l.UpdatedAt = time.Now()
	return nil
}

// Reprice recomputes the subtotal from current product data.
// Locked lines and manual lines keep their subtotal.
func (l *Line) Reprice(product *catalog.Product) error {
	if l.PriceLocked || l.ProductID == nil {
		return nil
	}
	if err := checkLineProduct(l.ProductID, product); err != nil {
		return err
	}
	s, err := CalculateSubtotal(product, l.Quantity, l.Width, l.Height)
	if err != nil {
		return err
	}
	l.Subtotal = s
	l.ProductName = product.Name
	return nil
}

// Label is the text shown for the line on documents.
func (l Line) Label() string {
	switch {
	case l.ProductName != "" && l.Description != "":
		return l.ProductName + " - " + l.Description
	case l.ProductName != "":
		return l.ProductName
	}
	return l.Description
}

// Area returns width × height, or zero when dimensions are absent.
func (l Line) Area() decimal.Decimal {
	if l.Width == nil || l.Height == nil {
		return decimal.Zero
	}
	return l.Width.Mul(*l.Height)
}

// ProductIDs collects the distinct product ids referenced by lines.
func ProductIDs(lines []Line) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == nil {
			continue
		}
		if _, ok := seen[*l.ProductID]; ok {
			continue
		}
		seen[*l.ProductID] = struct{}{}
		ids = append(ids, *l.ProductID)
	}
	return ids
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return shared.RoundMoney(total)
}

// NewLines builds lines from inputs, resolving products from the map.
func NewLines(inputs []LineInput, products map[uuid.UUID]*catalog.Product) ([]Line, error) {
	lines := make([]Line, 0, len(inputs))
	for _, in := range inputs {
		l, err := newLine(in, lookupProduct(products, in.ProductID))
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func lookupProduct(products map[uuid.UUID]*catalog.Product, id *uuid.UUID) *catalog.Product {
	if id == nil || products == nil {
		return nil
	}
	return products[*id]
}

func findLine(lines []Line, id uuid.UUID) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}

// ErrLineNotFound is returned when a line id is not part of the document.
var ErrLineNotFound = shared.NewDomainError("NOT_FOUND", "Line not found")
