package partner

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

const (
	// MaxImportRows bounds a single customer import
	MaxImportRows = 5000
	// maxReportedErrors bounds the row errors returned to the client
	maxReportedErrors = 100
)

// ErrInvalidCSV wraps file-level problems of an import
var ErrInvalidCSV = shared.NewDomainError("INVALID_CSV", "The file is not a readable CSV")

// Accepted column names, English first, then the pt-BR spreadsheet headers
var importColumns = map[string][]string{
	"name":        {"name", "nome"},
	"email":       {"email", "e-mail"},
	"phone":       {"phone", "telefone"},
	"tax_id":      {"tax_id", "cpf_cnpj", "documento"},
	"notes":       {"notes", "observacoes", "observações"},
	"postal_code": {"postal_code", "cep"},
	"street":      {"street", "logradouro", "rua"},
	"number":      {"number", "numero", "número"},
	"district":    {"district", "bairro"},
	"city":        {"city", "cidade"},
	"state":       {"state", "uf", "estado"},
}

// columnByCode names the column a domain validation error belongs to
var columnByCode = map[string]string{
	"INVALID_NAME":        "name",
	"INVALID_EMAIL":       "email",
	"INVALID_PHONE":       "phone",
	"INVALID_TAX_ID":      "tax_id",
	"DUPLICATE_TAX_ID":    "tax_id",
	"INVALID_POSTAL_CODE": "postal_code",
	"INVALID_STREET":      "street",
	"INVALID_NUMBER":      "number",
	"INVALID_STATE_CODE":  "state",
}

// CustomerImportResult summarizes a CSV import. Valid rows are stored even
// when other rows fail.
type CustomerImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
}

// ImportCSV creates one customer per row of a CSV file. A header row is
// required and must contain a name column.
func (s *CustomerService) ImportCSV(ctx context.Context, data []byte) (*CustomerImportResult, error) {
	file, err := csvimport.Parse(data, csvimport.WithMaxRows(MaxImportRows))
	if err != nil {
		return nil, importFileError(err)
	}
	if !file.HasHeader(importColumns["name"]...) {
		return nil, shared.NewDomainError(ErrInvalidCSV.Code, "The file has no name column")
	}

	result := &CustomerImportResult{TotalRows: len(file.Rows)}
	rowErrors := csvimport.NewErrorList(maxReportedErrors)
	seenTaxIDs := make(map[string]int)

	for _, row := range file.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowErr, err := s.importRow(ctx, row, seenTaxIDs)
		if err != nil {
			return nil, err
		}
		if rowErr != nil {
			rowErrors.Add(*rowErr)
			result.ErrorRows++
			continue
		}
		result.ImportedRows++
	}

	result.Errors = rowErrors.Errors()
	result.IsTruncated = rowErrors.Truncated()

	s.logger.Info("Customers imported",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.ImportedRows),
		zap.Int("errors", result.ErrorRows),
		zap.Bool("transcoded", file.Transcoded))
	return result, nil
}

// importRow stores one row. Validation problems come back as a RowError;
// the error return is reserved for failures that abort the import.
func (s *CustomerService) importRow(ctx context.Context, row csvimport.Row, seenTaxIDs map[string]int) (*csvimport.RowError, error) {
	get := func(field string) string {
		return row.Get(importColumns[field]...)
	}

	if strings.TrimSpace(get("name")) == "" {
		return &csvimport.RowError{
			Row:     row.Line,
			Column:  "name",
			Code:    csvimport.CodeRequiredField,
			Message: "Customer name is required",
		}, nil
	}

	customer, err := partner.NewCustomer(partner.CustomerInput{
		Name:  get("name"),
		Email: get("email"),
		Phone: get("phone"),
		TaxID: get("tax_id"),
		Notes: get("notes"),
		Address: partner.Address{
			PostalCode: get("postal_code"),
			Street:     get("street"),
			Number:     get("number"),
			District:   get("district"),
			City:       get("city"),
			State:      get("state"),
		},
	})
	if err != nil {
		return domainRowError(row.Line, err)
	}

	if customer.HasTaxID() {
		if first, ok := seenTaxIDs[customer.TaxID]; ok {
			return &csvimport.RowError{
				Row:     row.Line,
				Column:  "tax_id",
				Code:    csvimport.CodeDuplicateInFile,
				Message: "Tax id already used on row " + strconv.Itoa(first),
				Value:   customer.TaxID,
			}, nil
		}
		seenTaxIDs[customer.TaxID] = row.Line
	}

	if err := s.ensureTaxIDAvailable(ctx, customer.TaxID, customer.ID); err != nil {
		return domainRowError(row.Line, err)
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return domainRowError(row.Line, err)
	}
	return nil, nil
}

// domainRowError turns a domain validation error into a row error and
// passes any other error through
func domainRowError(line int, err error) (*csvimport.RowError, error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return nil, err
	}
	return &csvimport.RowError{
		Row:     line,
		Column:  columnByCode[de.Code],
		Code:    de.Code,
		Message: de.Message,
	}, nil
}

func importFileError(err error) error {
	var rowErr *csvimport.RowError
	if errors.As(err, &rowErr) {
		return shared.NewDomainError(ErrInvalidCSV.Code, rowErr.Error())
	}
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrNoDataRows),
		errors.Is(err, csvimport.ErrMissingHeader),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrTooManyRows):
		return shared.NewDomainError(ErrInvalidCSV.Code, err.Error())
	default:
		return err
	}
}
