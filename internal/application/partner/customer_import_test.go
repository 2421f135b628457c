package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/shared"
	"github.com/printdesk/backend/internal/infrastructure/csvimport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_ImportCSV(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo, nil)
	ctx := context.Background()

	csv := "nome;e-mail;cpf_cnpj;cidade;uf\n" +
		"Padaria Central;contato@padaria.com;12.345.678/0001-90;Curitiba;PR\n" +
		";sem-nome@example.com;;;\n" +
		"Mercado Bom;not-an-email;;;\n" +
		"Padaria Filial;;12.345.678/0001-90;;\n" +
		"Oficina Silva;;987.654.321-00;Londrina;PR\n" +
		"Loja Antiga;;111.222.333-44;;\n"

	mockRepo.On("ExistsByTaxID", ctx, "12.345.678/0001-90", mock.Anything).Return(false, nil).Once()
	mockRepo.On("ExistsByTaxID", ctx, "987.654.321-00", mock.Anything).Return(false, nil).Once()
	mockRepo.On("ExistsByTaxID", ctx, "111.222.333-44", mock.Anything).Return(true, nil).Once()
	mockRepo.On("Save", ctx, mock.MatchedBy(func(c *partner.Customer) bool {
		return c.Name == "Padaria Central" && c.Address.City == "Curitiba" && c.Email == "contato@padaria.com"
	})).Return(nil).Once()
	mockRepo.On("Save", ctx, mock.MatchedBy(func(c *partner.Customer) bool {
		return c.Name == "Oficina Silva"
	})).Return(nil).Once()

	result, err := service.ImportCSV(ctx, []byte(csv))
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalRows)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 4, result.ErrorRows)
	assert.False(t, result.IsTruncated)
	require.Len(t, result.Errors, 4)

	assert.Equal(t, csvimport.RowError{Row: 3, Column: "name", Code: csvimport.CodeRequiredField, Message: "Customer name is required"}, result.Errors[0])
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "INVALID_EMAIL", result.Errors[1].Code)
	assert.Equal(t, "email", result.Errors[1].Column)
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, csvimport.CodeDuplicateInFile, result.Errors[2].Code)
	assert.Contains(t, result.Errors[2].Message, "row 2")
	assert.Equal(t, 7, result.Errors[3].Row)
	assert.Equal(t, "DUPLICATE_TAX_ID", result.Errors[3].Code)
	assert.Equal(t, "tax_id", result.Errors[3].Column)

	mockRepo.AssertExpectations(t)
}

func TestCustomerService_ImportCSV_FileErrors(t *testing.T) {
	service := NewCustomerService(new(MockCustomerRepository), nil)

	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "name,email\n"},
		{"no name column", "email,phone\na@b.com,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ImportCSV(context.Background(), []byte(tt.data))
			require.Error(t, err)
			assert.Equal(t, ErrInvalidCSV.Code, shared.CodeOf(err))
		})
	}
}

func TestCustomerService_ImportCSV_AbortsOnRepositoryFailure(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := NewCustomerService(mockRepo, nil)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	mockRepo.On("Save", ctx, mock.Anything).Return(dbErr).Once()

	_, err := service.ImportCSV(ctx, []byte("name\nAna\nBia\n"))
	assert.ErrorIs(t, err, dbErr)
	mockRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCustomerService_ImportCSV_TruncatesErrors(t *testing.T) {
	service := NewCustomerService(new(MockCustomerRepository), nil)

	data := []byte("name,email\n")
	for range maxReportedErrors + 5 {
		data = append(data, []byte("Cliente,invalid\n")...)
	}

	result, err := service.ImportCSV(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, maxReportedErrors+5, result.ErrorRows)
	assert.Len(t, result.Errors, maxReportedErrors)
	assert.True(t, result.IsTruncated)
	assert.Zero(t, result.ImportedRows)
}
