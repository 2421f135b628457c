package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	reportapp "github.com/printdesk/backend/internal/application/report"
	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/domain/partner"
	"github.com/printdesk/backend/internal/domain/printing"
	"github.com/printdesk/backend/internal/domain/report"
	"github.com/printdesk/backend/internal/domain/trade"
	infra "github.com/printdesk/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockQuoteSource struct{ mock.Mock }

func (m *MockQuoteSource) GetDomain(ctx context.Context, quoteID uuid.UUID) (*trade.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Quote), args.Error(1)
}

type MockOrderSource struct{ mock.Mock }

func (m *MockOrderSource) GetDomain(ctx context.Context, orderID uuid.UUID) (*trade.Order, decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*trade.Order), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockPaymentFinder struct{ mock.Mock }

func (m *MockPaymentFinder) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Payment), args.Error(1)
}

type MockCustomerFinder struct{ mock.Mock }

func (m *MockCustomerFinder) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

type MockCompanySource struct{ mock.Mock }

func (m *MockCompanySource) Profile(ctx context.Context) (*identity.CompanyProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.CompanyProfile), args.Error(1)
}

func (m *MockCompanySource) LogoURL(ctx context.Context, profile *identity.CompanyProfile) string {
	args := m.Called(ctx, profile)
	return args.String(0)
}

type MockRevenueSource struct{ mock.Mock }

func (m *MockRevenueSource) RevenueReport(ctx context.Context, filter reportapp.PeriodFilter) (*report.RevenueReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RevenueReport), args.Error(1)
}

type MockPDFRenderer struct{ mock.Mock }

func (m *MockPDFRenderer) Render(ctx context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}

type MockArchiver struct{ mock.Mock }

func (m *MockArchiver) Store(ctx context.Context, docType printing.DocType, id string, pdf []byte) (string, error) {
	args := m.Called(ctx, docType, id, pdf)
	return args.String(0), args.Error(1)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) RecordDocumentRendered(ctx context.Context, docType string, duration time.Duration) {
	m.Called(ctx, docType, duration)
}
