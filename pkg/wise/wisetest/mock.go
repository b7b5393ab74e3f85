// Package wisetest provides a configurable wise.API for tests.
package wisetest

import (
	"context"
	"sync"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/wise"
)

// MockedAPI is a mock implementation of wise.API for testing.
// Unset functions return empty results.
type MockedAPI struct {
	CreateTransferFunc             func(ctx context.Context, req *wise.CreateTransferRequest) (*wise.Transfer, error)
	ListTransfersFunc              func(ctx context.Context, params wise.ListTransfersParams) ([]wise.Transfer, error)
	GetTransferFunc                func(ctx context.Context, transferID int64) (*wise.Transfer, error)
	CancelTransferFunc             func(ctx context.Context, transferID int64) (*wise.Transfer, error)
	CreateQuoteFunc                func(ctx context.Context, profileID int64, req *wise.CreateQuoteRequest) (*wise.Quote, error)
	UpdateQuoteFunc                func(ctx context.Context, profileID int64, quoteID string, req *wise.UpdateQuoteRequest) (*wise.Quote, error)
	GetQuoteFunc                   func(ctx context.Context, profileID int64, quoteID string) (*wise.Quote, error)
	ListRecipientAccountsFunc      func(ctx context.Context, params wise.ListRecipientAccountsParams) (*wise.PaginatedRecipients, error)
	CreateRecipientAccountFunc     func(ctx context.Context, req *wise.CreateRecipientRequest) (*wise.Recipient, error)
	GetRecipientAccountFunc        func(ctx context.Context, accountID int64) (*wise.Recipient, error)
	DeactivateRecipientAccountFunc func(ctx context.Context, accountID int64) (*wise.Recipient, error)
	ListProfilesFunc               func(ctx context.Context) ([]wise.Profile, error)
	GetProfileFunc                 func(ctx context.Context, profileID int64) (*wise.Profile, error)
	ListBalancesFunc               func(ctx context.Context, profileID int64, types []string) ([]wise.Balance, error)

	mu    sync.Mutex
	calls []string
}

// Ensure MockedAPI implements wise.API at compile time
var _ wise.API = (*MockedAPI)(nil)

// Calls returns the names of the invoked methods in call order.
func (m *MockedAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockedAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *MockedAPI) CreateTransfer(ctx context.Context, req *wise.CreateTransferRequest) (*wise.Transfer, error) {
	m.record("CreateTransfer")
	if m.CreateTransferFunc != nil {
		return m.CreateTransferFunc(ctx, req)
	}
	return &wise.Transfer{}, nil
}

func (m *MockedAPI) ListTransfers(ctx context.Context, params wise.ListTransfersParams) ([]wise.Transfer, error) {
	m.record("ListTransfers")
	if m.ListTransfersFunc != nil {
		return m.ListTransfersFunc(ctx, params)
	}
	return []wise.Transfer{}, nil
}

func (m *MockedAPI) GetTransfer(ctx context.Context, transferID int64) (*wise.Transfer, error) {
	m.record("GetTransfer")
	if m.GetTransferFunc != nil {
		return m.GetTransferFunc(ctx, transferID)
	}
	return &wise.Transfer{ID: transferID}, nil
}

func (m *MockedAPI) CancelTransfer(ctx context.Context, transferID int64) (*wise.Transfer, error) {
	m.record("CancelTransfer")
	if m.CancelTransferFunc != nil {
		return m.CancelTransferFunc(ctx, transferID)
	}
	return &wise.Transfer{ID: transferID, Status: "cancelled"}, nil
}

func (m *MockedAPI) CreateQuote(ctx context.Context, profileID int64, req *wise.CreateQuoteRequest) (*wise.Quote, error) {
	m.record("CreateQuote")
	if m.CreateQuoteFunc != nil {
		return m.CreateQuoteFunc(ctx, profileID, req)
	}
	return &wise.Quote{Profile: profileID}, nil
}

func (m *MockedAPI) UpdateQuote(ctx context.Context, profileID int64, quoteID string, req *wise.UpdateQuoteRequest) (*wise.Quote, error) {
	m.record("UpdateQuote")
	if m.UpdateQuoteFunc != nil {
		return m.UpdateQuoteFunc(ctx, profileID, quoteID, req)
	}
	return &wise.Quote{ID: quoteID, Profile: profileID}, nil
}

func (m *MockedAPI) GetQuote(ctx context.Context, profileID int64, quoteID string) (*wise.Quote, error) {
	m.record("GetQuote")
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, profileID, quoteID)
	}
	return &wise.Quote{ID: quoteID, Profile: profileID}, nil
}

func (m *MockedAPI) ListRecipientAccounts(ctx context.Context, params wise.ListRecipientAccountsParams) (*wise.PaginatedRecipients, error) {
	m.record("ListRecipientAccounts")
	if m.ListRecipientAccountsFunc != nil {
		return m.ListRecipientAccountsFunc(ctx, params)
	}
	return &wise.PaginatedRecipients{Content: []wise.Recipient{}}, nil
}

func (m *MockedAPI) CreateRecipientAccount(ctx context.Context, req *wise.CreateRecipientRequest) (*wise.Recipient, error) {
	m.record("CreateRecipientAccount")
	if m.CreateRecipientAccountFunc != nil {
		return m.CreateRecipientAccountFunc(ctx, req)
	}
	return &wise.Recipient{}, nil
}

func (m *MockedAPI) GetRecipientAccount(ctx context.Context, accountID int64) (*wise.Recipient, error) {
	m.record("GetRecipientAccount")
	if m.GetRecipientAccountFunc != nil {
		return m.GetRecipientAccountFunc(ctx, accountID)
	}
	return &wise.Recipient{ID: accountID}, nil
}

func (m *MockedAPI) DeactivateRecipientAccount(ctx context.Context, accountID int64) (*wise.Recipient, error) {
	m.record("DeactivateRecipientAccount")
	if m.DeactivateRecipientAccountFunc != nil {
		return m.DeactivateRecipientAccountFunc(ctx, accountID)
	}
	return &wise.Recipient{ID: accountID}, nil
}

func (m *MockedAPI) ListProfiles(ctx context.Context) ([]wise.Profile, error) {
	m.record("ListProfiles")
	if m.ListProfilesFunc != nil {
		return m.ListProfilesFunc(ctx)
	}
	return []wise.Profile{}, nil
}

func (m *MockedAPI) GetProfile(ctx context.Context, profileID int64) (*wise.Profile, error) {
	m.record("GetProfile")
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, profileID)
	}
	return &wise.Profile{ID: profileID}, nil
}

func (m *MockedAPI) ListBalances(ctx context.Context, profileID int64, types []string) ([]wise.Balance, error) {
	m.record("ListBalances")
	if m.ListBalancesFunc != nil {
		return m.ListBalancesFunc(ctx, profileID, types)
	}
	return []wise.Balance{}, nil
}
