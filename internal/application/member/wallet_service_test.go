package member

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockMemberRepository is a mock implementation of member.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepository) Save(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]member.Member, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]member.Member), args.Error(1)
}

// MockWalletTransactionRepository is a mock implementation of
// member.WalletTransactionRepository
type MockWalletTransactionRepository struct {
	mock.Mock
}

func (m *MockWalletTransactionRepository) Create(ctx context.Context, tx *member.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.WalletTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.WalletTransaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) FindByReference(ctx context.Context, reference string) (*member.WalletTransaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.WalletTransaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, filter member.WalletTransactionFilter) ([]*member.WalletTransaction, int64, error) {
	args := m.Called(ctx, memberID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*member.WalletTransaction), args.Get(1).(int64), args.Error(2)
}

// passthroughTxManager runs the transactional function directly on the
// caller's context.
type passthroughTxManager struct{}

func (passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newTestMember(id uuid.UUID, balance decimal.Decimal) *member.Member {
	m, _ := member.NewMember("Ravi Kulkarni", "9800000002")
	m.ID = id
	m.WalletBalance = balance
	return m
}

func newWalletService() (*WalletService, *MockMemberRepository, *MockWalletTransactionRepository) {
	members := new(MockMemberRepository)
	walletTxs := new(MockWalletTransactionRepository)
	return NewWalletService(members, walletTxs, passthroughTxManager{}), members, walletTxs
}

func creditRequest(memberID uuid.UUID) CreditRequest {
	return CreditRequest{
		MemberID:      memberID,
		AdminID:       uuid.New(),
		Amount:        decimal.NewFromInt(500),
		Reference:     "TOPUP-2026-0001",
		PaymentMethod: "UPI",
		Notes:         "monthly top-up",
	}
}

// =============================================================================
// Credit / Debit
// =============================================================================

func TestWalletService_Credit_Success(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	m := newTestMember(memberID, decimal.NewFromInt(100))
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(nil, shared.ErrNotFound)
	members.On("FindByIDForUpdate", ctx, memberID).Return(m, nil)
	members.On("Save", ctx, m).Return(nil)
	walletTxs.On("Create", ctx, mock.AnythingOfType("*member.WalletTransaction")).Return(nil)

	req := creditRequest(memberID)
	walletTx, err := service.Credit(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, member.WalletTransactionTypeCredit, walletTx.TransactionType)
	assert.Equal(t, "100", walletTx.BalanceBefore.String())
	assert.Equal(t, "600", walletTx.BalanceAfter.String())
	assert.Equal(t, "UPI", walletTx.PaymentMethod)
	assert.Equal(t, "monthly top-up", walletTx.Notes)
	require.NotNil(t, walletTx.ProcessedBy)
	assert.Equal(t, req.AdminID, *walletTx.ProcessedBy)
	assert.Equal(t, "600", m.WalletBalance.String())

	members.AssertExpectations(t)
	walletTxs.AssertExpectations(t)
}

func TestWalletService_Credit_DuplicateReferenceReturnsExisting(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	existing, _ := member.NewWalletCredit(memberID, decimal.NewFromInt(500), decimal.NewFromInt(100), "TOPUP-2026-0001")
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(existing, nil)

	walletTx, err := service.Credit(ctx, creditRequest(memberID))

	require.NoError(t, err)
	assert.Same(t, existing, walletTx)
	members.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	walletTxs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWalletService_Credit_ConcurrentReplayReturnsExisting(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	// The pre-check misses the winner, the insert hits the unique index.
	m := newTestMember(memberID, decimal.NewFromInt(100))
	existing, _ := member.NewWalletCredit(memberID, decimal.NewFromInt(500), decimal.NewFromInt(100), "TOPUP-2026-0001")
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(nil, shared.ErrNotFound).Once()
	members.On("FindByIDForUpdate", ctx, memberID).Return(m, nil)
	members.On("Save", ctx, m).Return(nil)
	walletTxs.On("Create", ctx, mock.AnythingOfType("*member.WalletTransaction")).Return(shared.ErrAlreadyExists)
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(existing, nil).Once()

	walletTx, err := service.Credit(ctx, creditRequest(memberID))

	require.NoError(t, err)
	assert.Same(t, existing, walletTx)
	walletTxs.AssertExpectations(t)
}

func TestWalletService_Debit_Success(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	m := newTestMember(memberID, decimal.NewFromInt(800))
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(nil, shared.ErrNotFound)
	members.On("FindByIDForUpdate", ctx, memberID).Return(m, nil)
	members.On("Save", ctx, m).Return(nil)
	walletTxs.On("Create", ctx, mock.AnythingOfType("*member.WalletTransaction")).Return(nil)

	walletTx, err := service.Debit(ctx, creditRequest(memberID))

	require.NoError(t, err)
	assert.Equal(t, member.WalletTransactionTypeDebit, walletTx.TransactionType)
	assert.Equal(t, "300", walletTx.BalanceAfter.String())
	assert.Equal(t, "300", m.WalletBalance.String())
}

func TestWalletService_Debit_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	m := newTestMember(memberID, decimal.NewFromInt(100))
	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(nil, shared.ErrNotFound)
	members.On("FindByIDForUpdate", ctx, memberID).Return(m, nil)

	_, err := service.Debit(ctx, creditRequest(memberID))

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
	assert.Equal(t, "100", m.WalletBalance.String())
	walletTxs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWalletService_Credit_MemberNotFound(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	service, members, walletTxs := newWalletService()

	walletTxs.On("FindByReference", ctx, "TOPUP-2026-0001").Return(nil, shared.ErrNotFound)
	members.On("FindByIDForUpdate", ctx, memberID).Return(nil, shared.ErrNotFound)

	_, err := service.Credit(ctx, creditRequest(memberID))

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MEMBER_NOT_FOUND", domainErr.Code)
}

func TestWalletService_Validation(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newWalletService()

	tests := []struct {
		name     string
		mutate   func(*CreditRequest)
		wantCode string
	}{
		{"missing member", func(r *CreditRequest) { r.MemberID = uuid.Nil }, "INVALID_MEMBER"},
		{"missing admin", func(r *CreditRequest) { r.AdminID = uuid.Nil }, "INVALID_ADMIN"},
		{"zero amount", func(r *CreditRequest) { r.Amount = decimal.Zero }, "INVALID_AMOUNT"},
		{"negative amount", func(r *CreditRequest) { r.Amount = decimal.NewFromInt(-10) }, "INVALID_AMOUNT"},
		{"missing reference", func(r *CreditRequest) { r.Reference = "" }, "INVALID_REFERENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := creditRequest(uuid.New())
			tt.mutate(&req)

			_, err := service.Credit(ctx, req)

			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}
