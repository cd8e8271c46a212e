package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

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

// MockAddressRepository is a mock implementation of member.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]member.Address, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]member.Address), args.Error(1)
}

func (m *MockAddressRepository) Create(ctx context.Context, a *member.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *member.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
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

// MockProductOrderRepository is a mock implementation of
// subscription.ProductOrderRepository
type MockProductOrderRepository struct {
	mock.Mock
}

func (m *MockProductOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.ProductOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.ProductOrder), args.Error(1)
}

func (m *MockProductOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*subscription.ProductOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.ProductOrder), args.Error(1)
}

func (m *MockProductOrderRepository) Create(ctx context.Context, o *subscription.ProductOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockProductOrderRepository) Save(ctx context.Context, o *subscription.ProductOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockProductOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.Get(0).(string), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of
// subscription.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, memberID, filter)
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, s *subscription.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) UpdateAgency(ctx context.Context, subscriptionIDs []uuid.UUID, agencyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionIDs, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDeliveryEntryRepository is a mock implementation of
// subscription.DeliveryEntryRepository
type MockDeliveryEntryRepository struct {
	mock.Mock
}

func (m *MockDeliveryEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.DeliveryScheduleEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.DeliveryScheduleEntry), args.Error(1)
}

func (m *MockDeliveryEntryRepository) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]subscription.DeliveryScheduleEntry, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).([]subscription.DeliveryScheduleEntry), args.Error(1)
}

func (m *MockDeliveryEntryRepository) List(ctx context.Context, filter subscription.DeliveryEntryFilter) ([]subscription.DeliveryScheduleEntry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]subscription.DeliveryScheduleEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockDeliveryEntryRepository) BulkCreate(ctx context.Context, entries []*subscription.DeliveryScheduleEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockDeliveryEntryRepository) Save(ctx context.Context, e *subscription.DeliveryScheduleEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockDeliveryEntryRepository) CancelPendingFrom(ctx context.Context, subscriptionID uuid.UUID, from time.Time) (int64, error) {
	args := m.Called(ctx, subscriptionID, from)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryEntryRepository) ReassignPending(ctx context.Context, subscriptionID uuid.UUID, agencyID uuid.UUID, agentID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionID, agencyID, agentID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAreaDepotMappingRepository is a mock implementation of
// catalog.AreaDepotMappingRepository
type MockAreaDepotMappingRepository struct {
	mock.Mock
}

func (m *MockAreaDepotMappingRepository) FindByPincode(ctx context.Context, pincode string) (*catalog.AreaDepotMapping, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.AreaDepotMapping), args.Error(1)
}

func (m *MockAreaDepotMappingRepository) Create(ctx context.Context, mapping *catalog.AreaDepotMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// MockDepotVariantRepository is a mock implementation of
// catalog.DepotVariantRepository
type MockDepotVariantRepository struct {
	mock.Mock
}

func (m *MockDepotVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DepotProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DepotProductVariant), args.Error(1)
}

func (m *MockDepotVariantRepository) FindByDepotAndProduct(ctx context.Context, depotID, productID uuid.UUID) (*catalog.DepotProductVariant, error) {
	args := m.Called(ctx, depotID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DepotProductVariant), args.Error(1)
}

func (m *MockDepotVariantRepository) Create(ctx context.Context, v *catalog.DepotProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockDepotVariantRepository) Save(ctx context.Context, v *catalog.DepotProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// passthroughTxManager runs the transactional function directly on the
// caller's context, standing in for a real database transaction in tests.
// It counts savepoint scopes so tests can assert how many create attempts
// were isolated.
type passthroughTxManager struct {
	savepoints int
}

func (m *passthroughTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *passthroughTxManager) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	m.savepoints++
	return fn(ctx)
}
