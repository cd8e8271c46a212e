package member

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
)

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	// FindByID finds a member by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	// FindByIDForUpdate finds a member by ID holding a row lock for the
	// duration of the enclosing transaction. Wallet settlements must use
	// this to serialize concurrent balance mutations.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Member, error)

	// Create persists a new member
	Create(ctx context.Context, m *Member) error

	// Save persists changes to an existing member
	Save(ctx context.Context, m *Member) error

	// FindAll lists members with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Member, error)
}

// AddressRepository defines the interface for delivery address persistence
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]Address, error)
	Create(ctx context.Context, a *Address) error
	Save(ctx context.Context, a *Address) error
}

// WalletTransactionFilter contains filter options for listing wallet transactions
type WalletTransactionFilter struct {
	MemberID        *uuid.UUID
	TransactionType *WalletTransactionType
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	PageSize        int
}

// WalletTransactionRepository defines the interface for wallet ledger persistence
type WalletTransactionRepository interface {
	// Create appends a new ledger entry
	Create(ctx context.Context, tx *WalletTransaction) error

	// FindByID finds a ledger entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*WalletTransaction, error)

	// FindByReference finds a ledger entry by its unique reference number
	FindByReference(ctx context.Context, reference string) (*WalletTransaction, error)

	// FindByMemberID lists ledger entries for a member
	FindByMemberID(ctx context.Context, memberID uuid.UUID, filter WalletTransactionFilter) ([]*WalletTransaction, int64, error)
}
