package member

import (
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WalletTransactionType represents the direction of a wallet transaction
type WalletTransactionType string

const (
	// WalletTransactionTypeCredit represents money entering the wallet (top-up, refund)
	WalletTransactionTypeCredit WalletTransactionType = "CREDIT"
	// WalletTransactionTypeDebit represents money leaving the wallet (settlement)
	WalletTransactionTypeDebit WalletTransactionType = "DEBIT"
)

// String returns the string representation of WalletTransactionType
func (t WalletTransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t WalletTransactionType) IsValid() bool {
	switch t {
	case WalletTransactionTypeCredit, WalletTransactionTypeDebit:
		return true
	}
	return false
}

// WalletTransactionStatus represents the settlement status of a wallet transaction
type WalletTransactionStatus string

const (
	WalletTransactionStatusPending WalletTransactionStatus = "PENDING"
	WalletTransactionStatusPaid    WalletTransactionStatus = "PAID"
	WalletTransactionStatusFailed  WalletTransactionStatus = "FAILED"
)

// String returns the string representation of WalletTransactionStatus
func (s WalletTransactionStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s WalletTransactionStatus) IsValid() bool {
	switch s {
	case WalletTransactionStatusPending, WalletTransactionStatusPaid, WalletTransactionStatusFailed:
		return true
	}
	return false
}

// WalletTransaction represents an immutable record of a wallet balance change.
// Once created, transactions cannot be modified - corrections must be made
// with new transactions. Reference is unique per logical event and doubles as
// the idempotency key for refund reconciliation.
type WalletTransaction struct {
	shared.BaseEntity
	MemberID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	TransactionType WalletTransactionType   `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"` // Always positive, direction determined by type
	BalanceBefore   decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	BalanceAfter    decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Status          WalletTransactionStatus `gorm:"type:varchar(10);not null;default:'PAID'"`
	PaymentMethod   string                  `gorm:"type:varchar(50);not null;default:'WALLET'"`
	Reference       string                  `gorm:"type:varchar(100);not null;uniqueIndex"` // e.g. SKIP_DELIVERY_<entryID>
	Notes           string                  `gorm:"type:text"`
	ProcessedBy     *uuid.UUID              `gorm:"type:uuid"` // Admin who processed; nil for member self-service
	TransactionDate time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// NewWalletTransaction creates a new wallet transaction
func NewWalletTransaction(
	memberID uuid.UUID,
	txType WalletTransactionType,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	reference string,
) (*WalletTransaction, error) {
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid wallet transaction type")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if balanceBefore.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Balance before cannot be negative")
	}
	if balanceAfter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Balance after cannot be negative")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference cannot be empty")
	}

	return &WalletTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		MemberID:        memberID,
		TransactionType: txType,
		Amount:          amount,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceAfter,
		Status:          WalletTransactionStatusPaid,
		PaymentMethod:   "WALLET",
		Reference:       reference,
		TransactionDate: time.Now(),
	}, nil
}

// WithNotes sets the notes for the transaction
func (t *WalletTransaction) WithNotes(notes string) *WalletTransaction {
	t.Notes = notes
	return t
}

// WithProcessedBy records the admin who performed the operation
func (t *WalletTransaction) WithProcessedBy(adminID uuid.UUID) *WalletTransaction {
	t.ProcessedBy = &adminID
	return t
}

// WithPaymentMethod sets the payment method for the transaction
func (t *WalletTransaction) WithPaymentMethod(method string) *WalletTransaction {
	t.PaymentMethod = method
	return t
}

// SignedAmount returns the amount with sign based on transaction type.
// Positive for credits, negative for debits.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == WalletTransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewWalletCredit creates a credit transaction against the given balance
func NewWalletCredit(memberID uuid.UUID, amount, balanceBefore decimal.Decimal, reference string) (*WalletTransaction, error) {
	return NewWalletTransaction(
		memberID,
		WalletTransactionTypeCredit,
		amount,
		balanceBefore,
		balanceBefore.Add(amount),
		reference,
	)
}

// NewWalletDebit creates a debit transaction against the given balance
func NewWalletDebit(memberID uuid.UUID, amount, balanceBefore decimal.Decimal, reference string) (*WalletTransaction, error) {
	if balanceBefore.LessThan(amount) {
		return nil, shared.ErrInsufficientBalance
	}
	return NewWalletTransaction(
		memberID,
		WalletTransactionTypeDebit,
		amount,
		balanceBefore,
		balanceBefore.Sub(amount),
		reference,
	)
}
