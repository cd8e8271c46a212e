package member

import (
	"strings"
	"time"

	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MemberStatus represents the lifecycle status of a member account
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
	MemberStatusBlocked  MemberStatus = "BLOCKED"
)

// IsValid checks if the status is a valid MemberStatus
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusBlocked:
		return true
	}
	return false
}

// String returns the string representation of MemberStatus
func (s MemberStatus) String() string {
	return string(s)
}

// Member represents a subscribing customer in the member context.
// It is the aggregate root for wallet operations: WalletBalance is mutated
// only through CreditWallet/DebitWallet so it can never go negative.
type Member struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Phone         string          `gorm:"type:varchar(50);uniqueIndex"`
	Email         string          `gorm:"type:varchar(200);index"`
	Status        MemberStatus    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Prepaid balance
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "members"
}

// NewMember creates a new member with required fields
func NewMember(name, phone string) (*Member, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Member name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Member phone cannot be empty")
	}

	return &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Status:            MemberStatusActive,
		WalletBalance:     decimal.Zero,
	}, nil
}

// IsActive returns true if the member can place subscriptions
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// CreditWallet adds to the member's prepaid wallet balance
func (m *Member) CreditWallet(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be zero")
	}

	m.WalletBalance = m.WalletBalance.Add(amount)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// DebitWallet deducts from the member's prepaid wallet balance
func (m *Member) DebitWallet(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be zero")
	}
	if m.WalletBalance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}

	m.WalletBalance = m.WalletBalance.Sub(amount)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}
