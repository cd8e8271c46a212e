package member

import (
	"strings"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
)

// Address represents a delivery address belonging to a member.
// Pincode drives depot resolution for pricing.
type Address struct {
	shared.BaseEntity
	MemberID uuid.UUID `gorm:"type:uuid;not null;index"`
	Line1    string    `gorm:"type:varchar(300);not null"`
	Line2    string    `gorm:"type:varchar(300)"`
	City     string    `gorm:"type:varchar(100)"`
	Pincode  string    `gorm:"type:varchar(10);not null;index"`
	IsActive bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "member_addresses"
}

// NewAddress creates a new delivery address for a member
func NewAddress(memberID uuid.UUID, line1, city, pincode string) (*Address, error) {
	line1 = strings.TrimSpace(line1)
	pincode = strings.TrimSpace(pincode)
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if line1 == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line cannot be empty")
	}
	if pincode == "" {
		return nil, shared.NewDomainError("INVALID_PINCODE", "Pincode cannot be empty")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		Line1:      line1,
		City:       strings.TrimSpace(city),
		Pincode:    pincode,
		IsActive:   true,
	}, nil
}
