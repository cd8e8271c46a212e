package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Subscription represents a member's recurring delivery of one product over a
// period. It is created atomically with its order and delivery schedule
// entries and is never hard-deleted: cancellation is a status transition.
type Subscription struct {
	shared.BaseAggregateRoot
	OrderID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	MemberID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	AddressID         *uuid.UUID         `gorm:"type:uuid"` // Nil for pickup
	DepotVariantID    *uuid.UUID         `gorm:"type:uuid"` // Nil when pricing was unresolved
	AgencyID          *uuid.UUID         `gorm:"type:uuid;index"`
	StartDate         time.Time          `gorm:"type:date;not null"`
	PeriodDays        int                `gorm:"not null"`
	ExpiryDate        time.Time          `gorm:"type:date;not null"`
	Recurrence        RecurrenceType     `gorm:"type:varchar(20);not null"`
	Weekdays          WeekdaySet         `gorm:"type:text"`
	Quantity          decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	AlternateQuantity decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	UnitRate          decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalQuantity     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	TotalAmount       decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	WalletAmount      decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	PayableAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAmount    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus     PaymentStatus      `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Status            SubscriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Instructions      string             `gorm:"type:text"` // Free-text delivery instructions
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a subscription from validated schedule parameters
// and the generated calendar's totals. The unit rate and settlement amounts
// are applied afterwards by the coordinator.
func NewSubscription(orderID, productID, memberID uuid.UUID, params ScheduleParams, totalQty decimal.Decimal) (*Subscription, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}
	if totalQty.IsNegative() || totalQty.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Total quantity must be positive")
	}

	altQty := p0(params.AlternateQuantity)

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ProductID:         productID,
		MemberID:          memberID,
		StartDate:         DateOnly(params.StartDate),
		PeriodDays:        params.PeriodDays,
		ExpiryDate:        params.ExpiryDate(),
		Recurrence:        params.Recurrence,
		Weekdays:          params.Weekdays,
		Quantity:          params.Quantity,
		AlternateQuantity: altQty,
		TotalQuantity:     totalQty,
		TotalAmount:       decimal.Zero,
		PaymentStatus:     PaymentStatusPending,
		Status:            SubscriptionStatusActive,
	}, nil
}

func p0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SetDeliveryAddress attaches the delivery address
func (s *Subscription) SetDeliveryAddress(addressID uuid.UUID) {
	s.AddressID = &addressID
}

// SetAgency routes the subscription's deliveries through an agency
func (s *Subscription) SetAgency(agencyID uuid.UUID) {
	s.AgencyID = &agencyID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetInstructions records free-text delivery instructions
func (s *Subscription) SetInstructions(text string) {
	s.Instructions = text
}

// ApplyPricing attaches the resolved unit rate and, when available, the depot
// variant. A zero rate with no variant is the provisional pickup/manual path.
func (s *Subscription) ApplyPricing(unitRate decimal.Decimal, variantID *uuid.UUID) error {
	if unitRate.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit rate cannot be negative")
	}
	s.UnitRate = unitRate
	s.DepotVariantID = variantID
	s.TotalAmount = unitRate.Mul(s.TotalQuantity)
	return nil
}

// ApplySettlement records how the total amount was funded
func (s *Subscription) ApplySettlement(settlement Settlement) {
	s.WalletAmount = settlement.WalletAmount
	s.PayableAmount = settlement.PayableAmount
	s.ReceivedAmount = settlement.WalletAmount
	s.PaymentStatus = settlement.PaymentStatus
}

// IsCancelled reports whether the subscription has been cancelled
func (s *Subscription) IsCancelled() bool {
	return s.Status == SubscriptionStatusCancelled
}

// Cancel transitions the subscription to CANCELLED. A settled (PAID)
// subscription cannot be cancelled through this path.
func (s *Subscription) Cancel() error {
	if s.IsCancelled() {
		return shared.NewDomainError("INVALID_STATE", "Subscription is already cancelled")
	}
	if !s.PaymentStatus.AllowsCancellation() {
		return shared.NewDomainError("INVALID_STATE", "A settled subscription cannot be cancelled")
	}
	s.Status = SubscriptionStatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
