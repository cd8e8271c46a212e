package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeliveryScheduleEntry is one concrete, dated, quantified delivery
// obligation derived from a subscription. Entries are created in bulk at
// subscription-creation time and individually mutated by fulfillment and by
// skip/cancel operations.
type DeliveryScheduleEntry struct {
	shared.BaseEntity
	SubscriptionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MemberID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddressID           *uuid.UUID      `gorm:"type:uuid"`
	DeliveryDate        time.Time       `gorm:"type:date;not null;index"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status              DeliveryStatus  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	AgencyID            *uuid.UUID      `gorm:"type:uuid;index"`
	AgentID             *uuid.UUID      `gorm:"type:uuid"`
	WalletTransactionID *uuid.UUID      `gorm:"type:uuid"` // Set when a refund was issued for this entry
	AdminNotes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DeliveryScheduleEntry) TableName() string {
	return "delivery_schedule_entries"
}

// NewDeliveryScheduleEntry creates a pending entry for one scheduled day
func NewDeliveryScheduleEntry(sub *Subscription, delivery ScheduledDelivery) (*DeliveryScheduleEntry, error) {
	if sub == nil {
		return nil, shared.NewDomainError("INVALID_SUBSCRIPTION", "Subscription cannot be nil")
	}
	if delivery.Quantity.IsNegative() || delivery.Quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &DeliveryScheduleEntry{
		BaseEntity:     shared.NewBaseEntity(),
		SubscriptionID: sub.ID,
		MemberID:       sub.MemberID,
		ProductID:      sub.ProductID,
		AddressID:      sub.AddressID,
		AgencyID:       sub.AgencyID,
		DeliveryDate:   DateOnly(delivery.Date),
		Quantity:       delivery.Quantity,
		Status:         DeliveryStatusPending,
	}, nil
}

// CanSkip reports whether the entry may be skipped as of the given day.
// Deliveries can only be skipped while PENDING and strictly before the
// delivery day: same-day and past entries cannot be skipped.
func (e *DeliveryScheduleEntry) CanSkip(today time.Time) error {
	if e.Status != DeliveryStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending deliveries can be skipped")
	}
	if !DateOnly(e.DeliveryDate).After(DateOnly(today)) {
		return shared.NewDomainError("INVALID_STATE", "Deliveries can only be skipped if scheduled strictly after today")
	}
	return nil
}

// SetStatus transitions the entry to the target status enforcing the state
// machine: only PENDING entries may move, and never back to PENDING.
func (e *DeliveryScheduleEntry) SetStatus(target DeliveryStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown delivery status")
	}
	if !e.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Delivery entry status is already resolved")
	}
	e.Status = target
	e.UpdatedAt = time.Now()
	return nil
}

// MarkSkippedByCustomer transitions a skippable entry to SKIP_BY_CUSTOMER
func (e *DeliveryScheduleEntry) MarkSkippedByCustomer(today time.Time) error {
	if err := e.CanSkip(today); err != nil {
		return err
	}
	return e.SetStatus(DeliveryStatusSkipByCustomer)
}

// MarkCancelled transitions a pending entry to CANCELLED
func (e *DeliveryScheduleEntry) MarkCancelled() error {
	return e.SetStatus(DeliveryStatusCancelled)
}

// LinkWalletTransaction records the refund ledger entry issued for this entry
func (e *DeliveryScheduleEntry) LinkWalletTransaction(txID uuid.UUID) {
	e.WalletTransactionID = &txID
	e.UpdatedAt = time.Now()
}

// AssignAgent routes the entry to an agency and optionally a specific agent.
// Entries with a fixed disposition are never reassigned.
func (e *DeliveryScheduleEntry) AssignAgent(agencyID uuid.UUID, agentID *uuid.UUID) error {
	if !e.Status.Reassignable() {
		return shared.NewDomainError("INVALID_STATE", "Resolved deliveries cannot be reassigned")
	}
	e.AgencyID = &agencyID
	e.AgentID = agentID
	e.UpdatedAt = time.Now()
	return nil
}

// SetAdminNotes records an administrative note on the entry
func (e *DeliveryScheduleEntry) SetAdminNotes(notes string) {
	e.AdminNotes = notes
	e.UpdatedAt = time.Now()
}
