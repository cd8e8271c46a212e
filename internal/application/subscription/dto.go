package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"github.com/milkroute/backend/internal/infrastructure/invoice"
	"github.com/shopspring/decimal"
)

// startDateLayout is the calendar-date format accepted from the request layer
const startDateLayout = "2006-01-02"

// CreateSubscriptionRequest is the validated payload for creating a
// subscription. The request layer has already authenticated the member;
// AltQty of zero means not supplied.
type CreateSubscriptionRequest struct {
	MemberID         uuid.UUID
	ProductID        uuid.UUID
	AddressID        *uuid.UUID // Nil for pickup
	Period           int        // Days; 0 means buy once
	DeliverySchedule string     // Recurrence keyword, normalized by ParseRecurrenceType
	Weekdays         []string   // Only for SELECT_DAYS
	Qty              decimal.Decimal
	AltQty           decimal.Decimal
	StartDate        string // YYYY-MM-DD
	Instructions     string
	AgencyID         *uuid.UUID
}

// parse validates the request and expands it into schedule parameters
func (r CreateSubscriptionRequest) parse() (subscription.ScheduleParams, error) {
	if r.MemberID == uuid.Nil {
		return subscription.ScheduleParams{}, shared.NewDomainError("INVALID_MEMBER", "Member ID is required")
	}
	if r.ProductID == uuid.Nil {
		return subscription.ScheduleParams{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if r.Period < 0 {
		return subscription.ScheduleParams{}, shared.NewDomainError("INVALID_PERIOD", "Period cannot be negative")
	}
	if r.Qty.IsNegative() || r.Qty.IsZero() {
		return subscription.ScheduleParams{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	recurrence, err := subscription.ParseRecurrenceType(r.DeliverySchedule)
	if err != nil {
		return subscription.ScheduleParams{}, err
	}

	startDate, err := time.Parse(startDateLayout, r.StartDate)
	if err != nil {
		return subscription.ScheduleParams{}, shared.NewDomainError("INVALID_DATE", "Start date must be a valid YYYY-MM-DD date")
	}

	return subscription.ScheduleParams{
		StartDate:         startDate,
		PeriodDays:        r.Period,
		Recurrence:        recurrence,
		Quantity:          r.Qty,
		AlternateQuantity: r.AltQty,
		Weekdays:          subscription.WeekdaySet(r.Weekdays),
	}, nil
}

// CreateSubscriptionResult is the outcome of a successful creation
type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Order        *subscription.ProductOrder `json:"order"`
	Invoice      *invoice.Invoice           `json:"invoice,omitempty"`
}

// SkipDeliveryResult reports a member skip and any refund issued
type SkipDeliveryResult struct {
	Entry        *subscription.DeliveryScheduleEntry `json:"entry"`
	RefundAmount decimal.Decimal                     `json:"refund_amount"`
	RefundTxID   *uuid.UUID                          `json:"refund_transaction_id,omitempty"`
}

// OverrideEntryStatusRequest is the admin path for forcing an entry status
type OverrideEntryStatusRequest struct {
	AdminID  uuid.UUID
	EntryID  uuid.UUID
	Status   subscription.DeliveryStatus
	AgencyID *uuid.UUID
	AgentID  *uuid.UUID
	Notes    string
}

// ReassignAgencyResult reports the scope of a bulk reassignment
type ReassignAgencyResult struct {
	SubscriptionsUpdated int64 `json:"subscriptions_updated"`
	EntriesUpdated       int64 `json:"entries_updated"`
}

// CancelSubscriptionResult reports the scope of a cancellation
type CancelSubscriptionResult struct {
	EntriesCancelled int64 `json:"entries_cancelled"`
}
