package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
)

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]Subscription, error)
	Create(ctx context.Context, s *Subscription) error
	Save(ctx context.Context, s *Subscription) error

	// UpdateAgency sets the agency on a batch of subscriptions
	UpdateAgency(ctx context.Context, subscriptionIDs []uuid.UUID, agencyID uuid.UUID) (int64, error)
}

// DeliveryEntryFilter contains filter options for fulfillment queries
type DeliveryEntryFilter struct {
	MemberID *uuid.UUID
	Status   *DeliveryStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// DeliveryEntryRepository defines the interface for delivery schedule
// entry persistence
type DeliveryEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryScheduleEntry, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]DeliveryScheduleEntry, error)
	List(ctx context.Context, filter DeliveryEntryFilter) ([]DeliveryScheduleEntry, int64, error)

	// BulkCreate inserts the generated calendar in one batch
	BulkCreate(ctx context.Context, entries []*DeliveryScheduleEntry) error

	Save(ctx context.Context, e *DeliveryScheduleEntry) error

	// CancelPendingFrom transitions a subscription's PENDING entries dated on
	// or after the given day to CANCELLED, returning the number affected.
	// Past and already-resolved entries are untouched.
	CancelPendingFrom(ctx context.Context, subscriptionID uuid.UUID, from time.Time) (int64, error)

	// ReassignPending cascades an agency/agent assignment to a subscription's
	// entries that are still reassignable (PENDING or NOT_DELIVERED).
	ReassignPending(ctx context.Context, subscriptionID uuid.UUID, agencyID uuid.UUID, agentID *uuid.UUID) (int64, error)
}

// ProductOrderRepository defines the interface for product order persistence
type ProductOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*ProductOrder, error)
	Create(ctx context.Context, o *ProductOrder) error
	Save(ctx context.Context, o *ProductOrder) error

	// GenerateOrderNumber produces the next order number (ORD-YYYY-NNNNN)
	GenerateOrderNumber(ctx context.Context) (string, error)
}
