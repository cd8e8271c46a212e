package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"gorm.io/gorm"
)

// bulkInsertBatchSize bounds the per-statement row count for calendar inserts
const bulkInsertBatchSize = 100

// GormDeliveryEntryRepository implements DeliveryEntryRepository using GORM
type GormDeliveryEntryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryEntryRepository creates a new GormDeliveryEntryRepository
func NewGormDeliveryEntryRepository(db *gorm.DB) *GormDeliveryEntryRepository {
	return &GormDeliveryEntryRepository{db: db}
}

// FindByID finds a delivery schedule entry by its ID
func (r *GormDeliveryEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.DeliveryScheduleEntry, error) {
	var e subscription.DeliveryScheduleEntry
	if err := dbFromContext(ctx, r.db).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindBySubscriptionID lists a subscription's entries in delivery order
func (r *GormDeliveryEntryRepository) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]subscription.DeliveryScheduleEntry, error) {
	var entries []subscription.DeliveryScheduleEntry
	if err := dbFromContext(ctx, r.db).
		Where("subscription_id = ?", subscriptionID).
		Order("delivery_date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// List lists delivery entries for fulfillment queries
func (r *GormDeliveryEntryRepository) List(ctx context.Context, filter subscription.DeliveryEntryFilter) ([]subscription.DeliveryScheduleEntry, int64, error) {
	var entries []subscription.DeliveryScheduleEntry
	var total int64

	countQuery := r.applyFilter(dbFromContext(ctx, r.db).Model(&subscription.DeliveryScheduleEntry{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&subscription.DeliveryScheduleEntry{}), filter).
		Order("delivery_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *GormDeliveryEntryRepository) applyFilter(query *gorm.DB, filter subscription.DeliveryEntryFilter) *gorm.DB {
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("delivery_date >= ?", subscription.DateOnly(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		query = query.Where("delivery_date <= ?", subscription.DateOnly(*filter.DateTo))
	}
	return query
}

// BulkCreate inserts the generated calendar in batches
func (r *GormDeliveryEntryRepository) BulkCreate(ctx context.Context, entries []*subscription.DeliveryScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return dbFromContext(ctx, r.db).CreateInBatches(entries, bulkInsertBatchSize).Error
}

// Save persists changes to an existing delivery entry
func (r *GormDeliveryEntryRepository) Save(ctx context.Context, e *subscription.DeliveryScheduleEntry) error {
	return dbFromContext(ctx, r.db).Save(e).Error
}

// CancelPendingFrom transitions a subscription's PENDING entries dated on or
// after the given day to CANCELLED. Past and already-resolved entries keep
// their disposition so the delivery history stays intact.
func (r *GormDeliveryEntryRepository) CancelPendingFrom(ctx context.Context, subscriptionID uuid.UUID, from time.Time) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Model(&subscription.DeliveryScheduleEntry{}).
		Where("subscription_id = ? AND status = ? AND delivery_date >= ?",
			subscriptionID, subscription.DeliveryStatusPending, subscription.DateOnly(from)).
		Updates(map[string]interface{}{
			"status":     subscription.DeliveryStatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReassignPending cascades an agency/agent assignment to a subscription's
// entries that are still open for routing
func (r *GormDeliveryEntryRepository) ReassignPending(ctx context.Context, subscriptionID uuid.UUID, agencyID uuid.UUID, agentID *uuid.UUID) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Model(&subscription.DeliveryScheduleEntry{}).
		Where("subscription_id = ? AND status IN ?",
			subscriptionID,
			[]subscription.DeliveryStatus{subscription.DeliveryStatusPending, subscription.DeliveryStatusNotDelivered}).
		Updates(map[string]interface{}{
			"agency_id":  agencyID,
			"agent_id":   agentID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ subscription.DeliveryEntryRepository = (*GormDeliveryEntryRepository)(nil)
