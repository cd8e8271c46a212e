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

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var s subscription.Subscription
	if err := dbFromContext(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByMemberID lists a member's subscriptions
func (r *GormSubscriptionRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	var subscriptions []subscription.Subscription
	query := dbFromContext(ctx, r.db).
		Model(&subscription.Subscription{}).
		Where("member_id = ?", memberID)

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	if err := applyFilter(query, filter).Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// Create persists a new subscription
func (r *GormSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	return dbFromContext(ctx, r.db).Create(s).Error
}

// Save persists changes to an existing subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, s *subscription.Subscription) error {
	return dbFromContext(ctx, r.db).Save(s).Error
}

// UpdateAgency sets the agency on a batch of subscriptions
func (r *GormSubscriptionRepository) UpdateAgency(ctx context.Context, subscriptionIDs []uuid.UUID, agencyID uuid.UUID) (int64, error) {
	if len(subscriptionIDs) == 0 {
		return 0, nil
	}
	result := dbFromContext(ctx, r.db).
		Model(&subscription.Subscription{}).
		Where("id IN ?", subscriptionIDs).
		Updates(map[string]interface{}{
			"agency_id":  agencyID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ subscription.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
