package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"gorm.io/gorm"
)

// GormProductOrderRepository implements ProductOrderRepository using GORM
type GormProductOrderRepository struct {
	db *gorm.DB
}

// NewGormProductOrderRepository creates a new GormProductOrderRepository
func NewGormProductOrderRepository(db *gorm.DB) *GormProductOrderRepository {
	return &GormProductOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormProductOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.ProductOrder, error) {
	var o subscription.ProductOrder
	if err := dbFromContext(ctx, r.db).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its order number
func (r *GormProductOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*subscription.ProductOrder, error) {
	var o subscription.ProductOrder
	if err := dbFromContext(ctx, r.db).
		Where("order_number = ?", orderNumber).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists a new order. An order-number collision maps to
// ErrAlreadyExists so callers can regenerate and retry.
func (r *GormProductOrderRepository) Create(ctx context.Context, o *subscription.ProductOrder) error {
	if err := dbFromContext(ctx, r.db).Create(o).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists changes to an existing order
func (r *GormProductOrderRepository) Save(ctx context.Context, o *subscription.ProductOrder) error {
	return dbFromContext(ctx, r.db).Save(o).Error
}

// GenerateOrderNumber generates the next order number.
// Format: ORD-YYYY-NNNNN (e.g., ORD-2026-00001). The unique index on
// order_number backstops concurrent generation; callers retry on
// ErrAlreadyExists from Create.
func (r *GormProductOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("ORD-%d-", year)

	var lastOrder subscription.ProductOrder
	err := dbFromContext(ctx, r.db).
		Model(&subscription.ProductOrder{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&lastOrder).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastOrder.OrderNumber != "" {
		parts := strings.Split(lastOrder.OrderNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

var _ subscription.ProductOrderRepository = (*GormProductOrderRepository)(nil)
