package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDepotVariantRepository implements DepotVariantRepository using GORM
type GormDepotVariantRepository struct {
	db *gorm.DB
}

// NewGormDepotVariantRepository creates a new GormDepotVariantRepository
func NewGormDepotVariantRepository(db *gorm.DB) *GormDepotVariantRepository {
	return &GormDepotVariantRepository{db: db}
}

// FindByID finds a depot product variant by its ID
func (r *GormDepotVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DepotProductVariant, error) {
	var variant catalog.DepotProductVariant
	if err := dbFromContext(ctx, r.db).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByDepotAndProduct finds the variant pricing a product at a depot
func (r *GormDepotVariantRepository) FindByDepotAndProduct(ctx context.Context, depotID, productID uuid.UUID) (*catalog.DepotProductVariant, error) {
	var variant catalog.DepotProductVariant
	if err := dbFromContext(ctx, r.db).
		Where("depot_id = ? AND product_id = ?", depotID, productID).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// Create persists a new depot product variant
func (r *GormDepotVariantRepository) Create(ctx context.Context, v *catalog.DepotProductVariant) error {
	if err := dbFromContext(ctx, r.db).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists changes to an existing depot product variant
func (r *GormDepotVariantRepository) Save(ctx context.Context, v *catalog.DepotProductVariant) error {
	return dbFromContext(ctx, r.db).Save(v).Error
}

var _ catalog.DepotVariantRepository = (*GormDepotVariantRepository)(nil)
