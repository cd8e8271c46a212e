package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDepotRepository implements DepotRepository using GORM
type GormDepotRepository struct {
	db *gorm.DB
}

// NewGormDepotRepository creates a new GormDepotRepository
func NewGormDepotRepository(db *gorm.DB) *GormDepotRepository {
	return &GormDepotRepository{db: db}
}

// FindByID finds a depot by its ID
func (r *GormDepotRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Depot, error) {
	var depot catalog.Depot
	if err := dbFromContext(ctx, r.db).First(&depot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &depot, nil
}

// Create persists a new depot
func (r *GormDepotRepository) Create(ctx context.Context, d *catalog.Depot) error {
	if err := dbFromContext(ctx, r.db).Create(d).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists changes to an existing depot
func (r *GormDepotRepository) Save(ctx context.Context, d *catalog.Depot) error {
	return dbFromContext(ctx, r.db).Save(d).Error
}

// GormAreaDepotMappingRepository implements AreaDepotMappingRepository using GORM
type GormAreaDepotMappingRepository struct {
	db *gorm.DB
}

// NewGormAreaDepotMappingRepository creates a new GormAreaDepotMappingRepository
func NewGormAreaDepotMappingRepository(db *gorm.DB) *GormAreaDepotMappingRepository {
	return &GormAreaDepotMappingRepository{db: db}
}

// FindByPincode finds the depot mapping serving a pincode
func (r *GormAreaDepotMappingRepository) FindByPincode(ctx context.Context, pincode string) (*catalog.AreaDepotMapping, error) {
	var mapping catalog.AreaDepotMapping
	if err := dbFromContext(ctx, r.db).
		Where("pincode = ?", strings.TrimSpace(pincode)).
		First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// Create persists a new pincode-to-depot mapping
func (r *GormAreaDepotMappingRepository) Create(ctx context.Context, m *catalog.AreaDepotMapping) error {
	if err := dbFromContext(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ catalog.DepotRepository = (*GormDepotRepository)(nil)
var _ catalog.AreaDepotMappingRepository = (*GormAreaDepotMappingRepository)(nil)
