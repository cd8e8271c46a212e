package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Address, error) {
	var a member.Address
	if err := dbFromContext(ctx, r.db).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByMemberID lists a member's delivery addresses
func (r *GormAddressRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]member.Address, error) {
	var addresses []member.Address
	if err := dbFromContext(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// Create persists a new address
func (r *GormAddressRepository) Create(ctx context.Context, a *member.Address) error {
	return dbFromContext(ctx, r.db).Create(a).Error
}

// Save persists changes to an existing address
func (r *GormAddressRepository) Save(ctx context.Context, a *member.Address) error {
	return dbFromContext(ctx, r.db).Save(a).Error
}

var _ member.AddressRepository = (*GormAddressRepository)(nil)
