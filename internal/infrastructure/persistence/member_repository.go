package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by its ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	var m member.Member
	if err := dbFromContext(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByIDForUpdate finds a member holding a row lock for the duration of the
// enclosing transaction. Outside a transaction the lock is released
// immediately, which defeats the point, so callers go through
// TransactionManager.
func (r *GormMemberRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	var m member.Member
	if err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create persists a new member
func (r *GormMemberRepository) Create(ctx context.Context, m *member.Member) error {
	if err := dbFromContext(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save persists changes to an existing member
func (r *GormMemberRepository) Save(ctx context.Context, m *member.Member) error {
	return dbFromContext(ctx, r.db).Save(m).Error
}

// FindAll lists members with filtering
func (r *GormMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]member.Member, error) {
	var members []member.Member
	query := dbFromContext(ctx, r.db).Model(&member.Member{})

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "phone":
			query = query.Where("phone = ?", value)
		}
	}

	if err := applyFilter(query, filter).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

var _ member.MemberRepository = (*GormMemberRepository)(nil)
