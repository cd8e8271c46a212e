package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWalletTransactionRepository implements WalletTransactionRepository
// using GORM. Ledger rows are append-only: there is no Save or Delete.
type GormWalletTransactionRepository struct {
	db *gorm.DB
}

// NewGormWalletTransactionRepository creates a new GormWalletTransactionRepository
func NewGormWalletTransactionRepository(db *gorm.DB) *GormWalletTransactionRepository {
	return &GormWalletTransactionRepository{db: db}
}

// Create appends a new ledger entry. A duplicate reference maps to
// ErrAlreadyExists so callers can treat the reference as an idempotency key.
func (r *GormWalletTransactionRepository) Create(ctx context.Context, tx *member.WalletTransaction) error {
	if err := dbFromContext(ctx, r.db).Create(tx).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a ledger entry by ID
func (r *GormWalletTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.WalletTransaction, error) {
	var tx member.WalletTransaction
	if err := dbFromContext(ctx, r.db).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByReference finds a ledger entry by its unique reference number
func (r *GormWalletTransactionRepository) FindByReference(ctx context.Context, reference string) (*member.WalletTransaction, error) {
	var tx member.WalletTransaction
	if err := dbFromContext(ctx, r.db).
		Where("reference = ?", reference).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByMemberID lists ledger entries for a member, most recent first
func (r *GormWalletTransactionRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, filter member.WalletTransactionFilter) ([]*member.WalletTransaction, int64, error) {
	var transactions []*member.WalletTransaction
	var total int64

	countQuery := dbFromContext(ctx, r.db).
		Model(&member.WalletTransaction{}).
		Where("member_id = ?", memberID)
	if err := r.applyFilter(countQuery, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := dbFromContext(ctx, r.db).
		Model(&member.WalletTransaction{}).
		Where("member_id = ?", memberID)
	query = r.applyFilter(query, filter).Order("transaction_date DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *GormWalletTransactionRepository) applyFilter(query *gorm.DB, filter member.WalletTransactionFilter) *gorm.DB {
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.DateFrom != nil {
		query = query.Where("transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("transaction_date <= ?", *filter.DateTo)
	}
	return query
}

var _ member.WalletTransactionRepository = (*GormWalletTransactionRepository)(nil)
