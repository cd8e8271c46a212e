package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletService handles admin-initiated wallet operations. Every balance
// change locks the member row, mutates the balance and appends a ledger entry
// inside one transaction, so the ledger always replays to the stored balance.
type WalletService struct {
	members   member.MemberRepository
	walletTxs member.WalletTransactionRepository
	txManager shared.TransactionManager
}

// NewWalletService creates a new WalletService
func NewWalletService(
	members member.MemberRepository,
	walletTxs member.WalletTransactionRepository,
	txManager shared.TransactionManager,
) *WalletService {
	return &WalletService{
		members:   members,
		walletTxs: walletTxs,
		txManager: txManager,
	}
}

// CreditRequest is the payload for an admin wallet credit or debit
type CreditRequest struct {
	MemberID      uuid.UUID
	AdminID       uuid.UUID
	Amount        decimal.Decimal
	Reference     string // Unique per logical event, doubles as idempotency key
	PaymentMethod string // CASH, UPI, BANK_TRANSFER...; empty means WALLET
	Notes         string
}

func (r CreditRequest) validate() error {
	if r.MemberID == uuid.Nil {
		return shared.NewDomainError("INVALID_MEMBER", "Member ID is required")
	}
	if r.AdminID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADMIN", "Admin ID is required")
	}
	if r.Amount.IsNegative() || r.Amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if r.Reference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference is required")
	}
	return nil
}

// Credit tops up a member's wallet. Replaying the same reference returns the
// original ledger entry without touching the balance again.
func (s *WalletService) Credit(ctx context.Context, req CreditRequest) (*member.WalletTransaction, error) {
	return s.apply(ctx, req, member.WalletTransactionTypeCredit)
}

// Debit deducts from a member's wallet, failing on insufficient balance
func (s *WalletService) Debit(ctx context.Context, req CreditRequest) (*member.WalletTransaction, error) {
	return s.apply(ctx, req, member.WalletTransactionTypeDebit)
}

func (s *WalletService) apply(ctx context.Context, req CreditRequest, txType member.WalletTransactionType) (*member.WalletTransaction, error) {
	log := logger.FromContext(ctx)

	if err := req.validate(); err != nil {
		return nil, err
	}

	if existing, err := s.walletTxs.FindByReference(ctx, req.Reference); err == nil {
		return existing, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check reference: %w", err)
	}

	var walletTx *member.WalletTransaction
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		m, err := s.members.FindByIDForUpdate(txCtx, req.MemberID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
			}
			return fmt.Errorf("failed to lock member: %w", err)
		}

		balanceBefore := m.WalletBalance
		switch txType {
		case member.WalletTransactionTypeCredit:
			if err := m.CreditWallet(req.Amount); err != nil {
				return err
			}
			walletTx, err = member.NewWalletCredit(m.ID, req.Amount, balanceBefore, req.Reference)
			if err != nil {
				return err
			}
		case member.WalletTransactionTypeDebit:
			if err := m.DebitWallet(req.Amount); err != nil {
				return err
			}
			walletTx, err = member.NewWalletDebit(m.ID, req.Amount, balanceBefore, req.Reference)
			if err != nil {
				return err
			}
		}

		walletTx.WithProcessedBy(req.AdminID)
		if req.Notes != "" {
			walletTx.WithNotes(req.Notes)
		}
		if req.PaymentMethod != "" {
			walletTx.WithPaymentMethod(req.PaymentMethod)
		}

		if err := s.members.Save(txCtx, m); err != nil {
			return fmt.Errorf("failed to save member balance: %w", err)
		}
		if err := s.walletTxs.Create(txCtx, walletTx); err != nil {
			return fmt.Errorf("failed to record wallet transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		// A concurrent replay of the same reference can slip past the
		// pre-check and lose the insert race. Return the recorded entry
		// instead of surfacing the conflict.
		if errors.Is(err, shared.ErrAlreadyExists) {
			if existing, findErr := s.walletTxs.FindByReference(ctx, req.Reference); findErr == nil {
				return existing, nil
			}
		}
		return nil, err
	}

	log.Info("wallet transaction processed",
		zap.String("member_id", req.MemberID.String()),
		zap.String("type", txType.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("reference", req.Reference))

	return walletTx, nil
}

// Transactions lists a member's wallet ledger entries
func (s *WalletService) Transactions(ctx context.Context, memberID uuid.UUID, filter member.WalletTransactionFilter) ([]*member.WalletTransaction, int64, error) {
	if memberID == uuid.Nil {
		return nil, 0, shared.NewDomainError("INVALID_MEMBER", "Member ID is required")
	}
	return s.walletTxs.FindByMemberID(ctx, memberID, filter)
}
