package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"github.com/milkroute/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LifecycleService handles post-creation subscription operations: cancelling
// the remaining calendar, member-initiated skips with wallet refunds, admin
// status overrides and bulk agency reassignment.
type LifecycleService struct {
	subs      subscription.SubscriptionRepository
	entries   subscription.DeliveryEntryRepository
	members   member.MemberRepository
	walletTxs member.WalletTransactionRepository
	txManager shared.TransactionManager
	now       func() time.Time
}

// LifecycleOption configures a LifecycleService
type LifecycleOption func(*LifecycleService)

// WithClock overrides the service clock, used by skip-window checks
func WithClock(now func() time.Time) LifecycleOption {
	return func(s *LifecycleService) {
		s.now = now
	}
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	subs subscription.SubscriptionRepository,
	entries subscription.DeliveryEntryRepository,
	members member.MemberRepository,
	walletTxs member.WalletTransactionRepository,
	txManager shared.TransactionManager,
	opts ...LifecycleOption,
) *LifecycleService {
	s := &LifecycleService{
		subs:      subs,
		entries:   entries,
		members:   members,
		walletTxs: walletTxs,
		txManager: txManager,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CancelSubscription cancels a subscription and every still-pending entry
// dated today or later. Delivered and otherwise resolved entries keep their
// disposition so the delivery history stays intact.
func (s *LifecycleService) CancelSubscription(ctx context.Context, subID uuid.UUID) (*CancelSubscriptionResult, error) {
	log := logger.FromContext(ctx)

	var cancelled int64
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		sub, err := s.subs.FindByID(txCtx, subID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("SUBSCRIPTION_NOT_FOUND", "Subscription not found")
			}
			return fmt.Errorf("failed to load subscription: %w", err)
		}

		if err := sub.Cancel(); err != nil {
			return err
		}
		if err := s.subs.Save(txCtx, sub); err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		cancelled, err = s.entries.CancelPendingFrom(txCtx, subID, s.now())
		if err != nil {
			return fmt.Errorf("failed to cancel pending entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("subscription cancelled",
		zap.String("subscription_id", subID.String()),
		zap.Int64("entries_cancelled", cancelled))

	return &CancelSubscriptionResult{EntriesCancelled: cancelled}, nil
}

// SkipDelivery lets a member skip one of their own future pending deliveries.
// The per-delivery amount flows back into the wallet as a CREDIT ledger entry
// referenced SKIP_DELIVERY_<entryID>; a zero unit rate changes the status only.
func (s *LifecycleService) SkipDelivery(ctx context.Context, memberID, entryID uuid.UUID) (*SkipDeliveryResult, error) {
	log := logger.FromContext(ctx)

	var result *SkipDeliveryResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.findEntry(txCtx, entryID)
		if err != nil {
			return err
		}
		if entry.MemberID != memberID {
			return shared.NewDomainError("UNAUTHORIZED", "Delivery does not belong to the member")
		}

		if err := entry.MarkSkippedByCustomer(s.now()); err != nil {
			return err
		}

		refund, refundTx, err := s.refundSkippedEntry(txCtx, entry, nil)
		if err != nil {
			return err
		}

		if err := s.entries.Save(txCtx, entry); err != nil {
			return fmt.Errorf("failed to save delivery entry: %w", err)
		}

		result = &SkipDeliveryResult{Entry: entry, RefundAmount: refund}
		if refundTx != nil {
			result.RefundTxID = &refundTx.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("delivery skipped by member",
		zap.String("entry_id", entryID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("refund_amount", result.RefundAmount.String()))

	return result, nil
}

// OverrideEntryStatus is the admin path for forcing a delivery entry into a
// terminal status. A SKIP_BY_CUSTOMER override issues the same refund a member
// skip does, with the admin recorded on the ledger row. TRANSFER_TO_AGENT and
// INDRAAI_DELIVERY are routing statuses and accept an optional agent.
func (s *LifecycleService) OverrideEntryStatus(ctx context.Context, req OverrideEntryStatusRequest) (*subscription.DeliveryScheduleEntry, error) {
	log := logger.FromContext(ctx)

	if req.AdminID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADMIN", "Admin ID is required")
	}

	var entry *subscription.DeliveryScheduleEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		entry, err = s.findEntry(txCtx, req.EntryID)
		if err != nil {
			return err
		}

		switch req.Status {
		case subscription.DeliveryStatusTransferToAgent, subscription.DeliveryStatusIndraaiDelivery:
			if req.AgencyID != nil {
				if err := entry.AssignAgent(*req.AgencyID, req.AgentID); err != nil {
					return err
				}
			}
			if err := entry.SetStatus(req.Status); err != nil {
				return err
			}
		case subscription.DeliveryStatusSkipByCustomer:
			if err := entry.SetStatus(req.Status); err != nil {
				return err
			}
			if _, _, err := s.refundSkippedEntry(txCtx, entry, &req.AdminID); err != nil {
				return err
			}
		default:
			if err := entry.SetStatus(req.Status); err != nil {
				return err
			}
		}

		if req.Notes != "" {
			entry.SetAdminNotes(req.Notes)
		}
		if err := s.entries.Save(txCtx, entry); err != nil {
			return fmt.Errorf("failed to save delivery entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("delivery entry status overridden",
		zap.String("entry_id", req.EntryID.String()),
		zap.String("admin_id", req.AdminID.String()),
		zap.String("status", req.Status.String()))

	return entry, nil
}

// ReassignAgency moves a batch of subscriptions to a new agency and cascades
// the assignment to their entries that are still open for routing. Entries
// with a fixed disposition keep their original agency for reporting.
func (s *LifecycleService) ReassignAgency(ctx context.Context, subscriptionIDs []uuid.UUID, agencyID uuid.UUID, agentID *uuid.UUID) (*ReassignAgencyResult, error) {
	log := logger.FromContext(ctx)

	if len(subscriptionIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "At least one subscription is required")
	}
	if agencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENCY", "Agency ID is required")
	}

	result := &ReassignAgencyResult{}
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err := s.subs.UpdateAgency(txCtx, subscriptionIDs, agencyID)
		if err != nil {
			return fmt.Errorf("failed to update subscriptions: %w", err)
		}
		result.SubscriptionsUpdated = updated

		for _, subID := range subscriptionIDs {
			n, err := s.entries.ReassignPending(txCtx, subID, agencyID, agentID)
			if err != nil {
				return fmt.Errorf("failed to reassign entries for subscription %s: %w", subID, err)
			}
			result.EntriesUpdated += n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("agency reassigned",
		zap.String("agency_id", agencyID.String()),
		zap.Int64("subscriptions_updated", result.SubscriptionsUpdated),
		zap.Int64("entries_updated", result.EntriesUpdated))

	return result, nil
}

func (s *LifecycleService) findEntry(ctx context.Context, entryID uuid.UUID) (*subscription.DeliveryScheduleEntry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ENTRY_NOT_FOUND", "Delivery entry not found")
		}
		return nil, fmt.Errorf("failed to load delivery entry: %w", err)
	}
	return entry, nil
}

// refundSkippedEntry credits the skipped delivery's amount back to the wallet
// and links the ledger entry. Must run inside the caller's transaction: the
// member row lock and the status change have to commit together.
func (s *LifecycleService) refundSkippedEntry(ctx context.Context, entry *subscription.DeliveryScheduleEntry, processedBy *uuid.UUID) (decimal.Decimal, *member.WalletTransaction, error) {
	sub, err := s.subs.FindByID(ctx, entry.SubscriptionID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	refund := sub.UnitRate.Mul(entry.Quantity)
	if !refund.IsPositive() {
		return decimal.Zero, nil, nil
	}

	m, err := s.members.FindByIDForUpdate(ctx, entry.MemberID)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to lock member: %w", err)
	}

	balanceBefore := m.WalletBalance
	if err := m.CreditWallet(refund); err != nil {
		return decimal.Zero, nil, err
	}
	if err := s.members.Save(ctx, m); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to save member balance: %w", err)
	}

	walletTx, err := member.NewWalletCredit(m.ID, refund, balanceBefore, "SKIP_DELIVERY_"+entry.ID.String())
	if err != nil {
		return decimal.Zero, nil, err
	}
	walletTx.WithNotes(fmt.Sprintf("Refund for skipped delivery on %s", entry.DeliveryDate.Format("2006-01-02")))
	if processedBy != nil {
		walletTx.WithProcessedBy(*processedBy)
	}
	if err := s.walletTxs.Create(ctx, walletTx); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to record wallet credit: %w", err)
	}

	entry.LinkWalletTransaction(walletTx.ID)
	return refund, walletTx, nil
}
