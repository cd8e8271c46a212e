package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/milkroute/backend/internal/application/pricing"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/domain/subscription"
	"github.com/milkroute/backend/internal/infrastructure/invoice"
	"github.com/milkroute/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// orderNumberRetries bounds retries on order-number collisions
const orderNumberRetries = 3

// Coordinator orchestrates subscription creation: schedule expansion,
// pricing, wallet settlement and the atomic persistence of the order,
// subscription, delivery entries and wallet ledger entry. Invoice generation
// happens after commit and is best-effort.
type Coordinator struct {
	products  catalog.ProductRepository
	members   member.MemberRepository
	addresses member.AddressRepository
	walletTxs member.WalletTransactionRepository
	orders    subscription.ProductOrderRepository
	subs      subscription.SubscriptionRepository
	entries   subscription.DeliveryEntryRepository
	resolver  *pricing.Resolver
	invoices  invoice.Generator
	txManager shared.TransactionManager
}

// NewCoordinator creates a new subscription Coordinator
func NewCoordinator(
	products catalog.ProductRepository,
	members member.MemberRepository,
	addresses member.AddressRepository,
	walletTxs member.WalletTransactionRepository,
	orders subscription.ProductOrderRepository,
	subs subscription.SubscriptionRepository,
	entries subscription.DeliveryEntryRepository,
	resolver *pricing.Resolver,
	invoices invoice.Generator,
	txManager shared.TransactionManager,
) *Coordinator {
	return &Coordinator{
		products:  products,
		members:   members,
		addresses: addresses,
		walletTxs: walletTxs,
		orders:    orders,
		subs:      subs,
		entries:   entries,
		resolver:  resolver,
		invoices:  invoices,
		txManager: txManager,
	}
}

// CreateSubscription creates a subscription with its order, delivery
// schedule entries and (when wallet funds were used) a wallet ledger entry,
// all inside one transaction. Either every write commits or none do.
func (c *Coordinator) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*CreateSubscriptionResult, error) {
	log := logger.FromContext(ctx)

	params, err := req.parse()
	if err != nil {
		return nil, err
	}

	product, err := c.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Product is not available for subscription")
	}

	memberRec, err := c.members.FindByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("MEMBER_NOT_FOUND", "Member not found")
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	var pincode string
	if req.AddressID != nil {
		address, err := c.addresses.FindByID(ctx, *req.AddressID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("ADDRESS_NOT_FOUND", "Delivery address not found")
			}
			return nil, fmt.Errorf("failed to load address: %w", err)
		}
		if address.MemberID != req.MemberID {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Delivery address does not belong to the member")
		}
		pincode = address.Pincode
	}

	schedule, err := subscription.GenerateSchedule(params)
	if err != nil {
		return nil, err
	}

	quote, err := c.resolver.Resolve(ctx, req.ProductID, pincode, req.Period)
	if err != nil {
		return nil, err
	}

	totalQty := subscription.TotalQuantity(schedule)
	totalAmount := quote.UnitRate.Mul(totalQty)

	var (
		order *subscription.ProductOrder
		sub   *subscription.Subscription
	)

	err = c.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Row lock serializes concurrent settlements against this wallet.
		m, err := c.members.FindByIDForUpdate(txCtx, req.MemberID)
		if err != nil {
			return fmt.Errorf("failed to lock member: %w", err)
		}

		settlement, err := subscription.Settle(totalAmount, m.WalletBalance)
		if err != nil {
			return err
		}

		order, err = c.createOrder(txCtx, req, settlement)
		if err != nil {
			return err
		}

		sub, err = subscription.NewSubscription(order.ID, req.ProductID, req.MemberID, params, totalQty)
		if err != nil {
			return err
		}
		if req.AddressID != nil {
			sub.SetDeliveryAddress(*req.AddressID)
		}
		if req.AgencyID != nil {
			sub.SetAgency(*req.AgencyID)
		}
		sub.SetInstructions(req.Instructions)
		if err := sub.ApplyPricing(quote.UnitRate, quote.VariantID); err != nil {
			return err
		}
		sub.ApplySettlement(settlement)

		if err := order.AddTotals(sub.TotalQuantity, sub.TotalAmount); err != nil {
			return err
		}

		if settlement.WalletAmount.IsPositive() {
			// Balance decrement precedes the ledger insert so the ledger
			// always reflects the committed balance change.
			balanceBefore := m.WalletBalance
			if err := m.DebitWallet(settlement.WalletAmount); err != nil {
				return err
			}
			if err := c.members.Save(txCtx, m); err != nil {
				return fmt.Errorf("failed to save member balance: %w", err)
			}

			walletTx, err := member.NewWalletDebit(m.ID, settlement.WalletAmount, balanceBefore, "SUB_"+order.OrderNumber)
			if err != nil {
				return err
			}
			walletTx.WithNotes(fmt.Sprintf("Settlement for order %s", order.OrderNumber))
			if err := c.walletTxs.Create(txCtx, walletTx); err != nil {
				return fmt.Errorf("failed to record wallet debit: %w", err)
			}
		}

		if err := c.orders.Save(txCtx, order); err != nil {
			return fmt.Errorf("failed to save order totals: %w", err)
		}
		if err := c.subs.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		scheduleEntries := make([]*subscription.DeliveryScheduleEntry, 0, len(schedule))
		for _, d := range schedule {
			entry, err := subscription.NewDeliveryScheduleEntry(sub, d)
			if err != nil {
				return err
			}
			scheduleEntries = append(scheduleEntries, entry)
		}
		if err := c.entries.BulkCreate(txCtx, scheduleEntries); err != nil {
			return fmt.Errorf("failed to create delivery entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &CreateSubscriptionResult{Subscription: sub, Order: order}

	// Invoice generation is a distinct failure domain: a failure here must
	// never undo the committed subscription.
	if c.invoices != nil {
		inv, err := c.invoices.Generate(ctx, order, sub, memberRec)
		if err != nil {
			log.Warn("invoice generation failed, continuing",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		} else if err := order.SetInvoice(inv.Number, inv.Path); err != nil {
			log.Warn("invoice rejected, continuing",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		} else if saveErr := c.orders.Save(ctx, order); saveErr != nil {
			log.Warn("failed to persist invoice reference",
				zap.String("order_number", order.OrderNumber),
				zap.Error(saveErr))
		} else {
			result.Invoice = &inv
		}
	}

	log.Info("subscription created",
		zap.String("order_number", order.OrderNumber),
		zap.String("subscription_id", sub.ID.String()),
		zap.Int("deliveries", len(schedule)),
		zap.String("payment_status", sub.PaymentStatus.String()))

	return result, nil
}

// createOrder creates the product order, regenerating the order number on a
// unique-constraint collision. Each attempt runs in its own savepoint: on
// Postgres a collided insert aborts the transaction, and the savepoint
// rollback is what keeps it usable for the next attempt.
func (c *Coordinator) createOrder(ctx context.Context, req CreateSubscriptionRequest, settlement subscription.Settlement) (*subscription.ProductOrder, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		var order *subscription.ProductOrder
		err := c.txManager.WithinSavepoint(ctx, func(spCtx context.Context) error {
			orderNumber, err := c.orders.GenerateOrderNumber(spCtx)
			if err != nil {
				return fmt.Errorf("failed to generate order number: %w", err)
			}

			order, err = subscription.NewProductOrder(orderNumber, req.MemberID)
			if err != nil {
				return err
			}
			order.ApplySettlement(settlement)

			if err := c.orders.Create(spCtx, order); err != nil {
				if errors.Is(err, shared.ErrAlreadyExists) {
					return err
				}
				return fmt.Errorf("failed to create order: %w", err)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return order, nil
	}
	return nil, fmt.Errorf("order number collision persisted after %d attempts: %w", orderNumberRetries, lastErr)
}
