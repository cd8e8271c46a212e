package subscription

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductOrder ties one or more subscriptions together for invoicing.
// Totals aggregate across the linked subscriptions; the invoice number and
// path are written back by the external invoice collaborator.
type ProductOrder struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	MemberID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WalletAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PayableAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'"`
	InvoiceNumber  string          `gorm:"type:varchar(50)"`
	InvoicePath    string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ProductOrder) TableName() string {
	return "product_orders"
}

// NewProductOrder creates a new order for a member
func NewProductOrder(orderNumber string, memberID uuid.UUID) (*ProductOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if memberID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBER", "Member ID cannot be empty")
	}

	return &ProductOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		MemberID:          memberID,
		PaymentStatus:     PaymentStatusPending,
	}, nil
}

// AddTotals accumulates a subscription's totals onto the order
func (o *ProductOrder) AddTotals(qty, amount decimal.Decimal) error {
	if qty.IsNegative() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Totals cannot be negative")
	}
	o.TotalQuantity = o.TotalQuantity.Add(qty)
	o.TotalAmount = o.TotalAmount.Add(amount)
	o.UpdatedAt = time.Now()
	return nil
}

// ApplySettlement records how the order total was funded
func (o *ProductOrder) ApplySettlement(settlement Settlement) {
	o.WalletAmount = settlement.WalletAmount
	o.PayableAmount = settlement.PayableAmount
	o.ReceivedAmount = settlement.WalletAmount
	o.PaymentStatus = settlement.PaymentStatus
	o.UpdatedAt = time.Now()
}

// SetInvoice records the invoice produced by the external collaborator
func (o *ProductOrder) SetInvoice(number, path string) error {
	if strings.TrimSpace(number) == "" {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice number cannot be empty")
	}
	o.InvoiceNumber = number
	o.InvoicePath = path
	o.UpdatedAt = time.Now()
	return nil
}
