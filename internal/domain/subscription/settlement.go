package subscription

import (
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Settlement is the result of splitting an order total between prepaid
// wallet funds and the amount still owed.
type Settlement struct {
	WalletAmount  decimal.Decimal // Funded from the wallet
	PayableAmount decimal.Decimal // Residual amount due
	NewBalance    decimal.Decimal // Wallet balance after settlement
	PaymentStatus PaymentStatus
}

// Settle computes how an order total is funded from a wallet balance.
// Invariants: WalletAmount + PayableAmount == orderTotal, NewBalance >= 0.
// The caller is responsible for applying NewBalance transactionally.
func Settle(orderTotal, walletBalance decimal.Decimal) (Settlement, error) {
	if orderTotal.IsNegative() {
		return Settlement{}, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}
	if walletBalance.IsNegative() {
		return Settlement{}, shared.NewDomainError("INVALID_BALANCE", "Wallet balance cannot be negative")
	}

	// Wallet covers the full amount.
	if walletBalance.GreaterThanOrEqual(orderTotal) {
		return Settlement{
			WalletAmount:  orderTotal,
			PayableAmount: decimal.Zero,
			NewBalance:    walletBalance.Sub(orderTotal),
			PaymentStatus: PaymentStatusPaid,
		}, nil
	}

	// Partial funding: drain the wallet, remainder stays payable.
	if walletBalance.IsPositive() {
		return Settlement{
			WalletAmount:  walletBalance,
			PayableAmount: orderTotal.Sub(walletBalance),
			NewBalance:    decimal.Zero,
			PaymentStatus: PaymentStatusPending,
		}, nil
	}

	// Empty wallet: everything payable.
	return Settlement{
		WalletAmount:  decimal.Zero,
		PayableAmount: orderTotal,
		NewBalance:    walletBalance,
		PaymentStatus: PaymentStatusPending,
	}, nil
}
