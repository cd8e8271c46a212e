package catalog

import (
	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DepotProductVariant represents a product SKU priced per fulfillment depot.
// Each rate column corresponds to a subscription period tier.
type DepotProductVariant struct {
	shared.BaseAggregateRoot
	DepotID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_depot_product,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_depot_product,priority:2"`
	BuyOncePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // 1-day / one-off rate
	Price3Day    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price7Day    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price15Day   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PriceMonthly decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // 30-day rate
	MRP          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Fallback list price
	IsAvailable  bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DepotProductVariant) TableName() string {
	return "depot_product_variants"
}

// NewDepotProductVariant creates a new depot-scoped product variant
func NewDepotProductVariant(depotID, productID uuid.UUID, buyOnce, mrp decimal.Decimal) (*DepotProductVariant, error) {
	if depotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPOT", "Depot ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if buyOnce.IsNegative() || mrp.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	return &DepotProductVariant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DepotID:           depotID,
		ProductID:         productID,
		BuyOncePrice:      buyOnce,
		MRP:               mrp,
		IsAvailable:       true,
	}, nil
}

// SetPeriodRates sets the tiered period rates for the variant
func (v *DepotProductVariant) SetPeriodRates(p3, p7, p15, monthly decimal.Decimal) error {
	if p3.IsNegative() || p7.IsNegative() || p15.IsNegative() || monthly.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	v.Price3Day = p3
	v.Price7Day = p7
	v.Price15Day = p15
	v.PriceMonthly = monthly
	v.IncrementVersion()
	return nil
}

// RateForPeriod selects the per-unit rate for a subscription period length.
// Fixed tiers: 1 day, 3 days, 7 days, 15 days, 30 days. Any other period
// falls back to MRP, or to the one-off rate when no MRP is set. Period 0
// (buy once) uses the one-off rate.
func (v *DepotProductVariant) RateForPeriod(days int) decimal.Decimal {
	switch days {
	case 0, 1:
		return v.BuyOncePrice
	case 3:
		return v.Price3Day
	case 7:
		return v.Price7Day
	case 15:
		return v.Price15Day
	case 30:
		return v.PriceMonthly
	}
	if v.MRP.IsPositive() {
		return v.MRP
	}
	return v.BuyOncePrice
}
