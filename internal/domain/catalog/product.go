package catalog

import (
	"strings"

	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a deliverable product (e.g. a milk SKU)
type Product struct {
	shared.BaseAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Unit     string          `gorm:"type:varchar(20);not null;default:'unit'"` // litre, packet, piece
	MRP      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`    // List price
	IsActive bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(code, name, unit string, mrp decimal.Decimal) (*Product, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if mrp.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "MRP cannot be negative")
	}
	if unit == "" {
		unit = "unit"
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Unit:              unit,
		MRP:               mrp,
		IsActive:          true,
	}, nil
}
