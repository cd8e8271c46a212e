package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
)

// Depot represents a fulfillment depot serving a set of pincodes
type Depot struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	City     string `gorm:"type:varchar(100)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Depot) TableName() string {
	return "depots"
}

// NewDepot creates a new depot with required fields
func NewDepot(code, name string) (*Depot, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Depot code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Depot name cannot be empty")
	}

	return &Depot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		IsActive:          true,
	}, nil
}

// AreaDepotMapping maps a delivery pincode to the depot that serves it
type AreaDepotMapping struct {
	shared.BaseEntity
	Pincode string    `gorm:"type:varchar(10);not null;uniqueIndex"`
	DepotID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (AreaDepotMapping) TableName() string {
	return "area_depot_mappings"
}

// NewAreaDepotMapping creates a new pincode-to-depot mapping
func NewAreaDepotMapping(pincode string, depotID uuid.UUID) (*AreaDepotMapping, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, shared.NewDomainError("INVALID_PINCODE", "Pincode cannot be empty")
	}
	if depotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPOT", "Depot ID cannot be empty")
	}

	return &AreaDepotMapping{
		BaseEntity: shared.NewBaseEntity(),
		Pincode:    pincode,
		DepotID:    depotID,
	}, nil
}
