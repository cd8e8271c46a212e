package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Save(ctx context.Context, p *Product) error
}

// DepotRepository defines the interface for depot persistence
type DepotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Depot, error)
	Create(ctx context.Context, d *Depot) error
	Save(ctx context.Context, d *Depot) error
}

// DepotVariantRepository defines the interface for depot product variant persistence
type DepotVariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DepotProductVariant, error)
	FindByDepotAndProduct(ctx context.Context, depotID, productID uuid.UUID) (*DepotProductVariant, error)
	Create(ctx context.Context, v *DepotProductVariant) error
	Save(ctx context.Context, v *DepotProductVariant) error
}

// AreaDepotMappingRepository defines the interface for pincode-to-depot mappings
type AreaDepotMappingRepository interface {
	FindByPincode(ctx context.Context, pincode string) (*AreaDepotMapping, error)
	Create(ctx context.Context, m *AreaDepotMapping) error
}
