package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/milkroute/backend/internal/infrastructure/cache"
	"github.com/milkroute/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Quote is the result of resolving a depot-scoped rate for a subscription.
// A zero rate with no variant means pricing could not be resolved and the
// amount is provisional (pickup or manual-pricing path).
type Quote struct {
	UnitRate  decimal.Decimal
	DepotID   *uuid.UUID
	VariantID *uuid.UUID
}

// IsProvisional reports whether no depot variant could be resolved
func (q Quote) IsProvisional() bool {
	return q.VariantID == nil
}

// Resolver looks up the depot serving a delivery pincode and selects the
// product variant's per-unit rate for a subscription period. Read-only.
type Resolver struct {
	mappings   catalog.AreaDepotMappingRepository
	variants   catalog.DepotVariantRepository
	depotCache cache.DepotCache
}

// NewResolver creates a new pricing Resolver
func NewResolver(
	mappings catalog.AreaDepotMappingRepository,
	variants catalog.DepotVariantRepository,
	depotCache cache.DepotCache,
) *Resolver {
	if depotCache == nil {
		depotCache = cache.NewInMemoryDepotCache()
	}
	return &Resolver{
		mappings:   mappings,
		variants:   variants,
		depotCache: depotCache,
	}
}

// Resolve returns the unit rate and depot variant for a product delivered to
// the given pincode over the given period. An unresolvable pincode or missing
// variant yields a provisional zero-rate quote rather than an error; the
// subscription still proceeds and downstream reporting treats the amount as
// provisional.
func (r *Resolver) Resolve(ctx context.Context, productID uuid.UUID, pincode string, periodDays int) (Quote, error) {
	log := logger.FromContext(ctx)

	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return Quote{UnitRate: decimal.Zero}, nil
	}

	depotID, err := r.depotIDForPincode(ctx, pincode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Debug("no depot serves pincode, pricing is provisional", zap.String("pincode", pincode))
			return Quote{UnitRate: decimal.Zero}, nil
		}
		return Quote{}, fmt.Errorf("failed to resolve depot for pincode %s: %w", pincode, err)
	}

	variant, err := r.variants.FindByDepotAndProduct(ctx, depotID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Debug("no depot variant for product, pricing is provisional",
				zap.String("depot_id", depotID.String()),
				zap.String("product_id", productID.String()))
			return Quote{UnitRate: decimal.Zero, DepotID: &depotID}, nil
		}
		return Quote{}, fmt.Errorf("failed to load depot variant: %w", err)
	}

	variantID := variant.ID
	return Quote{
		UnitRate:  variant.RateForPeriod(periodDays),
		DepotID:   &depotID,
		VariantID: &variantID,
	}, nil
}

func (r *Resolver) depotIDForPincode(ctx context.Context, pincode string) (uuid.UUID, error) {
	if id, found, err := r.depotCache.GetDepotIDByPincode(ctx, pincode); err == nil && found {
		return id, nil
	} else if err != nil {
		// Cache backend failure is not fatal; fall through to the repository.
		logger.FromContext(ctx).Warn("depot cache lookup failed", zap.Error(err))
	}

	mapping, err := r.mappings.FindByPincode(ctx, pincode)
	if err != nil {
		return uuid.Nil, err
	}

	if err := r.depotCache.SetDepotIDByPincode(ctx, pincode, mapping.DepotID); err != nil {
		logger.FromContext(ctx).Warn("depot cache store failed", zap.Error(err))
	}
	return mapping.DepotID, nil
}
