package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Default TTL for depot lookups. Area mappings are slow-moving master data.
const defaultDepotTTL = 15 * time.Minute

// DepotCache caches pincode-to-depot resolutions for the pricing resolver.
// A miss returns (uuid.Nil, false, nil); errors are reserved for backend
// failures so callers can fall through to the repository.
type DepotCache interface {
	GetDepotIDByPincode(ctx context.Context, pincode string) (uuid.UUID, bool, error)
	SetDepotIDByPincode(ctx context.Context, pincode string, depotID uuid.UUID) error
	InvalidatePincode(ctx context.Context, pincode string) error
}
