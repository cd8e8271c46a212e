package invoice

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/subscription"
)

// Invoice is the result produced by the external invoice collaborator.
type Invoice struct {
	Number string
	Path   string
}

// Generator is the boundary to the invoice rendering service. Generation is
// best-effort: callers log failures and continue, a failed invoice never
// rolls back a committed subscription.
type Generator interface {
	Generate(ctx context.Context, order *subscription.ProductOrder, sub *subscription.Subscription, m *member.Member) (Invoice, error)
}

// SequentialGenerator assigns sequential invoice numbers and a storage path
// under a configurable prefix. It stands in for the external PDF renderer,
// which owns the actual document layout.
type SequentialGenerator struct {
	pathPrefix string
	counter    atomic.Int64
}

// NewSequentialGenerator creates a generator writing paths under the prefix
func NewSequentialGenerator(pathPrefix string) *SequentialGenerator {
	if pathPrefix == "" {
		pathPrefix = "invoices"
	}
	return &SequentialGenerator{pathPrefix: pathPrefix}
}

// Generate produces the next invoice number for the order
func (g *SequentialGenerator) Generate(_ context.Context, order *subscription.ProductOrder, _ *subscription.Subscription, _ *member.Member) (Invoice, error) {
	n := g.counter.Add(1)
	number := fmt.Sprintf("INV-%d-%05d", time.Now().Year(), n)
	return Invoice{
		Number: number,
		Path:   fmt.Sprintf("%s/%s/%s.pdf", g.pathPrefix, order.OrderNumber, number),
	}, nil
}
