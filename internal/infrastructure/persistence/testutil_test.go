package persistence

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/milkroute/backend/internal/domain/catalog"
	"github.com/milkroute/backend/internal/domain/member"
	"github.com/milkroute/backend/internal/domain/subscription"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&member.Member{},
		&member.Address{},
		&member.WalletTransaction{},
		&catalog.Product{},
		&catalog.Depot{},
		&catalog.AreaDepotMapping{},
		&catalog.DepotProductVariant{},
		&subscription.ProductOrder{},
		&subscription.Subscription{},
		&subscription.DeliveryScheduleEntry{},
	))

	return db
}

var testSeq atomic.Int64

// nextSeq hands out a process-unique counter for fixture data that
// carries unique constraints (phones, order numbers, references).
func nextSeq() int64 {
	return testSeq.Add(1)
}

func seedMember(t *testing.T, db *gorm.DB, balance decimal.Decimal) *member.Member {
	t.Helper()
	m, err := member.NewMember("Asha Patil", fmt.Sprintf("98%08d", nextSeq()))
	require.NoError(t, err)
	m.WalletBalance = balance
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedOrder(t *testing.T, db *gorm.DB, memberID uuid.UUID) *subscription.ProductOrder {
	t.Helper()
	order, err := subscription.NewProductOrder(fmt.Sprintf("ORD-%d-%05d", time.Now().Year(), nextSeq()), memberID)
	require.NoError(t, err)
	require.NoError(t, db.Create(order).Error)
	return order
}

// seedSubscription persists a daily subscription backed by a fresh order.
func seedSubscription(t *testing.T, db *gorm.DB, m *member.Member, start time.Time, periodDays int) *subscription.Subscription {
	t.Helper()

	order := seedOrder(t, db, m.ID)
	params := subscription.ScheduleParams{
		StartDate:  start,
		PeriodDays: periodDays,
		Recurrence: subscription.RecurrenceDaily,
		Quantity:   decimal.NewFromInt(1),
	}
	totalQty := decimal.NewFromInt(int64(periodDays))
	if periodDays == 0 {
		totalQty = decimal.NewFromInt(1)
	}

	sub, err := subscription.NewSubscription(order.ID, uuid.New(), m.ID, params, totalQty)
	require.NoError(t, err)
	require.NoError(t, sub.ApplyPricing(decimal.NewFromInt(20), nil))
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func seedEntry(t *testing.T, db *gorm.DB, sub *subscription.Subscription, date time.Time, status subscription.DeliveryStatus) *subscription.DeliveryScheduleEntry {
	t.Helper()

	entry, err := subscription.NewDeliveryScheduleEntry(sub, subscription.ScheduledDelivery{
		Date:     date,
		Quantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	entry.Status = status
	require.NoError(t, db.Create(entry).Error)
	return entry
}
