package subscription

import (
	"time"

	"github.com/milkroute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateOnly strips the time-of-day component, keeping calendar-date semantics
// for schedule generation and comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameCalendarDay reports whether two instants fall on the same calendar day
func SameCalendarDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// ScheduledDelivery is one concrete (date, quantity) pair produced by the
// schedule generator.
type ScheduledDelivery struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// ScheduleParams are the recurrence parameters expanded into a calendar.
type ScheduleParams struct {
	StartDate         time.Time
	PeriodDays        int // 0 means a single one-off delivery
	Recurrence        RecurrenceType
	Quantity          decimal.Decimal
	AlternateQuantity decimal.Decimal // Zero or negative means not supplied
	Weekdays          WeekdaySet      // Only meaningful for SELECT_DAYS
}

// ExpiryDate returns the last calendar day covered by the params.
// A zero period expires on the start date itself.
func (p ScheduleParams) ExpiryDate() time.Time {
	start := DateOnly(p.StartDate)
	if p.PeriodDays <= 0 {
		return start
	}
	return start.AddDate(0, 0, p.PeriodDays-1)
}

// GenerateSchedule expands recurrence parameters into an ordered list of
// concrete delivery days. The function is pure and deterministic: it can be
// re-run for preview without side effects.
//
// An empty result is an error: a subscription must never be persisted with
// no deliveries.
func GenerateSchedule(p ScheduleParams) ([]ScheduledDelivery, error) {
	if p.PeriodDays < 0 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period cannot be negative")
	}
	if !p.Recurrence.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECURRENCE", "Unsupported recurrence type")
	}
	if p.Quantity.IsNegative() || p.Quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StartDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Start date is required")
	}
	if p.Recurrence == RecurrenceSelectDays {
		if err := p.Weekdays.Validate(); err != nil {
			return nil, err
		}
	}

	start := DateOnly(p.StartDate)

	// Buy-once: exactly one delivery on the start date.
	if p.PeriodDays == 0 {
		return []ScheduledDelivery{{Date: start, Quantity: p.Quantity}}, nil
	}

	hasAlternate := p.AlternateQuantity.IsPositive()
	schedule := make([]ScheduledDelivery, 0, p.PeriodDays)

	for i := 0; i < p.PeriodDays; i++ {
		day := start.AddDate(0, 0, i)

		switch p.Recurrence {
		case RecurrenceDaily:
			schedule = append(schedule, ScheduledDelivery{Date: day, Quantity: p.Quantity})

		case RecurrenceSelectDays:
			if p.Weekdays.Contains(day.Weekday()) {
				schedule = append(schedule, ScheduledDelivery{Date: day, Quantity: p.Quantity})
			}

		case RecurrenceAlternateDays:
			if i%2 != 0 {
				continue
			}
			qty := p.Quantity
			// Included days alternate primary/alternate starting with primary.
			if hasAlternate && (len(schedule)%2 == 1) {
				qty = p.AlternateQuantity
			}
			schedule = append(schedule, ScheduledDelivery{Date: day, Quantity: qty})

		case RecurrenceVarying:
			qty := p.Quantity
			if hasAlternate && i%2 == 1 {
				qty = p.AlternateQuantity
			}
			schedule = append(schedule, ScheduledDelivery{Date: day, Quantity: qty})
		}
	}

	if len(schedule) == 0 {
		return nil, shared.ErrEmptySchedule
	}
	return schedule, nil
}

// TotalQuantity sums the quantities of a generated schedule
func TotalQuantity(schedule []ScheduledDelivery) decimal.Decimal {
	total := decimal.Zero
	for _, d := range schedule {
		total = total.Add(d.Quantity)
	}
	return total
}
