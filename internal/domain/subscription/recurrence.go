package subscription

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/milkroute/backend/internal/domain/shared"
)

// RecurrenceType represents the rule governing which calendar days within a
// subscription period receive a delivery.
//
// ALTERNATE_DAYS and VARYING are stored as distinct values: ALTERNATE_DAYS is
// a true every-other-day cadence, VARYING is a daily cadence whose quantity
// alternates by day index.
type RecurrenceType string

const (
	RecurrenceDaily         RecurrenceType = "DAILY"
	RecurrenceSelectDays    RecurrenceType = "SELECT_DAYS"
	RecurrenceAlternateDays RecurrenceType = "ALTERNATE_DAYS"
	RecurrenceVarying       RecurrenceType = "VARYING"
)

// IsValid checks if the recurrence type is valid
func (r RecurrenceType) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceSelectDays, RecurrenceAlternateDays, RecurrenceVarying:
		return true
	}
	return false
}

// String returns the string representation of RecurrenceType
func (r RecurrenceType) String() string {
	return string(r)
}

// ParseRecurrenceType normalizes a client-supplied schedule keyword into a
// RecurrenceType. Case and separator variants ("select days", "select-days")
// are accepted.
func ParseRecurrenceType(s string) (RecurrenceType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	rt := RecurrenceType(normalized)
	if !rt.IsValid() {
		return "", shared.NewDomainError("INVALID_RECURRENCE", fmt.Sprintf("Unsupported delivery schedule %q", s))
	}
	return rt, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday resolves a weekday name (full or abbreviated, any case)
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, shared.NewDomainError("INVALID_WEEKDAY", fmt.Sprintf("Unknown weekday %q", name))
	}
	return d, nil
}

// WeekdaySet is the set of weekday names selected for SELECT_DAYS
// subscriptions. It is persisted as a JSON array.
type WeekdaySet []string

// Contains reports whether the set includes the given weekday
func (w WeekdaySet) Contains(day time.Weekday) bool {
	for _, name := range w {
		if d, err := ParseWeekday(name); err == nil && d == day {
			return true
		}
	}
	return false
}

// Validate checks every name in the set resolves to a weekday
func (w WeekdaySet) Validate() error {
	if len(w) == 0 {
		return shared.NewDomainError("INVALID_WEEKDAYS", "At least one weekday must be selected")
	}
	for _, name := range w {
		if _, err := ParseWeekday(name); err != nil {
			return err
		}
	}
	return nil
}

// Value implements driver.Valuer for GORM persistence
func (w WeekdaySet) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for GORM persistence
func (w *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	}
	return fmt.Errorf("unsupported type %T for WeekdaySet", value)
}
