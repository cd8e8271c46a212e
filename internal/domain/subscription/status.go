package subscription

// PaymentStatus represents the settlement status of a subscription or order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// AllowsCancellation reports whether a subscription with this payment status
// may still be cancelled. A settled (PAID) subscription cannot be cancelled
// through the lifecycle path; an unset status counts as cancellable.
func (s PaymentStatus) AllowsCancellation() bool {
	switch s {
	case "", PaymentStatusPending, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// SubscriptionStatus represents the lifecycle status of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SubscriptionStatus
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SubscriptionStatus
func (s SubscriptionStatus) String() string {
	return string(s)
}

// DeliveryStatus represents the disposition of a single delivery schedule entry.
// PENDING is the only initial state; every other state is terminal for
// scheduling purposes.
type DeliveryStatus string

const (
	DeliveryStatusPending         DeliveryStatus = "PENDING"
	DeliveryStatusDelivered       DeliveryStatus = "DELIVERED"
	DeliveryStatusNotDelivered    DeliveryStatus = "NOT_DELIVERED"
	DeliveryStatusCancelled       DeliveryStatus = "CANCELLED"
	DeliveryStatusSkipped         DeliveryStatus = "SKIPPED"
	DeliveryStatusSkipByCustomer  DeliveryStatus = "SKIP_BY_CUSTOMER"
	DeliveryStatusTransferToAgent DeliveryStatus = "TRANSFER_TO_AGENT"
	DeliveryStatusIndraaiDelivery DeliveryStatus = "INDRAAI_DELIVERY"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusDelivered, DeliveryStatusNotDelivered,
		DeliveryStatusCancelled, DeliveryStatusSkipped, DeliveryStatusSkipByCustomer,
		DeliveryStatusTransferToAgent, DeliveryStatusIndraaiDelivery:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the entry has a fixed disposition
func (s DeliveryStatus) IsTerminal() bool {
	return s != DeliveryStatusPending
}

// CanTransitionTo checks if the status can transition to the target status.
// Only PENDING entries may move; resolved entries keep their disposition.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	if s != DeliveryStatusPending {
		return false
	}
	return target.IsValid() && target != DeliveryStatusPending
}

// Reassignable reports whether the entry may still receive a new agent.
// Delivered, cancelled and skipped entries already have a fixed disposition.
func (s DeliveryStatus) Reassignable() bool {
	return s == DeliveryStatusPending || s == DeliveryStatusNotDelivered
}
