package order

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ─> Confirmed ─> Preparing ─> ReadyForPickup ─> OutForDelivery ─> Delivered
//	   │           │            │
//	   └───────────┴────────────┴──────> Cancelled
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	ReadyForPickup
	OutForDelivery
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:        "pending",
	Confirmed:      "confirmed",
	Preparing:      "preparing",
	ReadyForPickup: "ready_for_pickup",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// adjacency lists, for every status, the statuses a single transition may reach.
var adjacency = map[Status][]Status{
	Pending:        {Confirmed, Cancelled},
	Confirmed:      {Preparing, Cancelled},
	Preparing:      {ReadyForPickup, Cancelled},
	ReadyForPickup: {OutForDelivery},
	OutForDelivery: {Delivered},
	Delivered:      {},
	Cancelled:      {},
}

// progression is the happy path in display order. Cancelled is not part of it.
var progression = []Status{Pending, Confirmed, Preparing, ReadyForPickup, OutForDelivery, Delivered}

// ParseStatus maps the wire name ("ready_for_pickup") back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedNext returns the statuses directly reachable from s. The result is a copy.
func AllowedNext(s Status) []Status {
	next := adjacency[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether to is a direct successor of s.
func (s Status) CanTransition(to Status) bool {
	for _, n := range adjacency[s] {
		if n == to {
			return true
		}
	}
	return false
}

// IsTerminal is true for Delivered and Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Progression returns the linear happy path, Pending first.
func Progression() []Status {
	out := make([]Status, len(progression))
	copy(out, progression)
	return out
}

// Position is the index of s in Progression, or -1 for Cancelled and Unknown.
func (s Status) Position() int {
	for i, p := range progression {
		if p == s {
			return i
		}
	}
	return -1
}

// EventType is the trail event recording a transition into s.
func (s Status) EventType() EventType {
	return EventType(statusEventPrefix + s.String())
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PaymentStatus tracks the externally captured payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%q is not a valid payment status", string(p)))
	}
}
