// Package tracking is the client side of order tracking. Model reconciles polled
// order snapshots with live channel messages into a rendered View; Tracker drives a
// Model against a running server.
//
// Polled snapshots are the ground truth. An order_update push for the displayed
// order is only a hint to poll again right away, so lost or reordered pushes never
// corrupt the view. A location_update is trusted as is and only moves the courier
// marker, which no snapshot carries.
package tracking

import (
	"slices"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// StepState is how a status is rendered in the progress display.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepUpcoming  StepState = "upcoming"
)

type Step struct {
	Status string    `json:"status"`
	State  StepState `json:"state"`
}

type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// View is the rendered tracking state. Steps is empty for a cancelled order.
type View struct {
	OrderID   kernel.UUID              `json:"orderId"`
	Status    string                   `json:"status"`
	Cancelled bool                     `json:"cancelled"`
	Steps     []Step                   `json:"steps,omitempty"`
	Courier   *Position                `json:"courier,omitempty"`
	Events    []queries.OrderEventView `json:"events"`
	Snapshot  *queries.OrderSnapshot   `json:"snapshot,omitempty"`
}

// Finished reports whether the order reached a terminal status.
func (v View) Finished() bool {
	return v.Status == order.Delivered.String() || v.Status == order.Cancelled.String()
}

// Model is the tracking reducer for one order. It is not safe for concurrent use.
type Model struct {
	orderID     kernel.UUID
	snapshot    *queries.OrderSnapshot
	courier     *Position
	locationSeq int
	events      []queries.OrderEventView
	seen        map[kernel.UUID]struct{}
	lastSeq     int
}

func NewModel(orderID kernel.UUID) *Model {
	return &Model{orderID: orderID, seen: make(map[kernel.UUID]struct{})}
}

// ApplySnapshot replaces the displayed snapshot. A snapshot older than the one
// already shown, judged by its last event sequence, is ignored so a slow poll
// cannot roll the view back. Events are merged by id; replayed events are
// ignored. It reports whether the view changed.
func (m *Model) ApplySnapshot(s queries.OrderSnapshot) bool {
	if !s.ID.IsEqual(m.orderID) {
		return false
	}

	last := 0
	for _, ev := range s.Events {
		last = max(last, ev.Seq)
	}
	if m.snapshot != nil && last < m.lastSeq {
		return false
	}

	changed := m.snapshot == nil || m.snapshot.Status != s.Status || last != m.lastSeq
	for _, ev := range s.Events {
		if _, ok := m.seen[ev.ID]; ok {
			continue
		}
		m.seen[ev.ID] = struct{}{}
		m.events = append(m.events, ev)
		changed = true
	}
	slices.SortFunc(m.events, func(a, b queries.OrderEventView) int { return a.Seq - b.Seq })

	snapshot := s
	m.snapshot = &snapshot
	m.lastSeq = last

	if m.courier != nil && !isOnTheWay(s.Status) {
		m.courier = nil
		changed = true
	}
	return changed
}

// ApplyMessage overlays a live message. It reports whether the view changed and
// whether the snapshot should be fetched again now.
func (m *Model) ApplyMessage(msg ports.LiveMessage) (changed, refetch bool) {
	if !msg.OrderID.IsEqual(m.orderID) {
		return false, false
	}

	switch msg.Type {
	case ports.MessageOrderUpdate:
		if msg.Seq > 0 && m.snapshot != nil && msg.Seq <= m.lastSeq {
			return false, false
		}
		return false, true
	case ports.MessageLocationUpdate:
		if msg.Lat == nil || msg.Lon == nil {
			return false, false
		}
		if m.snapshot != nil && !isOnTheWay(m.snapshot.Status) {
			return false, false
		}
		if msg.Seq > 0 && msg.Seq < m.locationSeq {
			return false, false
		}
		m.courier = &Position{Lat: *msg.Lat, Lon: *msg.Lon}
		m.locationSeq = max(m.locationSeq, msg.Seq)
		return true, false
	default:
		return false, false
	}
}

// View renders the current state. Before the first snapshot only the order id and
// any courier position are known.
func (m *Model) View() View {
	v := View{
		OrderID: m.orderID,
		Events:  slices.Clone(m.events),
	}
	if m.courier != nil {
		c := *m.courier
		v.Courier = &c
	}
	if m.snapshot == nil {
		return v
	}

	snapshot := *m.snapshot
	v.Snapshot = &snapshot
	v.Status = snapshot.Status

	current, err := order.ParseStatus(snapshot.Status)
	if err != nil {
		return v
	}
	if current == order.Cancelled {
		v.Cancelled = true
		return v
	}
	v.Steps = RenderSteps(current)
	return v
}

// RenderSteps maps every status of order.Progression to its state relative to
// current.
func RenderSteps(current order.Status) []Step {
	at := current.Position()
	progression := order.Progression()
	steps := make([]Step, len(progression))
	for i, s := range progression {
		state := StepUpcoming
		switch {
		case at < 0:
		case i < at:
			state = StepCompleted
		case i == at:
			state = StepCurrent
		}
		steps[i] = Step{Status: s.String(), State: state}
	}
	return steps
}

// isOnTheWay reports whether a courier position is meaningful for the status.
func isOnTheWay(status string) bool {
	return status == order.ReadyForPickup.String() || status == order.OutForDelivery.String()
}
