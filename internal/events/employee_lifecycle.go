package events

import "time"

// EmployeeLifecycleTopic carries every employee lifecycle event; consumers
// dispatch on the event_type header rather than on per-event topics.
const EmployeeLifecycleTopic = "ems.employee.lifecycle.v1"

// Type names a lifecycle transition on the wire.
type Type string

const (
	TypeEmployeeCreated    Type = "employee_created"
	TypeEmployeeTerminated Type = "employee_terminated"
)

type EmployeeCreatedEvent struct {
	EventType  Type      `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID uint64    `json:"employee_id"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EmployeeTerminatedEvent is emitted on soft delete. Re-deleting an already
// terminated employee emits it again; consumers are expected to be
// idempotent on employee_id.
type EmployeeTerminatedEvent struct {
	EventType  Type      `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID uint64    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
