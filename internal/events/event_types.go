package events

import "time"

// Kind enumerates supported change events.
type Kind string

const (
	KindDepartmentAdded   Kind = "department_added"
	KindDepartmentRemoved Kind = "department_removed"
	KindEmployeeAdded     Kind = "employee_added"
	KindEmployeeRemoved   Kind = "employee_removed"
)

// Kinds lists every event kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindDepartmentAdded, KindDepartmentRemoved, KindEmployeeAdded, KindEmployeeRemoved}
}

// Event describes a single committed change to the records.
// EmployeeID is empty for department events.
type Event struct {
	Kind       Kind      `json:"kind"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Department string    `json:"department"`
	OccurredAt time.Time `json:"occurred_at"`
}
