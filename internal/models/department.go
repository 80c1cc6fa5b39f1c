package models

// Department is a detached view of a department and its employees in insertion order.
type Department struct {
	Name      string     `json:"name"`
	Employees []Employee `json:"employees"`
}
