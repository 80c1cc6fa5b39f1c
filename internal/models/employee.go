package models

// Employee represents an employee record.
type Employee struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}
