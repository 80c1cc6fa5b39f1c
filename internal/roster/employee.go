package roster

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// Employee is an employee record whose ID is claimed in an IDRegistry for as long as the
// record is live. Its fields never change after construction.
type Employee struct {
	name       string
	id         string
	title      string
	department string
	registry   *IDRegistry
}

// NewEmployee validates the fields and claims id in registry.
// It fails with ErrValidation when any field is empty and with ErrDuplicateID when id is
// already assigned; in both cases the registry is left untouched.
func NewEmployee(registry *IDRegistry, name, id, title, department string) (*Employee, error) {
	var missing []string
	for _, field := range []struct{ key, value string }{
		{"name", name},
		{"ID", id},
		{"title", title},
		{"department", department},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: employee %s must not be empty", ErrValidation, strings.Join(missing, ", "))
	}

	if err := registry.Claim(id); err != nil {
		return nil, err
	}

	return &Employee{
		name:       name,
		id:         id,
		title:      title,
		department: department,
		registry:   registry,
	}, nil
}

// Unregister releases the employee ID. Releasing an ID that is no longer assigned is
// logged as a consistency warning and reported as false.
func (e *Employee) Unregister(log *slog.Logger) bool {
	if e.registry.Release(e.id) {
		return true
	}

	log.Warn("Employee ID was not registered",
		sl.Op("Employee.Unregister"),
		slog.String("employee_id", e.id),
		slog.String("department", e.department),
	)

	return false
}

func (e *Employee) Name() string       { return e.name }
func (e *Employee) ID() string         { return e.id }
func (e *Employee) Title() string      { return e.title }
func (e *Employee) Department() string { return e.department }

// Describe returns a human-readable summary of all fields.
func (e *Employee) Describe() string {
	return fmt.Sprintf("Name: %s, ID: %s, Title: %s, Department: %s", e.name, e.id, e.title, e.department)
}

func (e *Employee) String() string {
	return e.name + " - " + e.id
}

// Record returns the employee as a plain value.
func (e *Employee) Record() models.Employee {
	return models.Employee{
		Name:       e.name,
		ID:         e.id,
		Title:      e.title,
		Department: e.department,
	}
}
