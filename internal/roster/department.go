package roster

import (
	"container/list"
	"iter"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// Department owns an ordered collection of employees.
//
// Employees are kept in a linked list for insertion order and indexed by ID for
// constant-time removal. Every employee added must carry this department's name.
// Department is not safe for concurrent use.
type Department struct {
	name  string
	order *list.List
	byID  map[string]*list.Element
	log   *slog.Logger
}

// NewDepartment returns an empty department. A nil log discards everything.
func NewDepartment(name string, log *slog.Logger) *Department {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Department{
		name:  name,
		order: list.New(),
		byID:  make(map[string]*list.Element),
		log:   log,
	}
}

func (d *Department) Name() string { return d.name }

// Len returns the number of employees in the department.
func (d *Department) Len() int { return d.order.Len() }

// AddEmployee appends the employee. IDs are not checked here: uniqueness is enforced when
// the employee is constructed.
func (d *Department) AddEmployee(employee *Employee) {
	d.byID[employee.ID()] = d.order.PushBack(employee)
}

// RemoveEmployee unregisters and removes the employee with the given ID.
// It returns false if no such employee belongs to the department.
func (d *Department) RemoveEmployee(id string) bool {
	elem, ok := d.byID[id]
	if !ok {
		return false
	}

	employee, _ := elem.Value.(*Employee)
	employee.Unregister(d.log)
	d.order.Remove(elem)
	delete(d.byID, id)

	return true
}

// RemoveAllEmployees unregisters and removes every employee and returns their IDs in
// insertion order.
func (d *Department) RemoveAllEmployees() []string {
	snapshot := d.snapshot()
	removed := make([]string, 0, len(snapshot))

	for _, employee := range snapshot {
		if d.RemoveEmployee(employee.ID()) {
			removed = append(removed, employee.ID())
		}
	}

	return removed
}

// Employee returns the employee with the given ID.
func (d *Department) Employee(id string) (*Employee, bool) {
	elem, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	employee, _ := elem.Value.(*Employee)

	return employee, true
}

// Employees yields the employees in insertion order. The collection is read when iteration
// starts, so ranging again reflects later changes.
func (d *Department) Employees() iter.Seq[*Employee] {
	return func(yield func(*Employee) bool) {
		for _, employee := range d.snapshot() {
			if !yield(employee) {
				return
			}
		}
	}
}

// ListEmployees yields the description of every employee in insertion order.
func (d *Department) ListEmployees() iter.Seq[string] {
	return func(yield func(string) bool) {
		for employee := range d.Employees() {
			if !yield(employee.Describe()) {
				return
			}
		}
	}
}

// Record returns a detached copy of the department.
func (d *Department) Record() models.Department {
	employees := make([]models.Employee, 0, d.order.Len())
	for employee := range d.Employees() {
		employees = append(employees, employee.Record())
	}

	return models.Department{Name: d.name, Employees: employees}
}

func (d *Department) String() string {
	return "Department: " + d.name
}

func (d *Department) snapshot() []*Employee {
	snapshot := make([]*Employee, 0, d.order.Len())
	for elem := d.order.Front(); elem != nil; elem = elem.Next() {
		employee, _ := elem.Value.(*Employee)
		snapshot = append(snapshot, employee)
	}

	return snapshot
}
