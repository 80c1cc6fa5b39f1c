package roster

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

const (
	opAddDepartment    = "add_department"
	opRemoveDepartment = "remove_department"
	opAddEmployee      = "add_employee"
	opRemoveEmployee   = "remove_employee"
)

// Company owns the departments and a non-owning index from employee ID to the name of the
// department that holds the employee.
//
// Invariants (guarded by mu):
//   - an employee ID is held by at most one department
//   - an ID is in the registry, in the index and in its department together or not at all
//   - order lists every department name exactly once, in creation order
type Company struct {
	mu          sync.RWMutex
	departments map[string]*Department
	order       []string
	index       map[string]string
	registry    *IDRegistry

	log        *slog.Logger
	metrics    *metrics.Metrics
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewCompany returns an empty company with its own ID registry.
func NewCompany(opts ...Option) *Company {
	company := &Company{
		departments: make(map[string]*Department),
		index:       make(map[string]string),
		registry:    NewIDRegistry(),
		log:         slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(company)
	}

	return company
}

func (c *Company) initLogger(opn string) *slog.Logger {
	return c.log.With(
		sl.Op(opn),
		slog.String("division", "roster"),
	)
}

// AddDepartment creates an empty department. It returns false without touching anything
// when the department already exists.
func (c *Company) AddDepartment(ctx context.Context, name string) (bool, error) {
	const opn = "Company.AddDepartment"
	start := time.Now()

	if isBlank(name) {
		c.observe(opAddDepartment, metrics.StatusFailure, start)
		return false, fmt.Errorf("%w: department name must not be empty", ErrValidation)
	}

	c.mu.Lock()
	created := c.ensureDepartment(name)
	c.refreshGauges()
	change := c.event(events.KindDepartmentAdded, "", name)
	c.mu.Unlock()

	if !created {
		c.observe(opAddDepartment, metrics.StatusNoop, start)
		return false, nil
	}

	c.observe(opAddDepartment, metrics.StatusSuccess, start)
	c.initLogger(opn).DebugContext(ctx, "Department added", slog.String("department", name))
	c.publish(ctx, change)

	return true, nil
}

// RemoveDepartment removes the department and every employee in it, releasing their IDs.
// It returns the removed employee IDs in insertion order, and false if the department does
// not exist.
func (c *Company) RemoveDepartment(ctx context.Context, name string) ([]string, bool, error) {
	const opn = "Company.RemoveDepartment"
	start := time.Now()
	log := c.initLogger(opn)

	if isBlank(name) {
		c.observe(opRemoveDepartment, metrics.StatusFailure, start)
		return nil, false, fmt.Errorf("%w: department name must not be empty", ErrValidation)
	}

	c.mu.Lock()
	department, ok := c.departments[name]
	if !ok {
		c.mu.Unlock()
		c.observe(opRemoveDepartment, metrics.StatusNotFound, start)
		return nil, false, nil
	}

	removed := department.RemoveAllEmployees()
	for _, id := range removed {
		if _, indexed := c.index[id]; !indexed {
			log.WarnContext(ctx, "Employee ID missing from index during cascade",
				slog.String("employee_id", id), slog.String("department", name))
			c.countInconsistency()
			continue
		}
		delete(c.index, id)
	}
	delete(c.departments, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
	c.refreshGauges()

	changes := make([]events.Event, 0, len(removed)+1)
	for _, id := range removed {
		changes = append(changes, c.event(events.KindEmployeeRemoved, id, name))
	}
	changes = append(changes, c.event(events.KindDepartmentRemoved, "", name))
	c.mu.Unlock()

	c.observe(opRemoveDepartment, metrics.StatusSuccess, start)
	log.DebugContext(ctx, "Department removed", slog.String("department", name), slog.Int("employees", len(removed)))
	c.publish(ctx, changes...)

	return removed, true, nil
}

// AddEmployee creates the employee and files it under its department, creating the
// department first if needed. Construction errors (ErrValidation, ErrDuplicateID) are
// returned unchanged and leave no employee state behind; an auto-created department stays.
func (c *Company) AddEmployee(ctx context.Context, name, id, title, department string) (models.Employee, error) {
	const opn = "Company.AddEmployee"
	start := time.Now()
	log := c.initLogger(opn)

	c.mu.Lock()
	created := false
	if !isBlank(department) {
		created = c.ensureDepartment(department)
	}

	var changes []events.Event
	if created {
		changes = append(changes, c.event(events.KindDepartmentAdded, "", department))
	}

	employee, err := NewEmployee(c.registry, name, id, title, department)
	if err == nil {
		c.departments[department].AddEmployee(employee)
		c.index[id] = department
		changes = append(changes, c.event(events.KindEmployeeAdded, id, department))
	}
	c.refreshGauges()
	c.mu.Unlock()

	if created {
		c.observe(opAddDepartment, metrics.StatusSuccess, start)
	}

	if err != nil {
		c.observe(opAddEmployee, metrics.StatusFailure, start)
		log.DebugContext(ctx, "Employee rejected", slog.String("employee_id", id), sl.Err(err))
		c.publish(ctx, changes...)
		return models.Employee{}, err
	}

	c.observe(opAddEmployee, metrics.StatusSuccess, start)
	log.DebugContext(ctx, "Employee added", slog.String("employee_id", id), slog.String("department", department))
	c.publish(ctx, changes...)

	return employee.Record(), nil
}

// RemoveEmployee removes the employee from its department and from the index, releasing
// its ID. It returns false if no live employee has the ID.
func (c *Company) RemoveEmployee(ctx context.Context, id string) (bool, error) {
	const opn = "Company.RemoveEmployee"
	start := time.Now()
	log := c.initLogger(opn)

	if isBlank(id) {
		c.observe(opRemoveEmployee, metrics.StatusFailure, start)
		return false, fmt.Errorf("%w: employee ID must not be empty", ErrValidation)
	}

	c.mu.Lock()
	name, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		c.observe(opRemoveEmployee, metrics.StatusNotFound, start)
		return false, nil
	}

	department, ok := c.departments[name]
	if !ok || !department.RemoveEmployee(id) {
		// stale index entry: drop it so the ID can be reused
		delete(c.index, id)
		c.registry.Release(id)
		c.countInconsistency()
		c.refreshGauges()
		c.mu.Unlock()

		log.WarnContext(ctx, "Index pointed at a department that does not hold the employee",
			slog.String("employee_id", id), slog.String("department", name))
		c.observe(opRemoveEmployee, metrics.StatusNotFound, start)

		return false, nil
	}
	delete(c.index, id)
	c.refreshGauges()
	change := c.event(events.KindEmployeeRemoved, id, name)
	c.mu.Unlock()

	c.observe(opRemoveEmployee, metrics.StatusSuccess, start)
	log.DebugContext(ctx, "Employee removed", slog.String("employee_id", id), slog.String("department", name))
	c.publish(ctx, change)

	return true, nil
}

// GetDepartment returns a detached copy of the named department.
func (c *Company) GetDepartment(name string) (models.Department, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	department, ok := c.departments[name]
	if !ok {
		return models.Department{}, false
	}

	return department.Record(), true
}

// FindEmployee looks an employee up by ID.
func (c *Company) FindEmployee(id string) (models.Employee, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	department, ok := c.departments[c.index[id]]
	if !ok {
		return models.Employee{}, false
	}
	employee, ok := department.Employee(id)
	if !ok {
		return models.Employee{}, false
	}

	return employee.Record(), true
}

// ListDepartments yields a summary of every department in creation order.
func (c *Company) ListDepartments() iter.Seq[string] {
	return func(yield func(string) bool) {
		c.mu.RLock()
		summaries := make([]string, 0, len(c.order))
		for _, name := range c.order {
			summaries = append(summaries, c.departments[name].String())
		}
		c.mu.RUnlock()

		for _, summary := range summaries {
			if !yield(summary) {
				return
			}
		}
	}
}

// ListEmployees yields the employee descriptions of one department. It returns false if
// the department does not exist.
func (c *Company) ListEmployees(name string) (iter.Seq[string], bool) {
	c.mu.RLock()
	_, ok := c.departments[name]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	return func(yield func(string) bool) {
		c.mu.RLock()
		var descriptions []string
		if department, exists := c.departments[name]; exists {
			descriptions = slices.Collect(department.ListEmployees())
		}
		c.mu.RUnlock()

		for _, description := range descriptions {
			if !yield(description) {
				return
			}
		}
	}, true
}

// ListAllEmployees yields every employee description, department by department.
func (c *Company) ListAllEmployees() iter.Seq[string] {
	return func(yield func(string) bool) {
		c.mu.RLock()
		var descriptions []string
		for _, name := range c.order {
			descriptions = slices.AppendSeq(descriptions, c.departments[name].ListEmployees())
		}
		c.mu.RUnlock()

		for _, description := range descriptions {
			if !yield(description) {
				return
			}
		}
	}
}

// Stats returns the number of departments and employees.
func (c *Company) Stats() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.departments), len(c.index)
}

// Verify checks that the registry, the index and the departments agree.
func (c *Company) Verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var problems []string
	holder := make(map[string]string)

	if len(c.order) != len(c.departments) {
		problems = append(problems,
			fmt.Sprintf("%d departments ordered but %d stored", len(c.order), len(c.departments)))
	}

	for _, name := range c.order {
		department, ok := c.departments[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("department '%s' is ordered but not stored", name))
			continue
		}
		for employee := range department.Employees() {
			id := employee.ID()
			if employee.Department() != name {
				problems = append(problems,
					fmt.Sprintf("employee '%s' names department '%s' but is held by '%s'", id, employee.Department(), name))
			}
			if other, dup := holder[id]; dup {
				problems = append(problems, fmt.Sprintf("employee '%s' is held by '%s' and '%s'", id, other, name))
			}
			holder[id] = name
			if indexed, ok := c.index[id]; !ok || indexed != name {
				problems = append(problems, fmt.Sprintf("employee '%s' is not indexed under '%s'", id, name))
			}
			if !c.registry.Contains(id) {
				problems = append(problems, fmt.Sprintf("employee '%s' is not registered", id))
			}
		}
	}

	for _, id := range slices.Sorted(maps.Keys(c.index)) {
		if _, held := holder[id]; !held {
			problems = append(problems, fmt.Sprintf("index entry '%s' points at '%s' which does not hold it", id, c.index[id]))
		}
	}
	for _, id := range c.registry.IDs() {
		if _, held := holder[id]; !held {
			problems = append(problems, fmt.Sprintf("registered ID '%s' has no employee", id))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInconsistent, strings.Join(problems, "; "))
	}

	return nil
}

// ensureDepartment creates the department if it is missing. Callers hold mu.
func (c *Company) ensureDepartment(name string) bool {
	if _, ok := c.departments[name]; ok {
		return false
	}
	c.departments[name] = NewDepartment(name, c.log)
	c.order = append(c.order, name)

	return true
}

// refreshGauges publishes the current sizes. Callers hold mu.
func (c *Company) refreshGauges() {
	if c.metrics == nil {
		return
	}
	c.metrics.Departments.Set(float64(len(c.departments)))
	c.metrics.Employees.Set(float64(len(c.index)))
}

func (c *Company) countInconsistency() {
	if c.metrics == nil {
		return
	}
	c.metrics.ConsistencyWarnings.Inc()
}

func (c *Company) observe(operation, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Operations.WithLabelValues(operation, status).Inc()
	c.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// event stamps a change. Callers hold mu, so timestamps follow commit order.
func (c *Company) event(kind events.Kind, employeeID, department string) events.Event {
	return events.Event{
		Kind:       kind,
		EmployeeID: employeeID,
		Department: department,
		OccurredAt: c.now(),
	}
}

// publish delivers committed changes. Delivery failures are logged; the in-memory state
// stays authoritative. Concurrent writers may deliver out of commit order; OccurredAt
// carries the commit order.
func (c *Company) publish(ctx context.Context, changes ...events.Event) {
	if c.dispatcher == nil {
		return
	}
	for _, change := range changes {
		if err := c.dispatcher.Publish(ctx, change); err != nil {
			c.initLogger("Company.publish").WarnContext(ctx, "Failed to deliver change event",
				slog.String("kind", string(change.Kind)), sl.Err(err))
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
