package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/parser"
	"github.com/UnknownOlympus/hestia/internal/roster"
)

func (c *Console) addEmployee(ctx context.Context) error {
	var fields [4]string
	for idx, label := range []string{
		"Enter employee name: ",
		"Enter employee ID: ",
		"Enter employee title: ",
		"Enter employee department: ",
	} {
		value, err := c.prompt(ctx, label)
		if err != nil {
			return err
		}
		fields[idx] = value
	}

	if _, err := c.company.AddEmployee(ctx, fields[0], fields[1], fields[2], fields[3]); err != nil {
		c.reportError(ctx, "Console.addEmployee", err)
		return nil
	}
	c.println("Employee added successfully.")

	return nil
}

func (c *Console) removeEmployee(ctx context.Context) error {
	id, err := c.prompt(ctx, "Enter employee ID to remove: ")
	if err != nil {
		return err
	}

	removed, err := c.company.RemoveEmployee(ctx, id)
	switch {
	case err != nil:
		c.reportError(ctx, "Console.removeEmployee", err)
	case removed:
		c.printf("Employee with ID %s removed successfully.\n", id)
	default:
		c.printf("Employee with ID %s not found.\n", id)
	}

	return nil
}

func (c *Console) listEmployees(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter department name: ")
	if err != nil {
		return err
	}

	employees, ok := c.company.ListEmployees(name)
	if !ok {
		c.printf("Department '%s' not found.\n", name)
		return nil
	}

	c.printf("Employees in %s department:\n", name)
	for description := range employees {
		c.println(description)
	}

	return nil
}

func (c *Console) addDepartment(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter department name to add: ")
	if err != nil {
		return err
	}

	added, err := c.company.AddDepartment(ctx, name)
	switch {
	case err != nil:
		c.reportError(ctx, "Console.addDepartment", err)
	case added:
		c.printf("Department '%s' added successfully.\n", name)
	default:
		c.printf("Department '%s' already exists.\n", name)
	}

	return nil
}

func (c *Console) removeDepartment(ctx context.Context) error {
	name, err := c.prompt(ctx, "Enter department name to remove: ")
	if err != nil {
		return err
	}

	removed, ok, err := c.company.RemoveDepartment(ctx, name)
	switch {
	case err != nil:
		c.reportError(ctx, "Console.removeDepartment", err)
	case ok:
		c.printf("Department '%s' removed successfully.\n", name)
		if len(removed) > 0 {
			c.printf("Removed %d employee(s).\n", len(removed))
		}
	default:
		c.printf("Department '%s' not found.\n", name)
	}

	return nil
}

func (c *Console) displayDepartments() {
	c.println("List of Departments:")
	for summary := range c.company.ListDepartments() {
		c.println(summary)
	}
}

func (c *Console) displayAllEmployees() {
	c.println("All Employees:")

	var count int
	for description := range c.company.ListAllEmployees() {
		c.println(description)
		count++
	}
	if count == 0 {
		c.println("No employees.")
	}
}

// importRoster adds every row of an HTML roster read from a file or an http(s) URL.
// Rejected rows are reported one by one and do not stop the import.
func (c *Console) importRoster(ctx context.Context) error {
	const opn = "Console.importRoster"

	source, err := c.prompt(ctx, "Enter path or URL of HTML roster: ")
	if err != nil {
		return err
	}

	var employees []models.Employee
	if parser.IsRosterURL(source) {
		employees, err = parser.FetchRoster(ctx, c.http, source, c.metrics)
	} else {
		employees, err = parser.ParseRosterFile(source, c.metrics)
	}
	if err != nil {
		c.reportError(ctx, opn, err)
		return nil
	}

	var imported int
	for idx, employee := range employees {
		_, err = c.company.AddEmployee(ctx, employee.Name, employee.ID, employee.Title, employee.Department)
		if err != nil {
			c.printf("Row %d (ID '%s'): Error: %v.\n", idx+1, employee.ID, err)
			continue
		}
		imported++
	}

	c.printf("Imported %d of %d employees.\n", imported, len(employees))
	c.initLogger(opn).InfoContext(ctx, "Roster imported",
		slog.String("source", source), slog.Int("imported", imported), slog.Int("rows", len(employees)))

	return nil
}

// reportError prints a rejected operation. Validation and duplicate errors are expected
// user mistakes; anything else is logged as well.
func (c *Console) reportError(ctx context.Context, opn string, err error) {
	c.printf("Error: %v.\n", err)

	if errors.Is(err, roster.ErrValidation) || errors.Is(err, roster.ErrDuplicateID) {
		return
	}
	c.initLogger(opn).WarnContext(ctx, "Operation failed", sl.Err(err))
}
