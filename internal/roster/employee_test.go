package roster_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmployee_Success(t *testing.T) {
	t.Parallel()

	registry := roster.NewIDRegistry()

	employee, err := roster.NewEmployee(registry, "Ann", "E1", "SWE", "Eng")

	require.NoError(t, err)
	assert.Equal(t, "Ann", employee.Name())
	assert.Equal(t, "E1", employee.ID())
	assert.Equal(t, "SWE", employee.Title())
	assert.Equal(t, "Eng", employee.Department())
	assert.True(t, registry.Contains("E1"))
	assert.Equal(t, models.Employee{Name: "Ann", ID: "E1", Title: "SWE", Department: "Eng"}, employee.Record())
}

func TestNewEmployee_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fields     [4]string
		wantFields string
	}{
		{name: "empty name", fields: [4]string{"", "E1", "SWE", "Eng"}, wantFields: "name"},
		{name: "empty ID", fields: [4]string{"Ann", "", "SWE", "Eng"}, wantFields: "ID"},
		{name: "empty title", fields: [4]string{"Ann", "E1", "", "Eng"}, wantFields: "title"},
		{name: "empty department", fields: [4]string{"Ann", "E1", "SWE", ""}, wantFields: "department"},
		{name: "whitespace only", fields: [4]string{"  ", "E1", "\t", "Eng"}, wantFields: "name, title"},
		{name: "everything empty", fields: [4]string{}, wantFields: "name, ID, title, department"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			registry := roster.NewIDRegistry()

			employee, err := roster.NewEmployee(registry, tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3])

			require.ErrorIs(t, err, roster.ErrValidation)
			assert.ErrorContains(t, err, "employee "+tc.wantFields+" must not be empty")
			assert.Nil(t, employee)
			assert.Equal(t, 0, registry.Len(), "failed construction must not register the ID")
		})
	}
}

func TestNewEmployee_DuplicateID(t *testing.T) {
	t.Parallel()

	registry := roster.NewIDRegistry()
	_, err := roster.NewEmployee(registry, "Ann", "E1", "SWE", "Eng")
	require.NoError(t, err)

	employee, err := roster.NewEmployee(registry, "Bob", "E1", "PM", "Eng")

	require.ErrorIs(t, err, roster.ErrDuplicateID)
	assert.Nil(t, employee)
	assert.Equal(t, 1, registry.Len())
}

func TestEmployee_Unregister(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	registry := roster.NewIDRegistry()
	employee, err := roster.NewEmployee(registry, "Ann", "E1", "SWE", "Eng")
	require.NoError(t, err)

	assert.True(t, employee.Unregister(logger))
	assert.False(t, registry.Contains("E1"))
	assert.Empty(t, logBuf.String())

	// a second release is tolerated and only logged
	assert.False(t, employee.Unregister(logger))
	assert.Contains(t, logBuf.String(), "Employee ID was not registered")
	assert.Contains(t, logBuf.String(), "employee_id=E1")
}

func TestEmployee_Describe(t *testing.T) {
	t.Parallel()

	employee, err := roster.NewEmployee(roster.NewIDRegistry(), "Ann", "E1", "SWE", "Eng")
	require.NoError(t, err)

	assert.Equal(t, "Name: Ann, ID: E1, Title: SWE, Department: Eng", employee.Describe())
	assert.Equal(t, "Ann - E1", employee.String())
}
