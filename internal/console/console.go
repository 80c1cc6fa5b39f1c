package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/roster"
)

const rosterDownloadTimeout = 30 * time.Second

// errEndOfInput stops the menu loop when the input is exhausted or the context is done.
var errEndOfInput = errors.New("end of input")

const menu = `
Employee Management System Menu:
1. Add Employee
2. Remove Employee
3. List Employees in Department
4. Add Department
5. Remove Department
6. Display Departments
7. Display All Employees
8. Import Employees from HTML Roster
9. Quit`

type line struct {
	text string
	err  error
}

// Console is the interactive front end of a Company.
type Console struct {
	company *roster.Company
	in      io.Reader
	out     io.Writer
	log     *slog.Logger
	metrics *metrics.Metrics
	http    *http.Client

	lines chan line
}

func New(company *roster.Company, in io.Reader, out io.Writer, log *slog.Logger, m *metrics.Metrics) *Console {
	return &Console{
		company: company,
		in:      in,
		out:     out,
		log:     log,
		metrics: m,
		http:    client.CreateHTTPClient(log, rosterDownloadTimeout),
	}
}

func (c *Console) initLogger(opn string) *slog.Logger {
	return c.log.With(
		slog.String("op", opn),
		slog.String("division", "console"),
	)
}

// Run shows the menu and executes choices until Quit, end of input or ctx cancellation.
// Only a failure to read the input is returned.
func (c *Console) Run(ctx context.Context) error {
	const opn = "Console.Run"
	log := c.initLogger(opn)

	c.lines = make(chan line)
	done := make(chan struct{})
	defer close(done)
	go c.readLines(done)

	log.DebugContext(ctx, "Console started")
	for {
		c.println(menu)

		choice, err := c.prompt(ctx, "Enter your choice (1-9): ")
		if err != nil {
			return c.stop(ctx, log, err)
		}

		quit, err := c.dispatch(ctx, choice)
		if err != nil {
			return c.stop(ctx, log, err)
		}
		if quit {
			log.DebugContext(ctx, "Console stopped by user")
			return nil
		}
	}
}

func (c *Console) stop(ctx context.Context, log *slog.Logger, err error) error {
	if errors.Is(err, errEndOfInput) {
		log.DebugContext(ctx, "Console input closed")
		return nil
	}
	log.ErrorContext(ctx, "Failed to read console input", sl.Err(err))

	return fmt.Errorf("failed to read console input: %w", err)
}

// dispatch runs a single menu action. A panic inside the action is reported and swallowed.
func (c *Console) dispatch(ctx context.Context, choice string) (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.initLogger("Console.dispatch").ErrorContext(ctx, "Console action panicked",
				slog.String("choice", choice), slog.Any("panic", r))
			c.printf("Error: %v\n", r)
			quit, err = false, nil
		}
	}()

	switch choice {
	case "1":
		return false, c.addEmployee(ctx)
	case "2":
		return false, c.removeEmployee(ctx)
	case "3":
		return false, c.listEmployees(ctx)
	case "4":
		return false, c.addDepartment(ctx)
	case "5":
		return false, c.removeDepartment(ctx)
	case "6":
		c.displayDepartments()
		return false, nil
	case "7":
		c.displayAllEmployees()
		return false, nil
	case "8":
		return false, c.importRoster(ctx)
	case "9":
		c.println("Exiting Employee Management System. Goodbye!")
		return true, nil
	default:
		c.println("Invalid choice. Please enter a number between 1 and 9.")
		return false, nil
	}
}

// readLines feeds c.lines until the input is exhausted or done is closed. Lines have no
// length limit. It may stay blocked in Read after Run returns.
func (c *Console) readLines(done <-chan struct{}) {
	defer close(c.lines)

	reader := bufio.NewReader(c.in)
	for {
		text, err := reader.ReadString('\n')
		if text != "" {
			select {
			case c.lines <- line{text: text}:
			case <-done:
				return
			}
		}
		if err == nil {
			continue
		}

		if errors.Is(err, io.EOF) {
			err = errEndOfInput
		}
		select {
		case c.lines <- line{err: err}:
		case <-done:
		}

		return
	}
}

// prompt prints label and returns the next trimmed input line.
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	c.printf("%s", label)

	select {
	case <-ctx.Done():
		c.println()
		return "", errEndOfInput
	case next, ok := <-c.lines:
		if !ok {
			return "", errEndOfInput
		}
		if next.err != nil {
			c.println()
			return "", next.err
		}

		return strings.TrimSpace(next.text), nil
	}
}

func (c *Console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
