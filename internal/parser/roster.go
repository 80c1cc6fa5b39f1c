package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// Cell positions of a roster row.
const (
	tdName = iota
	tdID
	tdTitle
	tdDepartment
	rosterColumns
)

// ParseRoster reads employee rows from an HTML table. Every row with at least four <td>
// cells yields one employee (name, ID, title, department); other rows such as <th>
// headers are skipped. Cell text is trimmed but not validated.
func ParseRoster(in io.Reader, metric *metrics.Metrics) ([]models.Employee, error) {
	doc, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster document: %w", err)
	}

	var employees []models.Employee

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < rosterColumns {
			return
		}

		cell := func(idx int) string {
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		employees = append(employees, models.Employee{
			Name:       cell(tdName),
			ID:         cell(tdID),
			Title:      cell(tdTitle),
			Department: cell(tdDepartment),
		})
		if metric != nil {
			metric.ItemsParsed.WithLabelValues("employee").Inc()
		}
	})

	return employees, nil
}

// ParseRosterFile opens path and parses it with ParseRoster.
func ParseRosterFile(path string, metric *metrics.Metrics) ([]models.Employee, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	return ParseRoster(file, metric)
}
