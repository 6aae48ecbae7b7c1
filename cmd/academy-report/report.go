package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/phrazzld/academy-api/internal/domain"
	"github.com/phrazzld/academy-api/internal/rules"
)

// reportRow is one session line of the occupancy report.
type reportRow struct {
	Course    string
	Session   string
	StartDate string
	Seats     int
	Attendees int
	Taken     float64
	Archived  bool
	Warning   *domain.Warning
}

// buildRows pairs sessions with their course names, ordered by course name
// and then by the session order of the store.
func buildRows(ctx context.Context, courses []*domain.Course, sessions []*domain.Session) []reportRow {
	names := make(map[string]string, len(courses))
	for _, c := range courses {
		names[c.ID.String()] = c.Name
	}

	rows := make([]reportRow, 0, len(sessions))
	for _, s := range sessions {
		course, ok := names[s.CourseID.String()]
		if !ok {
			continue
		}
		s.ComputeTakenSeats()
		rows = append(rows, reportRow{
			Course:    course,
			Session:   s.Name,
			StartDate: s.StartDate.Format("2006-01-02"),
			Seats:     s.Seats,
			Attendees: len(s.AttendeeIDs),
			Taken:     s.TakenSeats,
			Archived:  !s.Active,
			Warning:   rules.CapacityWarning(ctx, s),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Course < rows[j].Course
	})
	return rows
}

// renderReport writes rows as a table followed by the warnings they raised.
func renderReport(w io.Writer, rows []reportRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No sessions found.")
		return
	}

	warn := color.New(color.FgYellow).SprintFunc()
	muted := color.New(color.Faint).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Course", "Session", "Start", "Seats", "Attendees", "Taken %"})
	table.SetAutoWrapText(false)

	var warnings []string
	for _, row := range rows {
		cells := []string{
			row.Course,
			row.Session,
			row.StartDate,
			strconv.Itoa(row.Seats),
			strconv.Itoa(row.Attendees),
			strconv.FormatFloat(row.Taken, 'f', 2, 64),
		}
		switch {
		case row.Warning != nil:
			for i := range cells {
				cells[i] = warn(cells[i])
			}
			warnings = append(warnings, fmt.Sprintf("%s / %s: %s. %s",
				row.Course, row.Session, row.Warning.Title, row.Warning.Message))
		case row.Archived:
			for i := range cells {
				cells[i] = muted(cells[i])
			}
		}
		table.Append(cells)
	}
	table.Render()

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = color.New(color.FgYellow, color.Bold).Fprintf(w, "%d session(s) need attention\n", len(warnings))
		for _, msg := range warnings {
			_, _ = fmt.Fprintln(w, "  - "+msg)
		}
	}
}
