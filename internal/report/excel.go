package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
)

const timesheetSheet = "Approved Timesheets"

var timesheetHeader = []string{
	"Date", "Student ID", "Project ID", "Login", "Logout",
	"Break Minutes", "Total Hours", "Earnings", "Approved By",
}

// TimesheetRow is one line of the export; ids are pre-rendered so the
// builder stays independent of the persistence layer.
type TimesheetRow struct {
	StudentID string
	ProjectID string
	Timesheet model.Timesheet
}

// BuildTimesheetReport renders approved timesheets as an XLSX workbook:
// a header row, one row per session, and a totals row.
func BuildTimesheetReport(rows []TimesheetRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(timesheetSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, title := range timesheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(timesheetSheet, cell, title); err != nil {
			return nil, err
		}
	}

	var totalHours, totalEarnings float64
	for i, row := range rows {
		ts := row.Timesheet
		logout := ""
		if ts.LogoutTime != nil {
			logout = ts.LogoutTime.Format(time.RFC3339)
		}
		approvedBy := ""
		if ts.ApprovedBy != nil {
			approvedBy = ts.ApprovedBy.Hex()
		}

		values := []interface{}{
			ts.Date.Format("2006-01-02"),
			row.StudentID,
			row.ProjectID,
			ts.LoginTime.Format(time.RFC3339),
			logout,
			ts.BreakMinutes(),
			ts.TotalHours,
			ts.Earnings,
			approvedBy,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(timesheetSheet, cell, v); err != nil {
				return nil, err
			}
		}

		totalHours += ts.TotalHours
		totalEarnings += ts.Earnings
	}

	totalsRow := len(rows) + 2
	totals := map[int]interface{}{
		1: "Total",
		7: totalHours,
		8: totalEarnings,
	}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col, totalsRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(timesheetSheet, cell, v); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}
