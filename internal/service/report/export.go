package report

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Monthly Hours"

var workbookColumns = []struct {
	header string
	width  float64
}{
	{"Employee ID", 38},
	{"Name", 28},
	{"Regular Hours", 15},
	{"Overtime Hours", 15},
	{"Personal Leave Hours", 20},
	{"Sick Leave Hours", 17},
}

// BuildMonthlyHoursWorkbook renders the report as a single-sheet xlsx workbook.
func BuildMonthlyHoursWorkbook(r report.MonthlyHoursReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F6B4F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}
	oneDecimalFormat := "0.0"
	hoursStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &oneDecimalFormat})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	title := fmt.Sprintf("Work hours %s to %s", r.PeriodStart, r.PeriodEnd)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	const headerRow = 3
	for i, col := range workbookColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, col.header); err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, name, name, col.width)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(workbookColumns), headerRow)
	_ = f.SetCellStyle(sheetName, first, last, headerStyle)

	for i, row := range r.Rows {
		rowNum := headerRow + 1 + i
		values := []interface{}{
			row.EmployeeID,
			row.Name,
			hoursValue(row.Hours),
			hoursValue(row.OvertimeHours),
			hoursValue(row.PersonalLeaveHours),
			hoursValue(row.SickLeaveHours),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
		}
		from, _ := excelize.CoordinatesToCellName(3, rowNum)
		to, _ := excelize.CoordinatesToCellName(len(workbookColumns), rowNum)
		_ = f.SetCellStyle(sheetName, from, to, hoursStyle)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// hoursValue keeps the cell numeric so spreadsheet sums work; the style shows one decimal.
func hoursValue(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
