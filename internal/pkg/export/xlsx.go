package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const headerRow = 4

// DutySummaryXLSX renders one sheet per employee with a row per calendar week
// and a period total row.
func DutySummaryXLSX(r report.DutySummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("error creating total style: %w", err)
	}

	used := make(map[string]bool)
	for i, emp := range r.Employees {
		sheet := sheetName(emp, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("error renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("error creating sheet: %w", err)
		}

		if err := writeEmployeeSheet(f, sheet, r, emp, headerStyle, totalStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEmployeeSheet(f *excelize.File, sheet string, r report.DutySummaryReport, emp report.EmployeeDutySummary, headerStyle, totalStyle int) error {
	cells := map[string]interface{}{
		"A1": "Duty Summary",
		"B1": emp.EmployeeName,
		"A2": "Employee ID",
		"B2": emp.EmployeeID,
		"A3": "Period",
		"B3": r.PeriodStart + " to " + r.PeriodEnd,
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("error writing %s: %w", cell, err)
		}
	}

	if err := setRow(f, sheet, headerRow, summaryHeaders); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, headerRow, headerRow, headerStyle); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	row := headerRow + 1
	for _, w := range emp.Weeks {
		if err := setRow(f, sheet, row, append([]string{weekLabel(w)}, summaryRow(w.Summary)...)); err != nil {
			return err
		}
		row++
	}

	if err := setRow(f, sheet, row, append([]string{"Total"}, summaryRow(emp.Period)...)); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, row, row, totalStyle); err != nil {
		return fmt.Errorf("error styling total: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 26); err != nil {
		return fmt.Errorf("error sizing columns: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
			return fmt.Errorf("error writing %s: %w", cell, err)
		}
	}
	return nil
}

// cellValue stores numeric strings as numbers so totals can be summed in Excel.
func cellValue(s string) interface{} {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")", "'", "",
)

// sheetName derives a unique Excel sheet name, at most 31 characters.
func sheetName(emp report.EmployeeDutySummary, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(emp.EmployeeName))
	if base == "" {
		base = emp.EmployeeID
	}
	base = truncateRunes(base, 31)

	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
