package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const dashboardSheet = "Dashboard"

// ExportExcel writes a workbook with a dashboard sheet and one sheet per assignee.
func (e *Exporter) ExportExcel(d Digest, stats Stats, filename string) error {
	path := e.path(filename)
	if err := e.ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dashboardSheet); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	if err := createDashboardSheet(f, d, stats); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	used := map[string]bool{strings.ToLower(dashboardSheet): true}
	for _, group := range d.Groups {
		sheetName := uniqueSheetName(sanitizeSheetName(group.Name), used)
		if err := createAssigneeSheet(f, sheetName, group); err != nil {
			return fmt.Errorf("failed to create sheet for %s: %w", group.Name, err)
		}
	}

	if idx, err := f.GetSheetIndex(dashboardSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
}

func createDashboardSheet(f *excelize.File, d Digest, stats Stats) error {
	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	sheet := dashboardSheet
	cells := map[string]any{
		"A1": "Window start:",
		"B1": d.Window.Start.Format(dateTimeLayout),
		"A2": "Window end:",
		"B2": d.Window.End.Format(dateTimeLayout),
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	headers := []string{"Assignee", "Issues", KindLabel(KindStatus) + " changes", KindLabel(KindComment) + "s", "Up next"}
	for col, h := range headers {
		cell := cellName(col+1, 4)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, header); err != nil {
			return err
		}
	}

	row := 5
	for _, group := range d.Groups {
		a := stats.ByAssignee[group.Name]
		values := []any{group.Name, a.Issues, a.Statuses, a.Comments, a.Ready}
		for col, v := range values {
			if err := f.SetCellValue(sheet, cellName(col+1, row), v); err != nil {
				return err
			}
		}
		row++
	}

	totals := []any{"Total", stats.Issues, stats.Statuses, stats.Comments, stats.Ready}
	for col, v := range totals {
		cell := cellName(col+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, totalStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "E", 15)
}

func createAssigneeSheet(f *excelize.File, sheet string, group AssigneeGroup) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"#", "Key", "Summary", "Timestamp", "Kind", "Author", "Content"}
	for col, h := range headers {
		cell := cellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, header); err != nil {
			return err
		}
	}

	row := 2
	for _, iu := range group.Issues {
		for _, u := range iu.Updates {
			values := []any{
				row - 1,
				iu.Issue.Key,
				iu.Issue.Summary,
				u.Timestamp.Format(JiraTimeLayout),
				KindLabel(u.Kind),
				u.Author,
				u.Content,
			}
			for col, v := range values {
				if err := f.SetCellValue(sheet, cellName(col+1, row), v); err != nil {
					return err
				}
			}
			row++
		}
	}

	if len(group.Ready) > 0 {
		row++
		if err := f.SetCellValue(sheet, cellName(2, row), "Up next"); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cellName(2, row), cellName(3, row), header); err != nil {
			return err
		}
		row++
		for _, r := range group.Ready {
			if err := f.SetCellValue(sheet, cellName(2, row), r.Key); err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cellName(3, row), r.Summary); err != nil {
				return err
			}
			row++
		}
	}

	widths := map[string]float64{"A": 5, "B": 12, "C": 40, "D": 30, "E": 12, "F": 20, "G": 60}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

func sanitizeSheetName(name string) string {
	name = strings.NewReplacer(
		"/", "-",
		"\\", "-",
		"?", "",
		"*", "",
		":", "",
		"[", "(",
		"]", ")",
	).Replace(name)

	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

// uniqueSheetName appends a counter when two assignees sanitize to the same name.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(name)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		candidate = string(r) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
