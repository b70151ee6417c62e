// Package export writes the dashboard and analytics to a spreadsheet.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TelmenBay/leetlog/internal/analytics"
	"github.com/TelmenBay/leetlog/internal/journal"
)

const (
	ProblemsSheet   = "Problems"
	CategoriesSheet = "Categories"

	dateLayout = "2006-01-02"
)

var (
	problemHeaders  = []any{"ID", "Title", "Difficulty", "Status", "Best Time", "Best Seconds", "Solved At", "Readiness", "Tags"}
	categoryHeaders = []any{"Group", "Category", "Score", "Problems"}
)

// WriteXLSX writes views and sum to a new workbook at path.
func WriteXLSX(path string, views []journal.UserProblemView, sum *analytics.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProblemsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CategoriesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeProblems(f, views, bold); err != nil {
		return err
	}
	if err := writeCategories(f, sum, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeProblems(f *excelize.File, views []journal.UserProblemView, headerStyle int) error {
	if err := writeRow(f, ProblemsSheet, 1, problemHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(ProblemsSheet, "A1", "I1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, v := range views {
		var secs, solvedAt any
		if v.TimeSpent != nil {
			secs = *v.TimeSpent
		}
		if v.SolvedAt != nil {
			solvedAt = v.SolvedAt.Format(dateLayout)
		}
		row := []any{
			v.ID,
			v.Problem.Title,
			string(v.Problem.Difficulty),
			string(v.Status),
			v.BestTime,
			secs,
			solvedAt,
			v.Readiness.String(),
			strings.Join(v.Problem.Tags, ", "),
		}
		if err := writeRow(f, ProblemsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ProblemsSheet, "B", "B", 40); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	return f.SetColWidth(ProblemsSheet, "I", "I", 50)
}

func writeCategories(f *excelize.File, sum *analytics.Summary, headerStyle int) error {
	if err := writeRow(f, CategoriesSheet, 1, categoryHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(CategoriesSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, scores := range [][]analytics.CategoryScore{sum.DataStructures, sum.Algorithms} {
		for _, c := range scores {
			vals := []any{analytics.GroupDisplayName(c.Group), c.Category, c.Score, c.Count}
			if err := writeRow(f, CategoriesSheet, row, vals); err != nil {
				return err
			}
			row++
		}
	}

	gpaRow := row + 1
	if err := writeRow(f, CategoriesSheet, gpaRow, []any{"GPA", "", sum.GPA}); err != nil {
		return err
	}
	cell, _ := excelize.CoordinatesToCellName(1, gpaRow)
	if err := f.SetCellStyle(CategoriesSheet, cell, cell, headerStyle); err != nil {
		return fmt.Errorf("style gpa: %w", err)
	}
	return f.SetColWidth(CategoriesSheet, "A", "B", 24)
}

func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
