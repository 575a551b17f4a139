package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/types"
	"github.com/xuri/excelize/v2"
)

const (
	GridSheet    = "Allocations"
	RecordsSheet = "Records"

	// ContentType is the MIME type of XLSX workbooks.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Meta describes the ledger in the workbook.
type Meta struct {
	Resource string
	Year     int
}

// Filename returns the suggested file name for the workbook.
func (m Meta) Filename() string {
	if m.Resource == "" {
		return fmt.Sprintf("allocations-%d.xlsx", m.Year)
	}
	return fmt.Sprintf("allocations-%s-%d.xlsx", m.Resource, m.Year)
}

// Workbook builds an XLSX workbook for the ledger.
//
// The grid sheet has one row per task and one column per month, a subtotal
// row after each work package and rows for totals, targets, available
// capacity, utilization and status. The records sheet contains Records(l).
func Workbook(l *ledger.Ledger, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", GridSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeGrid(f, l, meta); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(RecordsSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRecords(f, l, meta); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeGrid(f *excelize.File, l *ledger.Ledger, meta Meta) error {
	rows := [][]any{
		{fmt.Sprintf("%s %d", meta.Resource, meta.Year)},
		header("Work package", "Task"),
	}

	for i, wp := range l.WorkPackages() {
		for _, t := range wp.Tasks {
			rows = append(rows, monthRow(wp.Name, t.TaskName, t.Months))
		}

		var subtotal ledger.Monthly
		for m := range subtotal {
			subtotal[m] = l.WorkPackageSubtotal(i, m)
		}
		rows = append(rows, monthRow(wp.Name, "Subtotal", subtotal))
	}

	summary := l.Summary()
	var total, target, available, utilization ledger.Monthly
	status := []any{"", "Status"}
	for m, ms := range summary.Months {
		total[m] = ms.Allocated
		target[m] = ms.Target
		available[m] = ms.Available
		utilization[m] = ms.Utilization
		status = append(status, string(ms.Status))
	}

	rows = append(rows,
		[]any{},
		monthRow("", "Total", total),
		monthRow("", "Target", target),
		monthRow("", "Available", available),
		append(monthCells("", "Utilization %", utilization), summary.AverageUtilization.Round(2).InexactFloat64()),
		status,
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(GridSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetPanes(GridSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      2,
		TopLeftCell: "C3",
		ActivePane:  "bottomRight",
	})
}

func writeRecords(f *excelize.File, l *ledger.Ledger, meta Meta) error {
	headings := []any{"Work package ID", "Work package", "Task ID", "Task", "Month", "Allocation"}
	if err := f.SetSheetRow(RecordsSheet, "A1", &headings); err != nil {
		return err
	}

	for i, r := range Records(l) {
		cells := r.cells(meta.Year)
		if err := f.SetSheetRow(RecordsSheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}

	return nil
}

// header returns the heading row for the grid sheet.
func header(first, second string) []any {
	row := []any{first, second}
	for m := types.Month(0); m.Valid(); m++ {
		row = append(row, m.String())
	}
	return append(row, "Total")
}

func monthCells(first, second string, values ledger.Monthly) []any {
	row := []any{first, second}
	for _, v := range values {
		row = append(row, round(v))
	}
	return row
}

// monthRow is monthCells with the sum of all months appended.
func monthRow(first, second string, values ledger.Monthly) []any {
	return append(monthCells(first, second, values), round(values.Sum()))
}

func round(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}
