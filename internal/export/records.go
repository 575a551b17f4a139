// Package export flattens ledgers into records and spreadsheet workbooks.
package export

import (
	"github.com/shopspring/decimal"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/types"
)

// Record is the allocation of one task in one month.
type Record struct {
	WorkPackageID   string          `json:"workPackageId" example:"WP1"`
	WorkPackageName string          `json:"workPackageName" example:"Research"`
	TaskID          string          `json:"taskId" example:"T1.1"`
	TaskName        string          `json:"taskName" example:"Literature review"`
	Month           types.Month     `json:"month" example:"0"`         // Month index, 0 is January
	MonthName       string          `json:"monthName" example:"Jan"`   // Three letter month abbreviation
	Allocation      decimal.Decimal `json:"allocation" example:"0.25"` // Allocated fraction of full-time capacity
}

// Records returns one record per work package, task and month.
//
// Records are ordered by work package, then task, then month.
func Records(l *ledger.Ledger) []Record {
	entries := l.Entries()
	records := make([]Record, 0, len(entries)*ledger.Months)

	for _, e := range entries {
		for m, v := range e.Months {
			month := types.Month(m)
			records = append(records, Record{
				WorkPackageID:   e.WorkPackageID,
				WorkPackageName: e.WorkPackageName,
				TaskID:          e.TaskID,
				TaskName:        e.TaskName,
				Month:           month,
				MonthName:       month.String(),
				Allocation:      v,
			})
		}
	}

	return records
}

// cells returns the values of a record as spreadsheet row.
func (r Record) cells(year int) []any {
	return []any{
		r.WorkPackageID,
		r.WorkPackageName,
		r.TaskID,
		r.TaskName,
		r.Month.In(year),
		r.Allocation.InexactFloat64(),
	}
}
