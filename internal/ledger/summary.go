package ledger

import "github.com/shopspring/decimal"

// MonthSummary contains the derived values for one month.
type MonthSummary struct {
	Month       int             `json:"month" example:"0"`                // Month index, 0 is January
	Target      decimal.Decimal `json:"target" example:"0.8"`             // Target capacity
	Allocated   decimal.Decimal `json:"allocated" example:"0.5"`          // Sum of all allocations
	Available   decimal.Decimal `json:"available" example:"0.3"`          // Target minus allocated. Negative when over-allocated
	Utilization decimal.Decimal `json:"utilization" example:"62.5"`       // Allocated in percent of the target, 0 if the target is 0
	Status      Status          `json:"status" example:"low-utilization"` // Status band of the utilization
	Severity    Severity        `json:"severity" example:"critical"`      // Severity tier of the status
}

// TaskSummary contains the allocations of one task.
type TaskSummary struct {
	ID     string          `json:"id" example:"T1.1"`
	Name   string          `json:"name" example:"Literature review"`
	Months Monthly         `json:"months"`              // Allocation per month
	Total  decimal.Decimal `json:"total" example:"3.5"` // Sum over the year
}

// WorkPackageSummary contains the subtotals of one work package.
type WorkPackageSummary struct {
	ID     string          `json:"id" example:"WP1"`
	Name   string          `json:"name" example:"Research"`
	Months Monthly         `json:"months"`              // Subtotal per month
	Total  decimal.Decimal `json:"total" example:"5.2"` // Sum over the year
	Tasks  []TaskSummary   `json:"tasks"`
}

// Summary is the complete derived view of a ledger.
type Summary struct {
	Revision           uint64               `json:"revision" example:"4"`
	Months             [Months]MonthSummary `json:"months"`
	WorkPackages       []WorkPackageSummary `json:"workPackages"`
	YearTotal          decimal.Decimal      `json:"yearTotal" example:"7.9"`
	YearTarget         decimal.Decimal      `json:"yearTarget" example:"9.6"`
	AverageUtilization decimal.Decimal      `json:"averageUtilization" example:"82.29"` // Mean of the monthly utilization values
	Quarters           [4]decimal.Decimal   `json:"quarters"`                           // Mean utilization per quarter
}

// Month returns the summary for a single month.
//
// The month must be between 0 and 11.
func (l *Ledger) Month(month int) MonthSummary {
	total := l.MonthlyTotal(month)
	target := l.targets[month]
	u := utilization(total, target)
	status := Classify(u)

	return MonthSummary{
		Month:       month,
		Target:      target,
		Allocated:   total,
		Available:   target.Sub(total),
		Utilization: u,
		Status:      status,
		Severity:    status.Severity(),
	}
}

// Summary computes all derived values.
func (l *Ledger) Summary() Summary {
	s := Summary{
		Revision:           l.revision,
		YearTotal:          l.YearTotal(),
		YearTarget:         l.YearTarget(),
		AverageUtilization: l.AverageUtilization(),
		WorkPackages:       make([]WorkPackageSummary, 0, len(l.workPackages)),
	}

	for m := 0; m < Months; m++ {
		s.Months[m] = l.Month(m)
	}

	for q := range s.Quarters {
		s.Quarters[q] = l.AverageUtilizationOf(q*3, q*3+1, q*3+2)
	}

	for i, wp := range l.workPackages {
		ws := WorkPackageSummary{
			ID:    wp.ID,
			Name:  wp.Name,
			Tasks: make([]TaskSummary, 0, len(wp.Tasks)),
		}

		for m := 0; m < Months; m++ {
			ws.Months[m] = l.WorkPackageSubtotal(i, m)
		}
		ws.Total = ws.Months.Sum()

		for _, t := range wp.Tasks {
			ws.Tasks = append(ws.Tasks, TaskSummary{
				ID:     t.TaskID,
				Name:   t.TaskName,
				Months: t.Months,
				Total:  t.Months.Sum(),
			})
		}

		s.WorkPackages = append(s.WorkPackages, ws)
	}

	return s
}
