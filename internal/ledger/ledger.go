// Package ledger implements the monthly resource allocation ledger.
//
// A Ledger holds the allocations of one resource to the tasks of one or more
// work packages, one fraction of full-time capacity per task and month, together
// with a target capacity per month. All aggregates are derived on read.
//
// A Ledger is not safe for concurrent use. Edits replace the edited work package's
// task slice instead of writing through it, so data returned by earlier reads is
// never changed by a later edit.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Entry is the allocation of a resource to one task for a year.
type Entry struct {
	WorkPackageID   string  `json:"workPackageId" yaml:"workPackageId" example:"WP1"`          // Identifies the owning work package
	WorkPackageName string  `json:"workPackageName" yaml:"workPackageName" example:"Research"` // Display name of the work package
	TaskID          string  `json:"taskId" yaml:"taskId" example:"T1.1"`                       // Identifies the task within the work package
	TaskName        string  `json:"taskName" yaml:"taskName" example:"Literature review"`      // Display name of the task
	Months          Monthly `json:"months" yaml:"-"`                                           // Allocated fraction of full-time capacity, January first
}

// WorkPackage groups the entries of one work package in insertion order.
type WorkPackage struct {
	ID    string
	Name  string
	Tasks []Entry
}

// Ledger is the aggregate root for allocations and targets.
type Ledger struct {
	workPackages []WorkPackage
	targets      Monthly
	revision     uint64
}

// New creates a ledger from entries and a target vector.
//
// Entries are grouped by work package ID in the order the work packages first
// appear. All allocations must be in [0, 1] and all targets must be non-negative.
func New(entries []Entry, targets Monthly) (*Ledger, error) {
	for i, t := range targets {
		if err := checkValue(t); err != nil {
			return nil, fmt.Errorf("target for month %d: %w", i, err)
		}
		targets[i] = normalize(t)
	}

	l := &Ledger{targets: targets}

	for i, e := range entries {
		for m, v := range e.Months {
			if err := checkValue(v); err != nil {
				return nil, fmt.Errorf("entry %d, month %d: %w", i, m, err)
			}

			if v.GreaterThan(one) {
				return nil, fmt.Errorf("entry %d, month %d: %w, got %s", i, m, ErrOutOfRange, v)
			}
		}

		idx := slices.IndexFunc(l.workPackages, func(wp WorkPackage) bool {
			return wp.ID == e.WorkPackageID
		})

		if idx == -1 {
			l.workPackages = append(l.workPackages, WorkPackage{
				ID:   e.WorkPackageID,
				Name: e.WorkPackageName,
			})
			idx = len(l.workPackages) - 1
		}

		l.workPackages[idx].Tasks = append(l.workPackages[idx].Tasks, e)
	}

	return l, nil
}

// Revision is incremented on every successful edit.
func (l *Ledger) Revision() uint64 {
	return l.revision
}

// Len returns the number of work packages.
func (l *Ledger) Len() int {
	return len(l.workPackages)
}

// TaskCount returns the number of tasks of a work package, -1 if there is
// no work package at that index.
func (l *Ledger) TaskCount(wp int) int {
	if wp < 0 || wp >= len(l.workPackages) {
		return -1
	}
	return len(l.workPackages[wp].Tasks)
}

// WorkPackages returns a copy of all work packages with their tasks.
func (l *Ledger) WorkPackages() []WorkPackage {
	out := make([]WorkPackage, 0, len(l.workPackages))
	for _, wp := range l.workPackages {
		out = append(out, WorkPackage{
			ID:    wp.ID,
			Name:  wp.Name,
			Tasks: slices.Clone(wp.Tasks),
		})
	}
	return out
}

// Entries returns all entries, grouped by work package.
func (l *Ledger) Entries() []Entry {
	var out []Entry
	for _, wp := range l.workPackages {
		out = append(out, wp.Tasks...)
	}
	return out
}

// Targets returns the target vector.
func (l *Ledger) Targets() Monthly {
	return l.targets
}

// Allocation returns a single cell.
func (l *Ledger) Allocation(wp, task, month int) (decimal.Decimal, error) {
	if err := l.checkCell(wp, task, month); err != nil {
		return decimal.Zero, err
	}
	return l.workPackages[wp].Tasks[task].Months[month], nil
}

func (l *Ledger) checkCell(wp, task, month int) error {
	if wp < 0 || wp >= len(l.workPackages) {
		return fmt.Errorf("%w: work package %d does not exist", ErrInvalidIndex, wp)
	}

	if task < 0 || task >= len(l.workPackages[wp].Tasks) {
		return fmt.Errorf("%w: work package %d has no task %d", ErrInvalidIndex, wp, task)
	}

	return checkMonth(month)
}

func checkMonth(month int) error {
	if month < 0 || month >= Months {
		return fmt.Errorf("%w: month must be between 0 and 11, got %d", ErrInvalidIndex, month)
	}
	return nil
}

// SetAllocation validates raw and stores it in one cell.
//
// On error, the ledger is unchanged.
func (l *Ledger) SetAllocation(wp, task, month int, raw any) error {
	if err := l.checkCell(wp, task, month); err != nil {
		return err
	}

	v, err := ParseAllocation(raw)
	if err != nil {
		return err
	}

	tasks := slices.Clone(l.workPackages[wp].Tasks)
	tasks[task].Months[month] = v

	workPackages := slices.Clone(l.workPackages)
	workPackages[wp].Tasks = tasks
	l.workPackages = workPackages

	l.revision++
	return nil
}

// SetTarget validates raw and stores it as the target for a month.
//
// On error, the ledger is unchanged.
func (l *Ledger) SetTarget(month int, raw any) error {
	if err := checkMonth(month); err != nil {
		return err
	}

	v, err := ParseTarget(raw)
	if err != nil {
		return err
	}

	l.targets[month] = v
	l.revision++
	return nil
}

// MonthlyTotal is the sum of all allocations in a month.
//
// The month must be between 0 and 11.
func (l *Ledger) MonthlyTotal(month int) decimal.Decimal {
	total := decimal.Zero
	for wp := range l.workPackages {
		total = total.Add(l.WorkPackageSubtotal(wp, month))
	}
	return total
}

// MonthlyAvailable is the target minus the total allocation for a month.
// It is negative when the month is over-allocated.
func (l *Ledger) MonthlyAvailable(month int) decimal.Decimal {
	return l.targets[month].Sub(l.MonthlyTotal(month))
}

// MonthlyUtilization is the total allocation in percent of the target.
// It is 0 for months with a target of 0.
func (l *Ledger) MonthlyUtilization(month int) decimal.Decimal {
	return utilization(l.MonthlyTotal(month), l.targets[month])
}

func utilization(total, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return total.Mul(hundred).Div(target)
}

// WorkPackageSubtotal is the sum of the allocations of one work package's tasks
// in a month. It is 0 for unknown work packages.
func (l *Ledger) WorkPackageSubtotal(wp, month int) decimal.Decimal {
	if wp < 0 || wp >= len(l.workPackages) {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, t := range l.workPackages[wp].Tasks {
		total = total.Add(t.Months[month])
	}
	return total
}

// YearTotal is the sum of all monthly totals.
func (l *Ledger) YearTotal() decimal.Decimal {
	total := decimal.Zero
	for m := 0; m < Months; m++ {
		total = total.Add(l.MonthlyTotal(m))
	}
	return total
}

// YearTarget is the sum of all monthly targets.
func (l *Ledger) YearTarget() decimal.Decimal {
	return l.targets.Sum()
}

// AverageUtilization is the mean of the twelve monthly utilization values.
//
// Every month weighs the same, regardless of its target.
func (l *Ledger) AverageUtilization() decimal.Decimal {
	months := make([]int, Months)
	for i := range months {
		months[i] = i
	}
	return l.AverageUtilizationOf(months...)
}

// AverageUtilizationOf is the mean of the monthly utilization values of the
// given months. It returns 0 when no month is given.
func (l *Ledger) AverageUtilizationOf(months ...int) decimal.Decimal {
	if len(months) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(l.MonthlyUtilization(m))
	}
	return sum.Div(decimal.NewFromInt(int64(len(months))))
}
