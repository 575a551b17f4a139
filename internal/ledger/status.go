package ledger

import "github.com/shopspring/decimal"

// swagger:enum Status
type Status string

const (
	StatusBalanced       Status = "balanced"
	StatusOverAllocated  Status = "over-allocated"
	StatusUnderTarget    Status = "under-target-warning"
	StatusLowUtilization Status = "low-utilization"
)

// swagger:enum Severity
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

var (
	overAllocatedFrom = decimal.NewFromInt(105)
	balancedAbove     = decimal.NewFromInt(95)
	warningFrom       = decimal.NewFromInt(80)
)

// Classify returns the status band for a utilization in percent.
//
//	>= 105     over-allocated
//	(95, 105)  balanced
//	[80, 95]   under-target-warning
//	< 80       low-utilization
func Classify(utilization decimal.Decimal) Status {
	switch {
	case utilization.GreaterThanOrEqual(overAllocatedFrom):
		return StatusOverAllocated
	case utilization.GreaterThan(balancedAbove):
		return StatusBalanced
	case utilization.GreaterThanOrEqual(warningFrom):
		return StatusUnderTarget
	default:
		return StatusLowUtilization
	}
}

// Severity returns the severity tier of a status. Low utilization is
// in the same tier as over-allocation.
func (s Status) Severity() Severity {
	switch s {
	case StatusBalanced:
		return SeverityOK
	case StatusUnderTarget:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}
