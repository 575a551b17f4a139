package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workload-planner/backend/internal/ledger"
	"gorm.io/gorm"
)

// Snapshot is a saved copy of a ledger.
type Snapshot struct {
	DefaultModel
	Resource string `gorm:"uniqueIndex:snapshot_resource_name"`
	Name     string `gorm:"uniqueIndex:snapshot_resource_name"`
	Note     string
	Year     int              // The year the ledger plans
	Revision uint64           // Revision of the ledger at the time of saving
	Cells    []SnapshotCell   `gorm:"constraint:OnDelete:CASCADE"`
	Targets  []SnapshotTarget `gorm:"constraint:OnDelete:CASCADE"`
}

// SnapshotCell is the allocation of one task in one month.
//
// Position is the index of the entry in the ledger's entry list.
type SnapshotCell struct {
	SnapshotID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey;autoIncrement:false"`
	Month           int       `gorm:"primaryKey;autoIncrement:false;check:month >= 0 AND month <= 11"`
	WorkPackageID   string
	WorkPackageName string
	TaskID          string
	TaskName        string
	Allocation      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// SnapshotTarget is the target for one month.
type SnapshotTarget struct {
	SnapshotID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Month      int             `gorm:"primaryKey;autoIncrement:false;check:month >= 0 AND month <= 11"`
	Target     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// NewSnapshot creates an unsaved snapshot of the ledger.
func NewSnapshot(l *ledger.Ledger, resource, name, note string, year int) Snapshot {
	s := Snapshot{
		Resource: resource,
		Name:     name,
		Note:     note,
		Year:     year,
		Revision: l.Revision(),
	}

	for i, e := range l.Entries() {
		for m, v := range e.Months {
			s.Cells = append(s.Cells, SnapshotCell{
				Position:        i,
				Month:           m,
				WorkPackageID:   e.WorkPackageID,
				WorkPackageName: e.WorkPackageName,
				TaskID:          e.TaskID,
				TaskName:        e.TaskName,
				Allocation:      v,
			})
		}
	}

	for m, v := range l.Targets() {
		s.Targets = append(s.Targets, SnapshotTarget{
			Month:  m,
			Target: v,
		})
	}

	return s
}

func (s *Snapshot) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Resource = strings.TrimSpace(s.Resource)
	s.Note = strings.TrimSpace(s.Note)

	if s.Name == "" {
		return ErrSnapshotNameEmpty
	}

	return nil
}

// Ledger rebuilds the ledger from the cells and targets.
//
// Cells and Targets must be loaded. The revision of the
// rebuilt ledger starts at zero.
func (s Snapshot) Ledger() (*ledger.Ledger, error) {
	var entries []ledger.Entry

	for _, c := range s.Cells {
		if c.Position < 0 || c.Month < 0 || c.Month >= ledger.Months {
			return nil, fmt.Errorf("%w: cell at position %d, month %d", ErrSnapshotCorrupt, c.Position, c.Month)
		}

		for len(entries) <= c.Position {
			entries = append(entries, ledger.Entry{})
		}

		e := &entries[c.Position]
		e.WorkPackageID = c.WorkPackageID
		e.WorkPackageName = c.WorkPackageName
		e.TaskID = c.TaskID
		e.TaskName = c.TaskName
		e.Months[c.Month] = c.Allocation
	}

	var targets ledger.Monthly
	for _, t := range s.Targets {
		if t.Month < 0 || t.Month >= ledger.Months {
			return nil, fmt.Errorf("%w: target for month %d", ErrSnapshotCorrupt, t.Month)
		}
		targets[t.Month] = t.Target
	}

	l, err := ledger.New(entries, targets)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}

	return l, nil
}

// WithData preloads cells and targets in a stable order.
func WithData(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("snapshot_cells.position ASC, snapshot_cells.month ASC")
		}).
		Preload("Targets", func(db *gorm.DB) *gorm.DB {
			return db.Order("snapshot_targets.month ASC")
		})
}
