package v1

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workload-planner/backend/internal/export"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/types"
)

// URICell identifies one allocation cell of a ledger.
type URICell struct {
	WorkPackage int         `uri:"workPackage" example:"0"` // Index of the work package
	Task        int         `uri:"task" example:"1"`        // Index of the task in the work package
	Month       types.Month `uri:"month" example:"jan"`     // Month index from 0 to 11, month name or YYYY-MM
}

// URIMonth identifies one month of a ledger.
type URIMonth struct {
	Month types.Month `uri:"month" example:"2025-03"` // Month index from 0 to 11, month name or YYYY-MM
}

// ValueEdit is the body for allocation and target edits.
type ValueEdit struct {
	Value any `json:"value" swaggertype:"string" example:"0.25"` // A number or a numeric string. Empty means 0
}

// EntryCreate is one task row of a new ledger.
type EntryCreate struct {
	WorkPackageID   string `json:"workPackageId" yaml:"workPackageId" binding:"required" example:"WP1"`
	WorkPackageName string `json:"workPackageName" yaml:"workPackageName" example:"Research"`
	TaskID          string `json:"taskId" yaml:"taskId" binding:"required" example:"T1.1"`
	TaskName        string `json:"taskName" yaml:"taskName" example:"Literature review"`
	Months          []any  `json:"months" yaml:"months" swaggertype:"array,string" example:"0.5,0.5,0.25"` // Up to twelve allocations, January first. Missing months are 0
}

// LedgerCreate is the definition of a new ledger.
type LedgerCreate struct {
	Resource string        `json:"resource" yaml:"resource" binding:"required" example:"Jane Doe"`          // The person or team whose capacity is planned
	Year     int           `json:"year" yaml:"year" binding:"min=1900,max=9999" example:"2025"`             // The planned year
	Targets  []any         `json:"targets" yaml:"targets" swaggertype:"array,string" example:"0.8,0.8,0.5"` // Up to twelve targets. If omitted or empty, every month uses the default target
	Entries  []EntryCreate `json:"entries" yaml:"entries" binding:"dive"`
}

// Ledger builds the ledger the definition describes.
func (lc LedgerCreate) Ledger(defaultTarget ledger.Monthly) (*ledger.Ledger, error) {
	targets := defaultTarget
	if len(lc.Targets) > 0 {
		var err error
		targets, err = ledger.ParseTargets(lc.Targets)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]ledger.Entry, 0, len(lc.Entries))
	for i, e := range lc.Entries {
		months, err := ledger.ParseAllocations(e.Months)
		if err != nil {
			return nil, entryError(i, err)
		}

		entries = append(entries, ledger.Entry{
			WorkPackageID:   e.WorkPackageID,
			WorkPackageName: e.WorkPackageName,
			TaskID:          e.TaskID,
			TaskName:        e.TaskName,
			Months:          months,
		})
	}

	return ledger.New(entries, targets)
}

func entryError(i int, err error) error {
	return fmt.Errorf("entry %d: %w", i, err)
}

// Ledger is the API representation of a ledger session.
type Ledger struct {
	ID        uuid.UUID      `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Resource  string         `json:"resource" example:"Jane Doe"`
	Year      int            `json:"year" example:"2025"`
	CreatedAt time.Time      `json:"createdAt" example:"2025-04-02T19:28:44.491514Z"`
	Revision  uint64         `json:"revision" example:"3"` // Incremented on every accepted edit
	Entries   []ledger.Entry `json:"entries"`
	Targets   ledger.Monthly `json:"targets"`
	Summary   ledger.Summary `json:"summary"`
	Links     LedgerLinks    `json:"links"`
}

type LedgerLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce"`
	Allocations string `json:"allocations" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/allocations"` // Append /{workPackage}/{task}/{month} to edit a cell
	Targets     string `json:"targets" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/targets"`         // Append /{month} to edit a target
	Months      string `json:"months" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/months"`           // Append /{month} for a month summary
	Export      string `json:"export" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/export"`
	Workbook    string `json:"workbook" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/export.xlsx"`
	Snapshots   string `json:"snapshots" example:"https://example.com/api/v1/ledgers/65392deb-5e92-4268-b114-297faad6cdce/snapshots"`
}

type LedgerResponse struct {
	Data  *Ledger `json:"data,omitempty"`  // Data for the ledger. For rejected edits, this is the unchanged ledger
	Error *string `json:"error,omitempty"` // The error, if any occurred
}

// Month is the summary of one month of a ledger.
type Month struct {
	ledger.MonthSummary
	Name    string `json:"name" example:"Mar"`       // Three letter month abbreviation
	Period  string `json:"period" example:"2025-03"` // Year and month in YYYY-MM format
	Quarter int    `json:"quarter" example:"1"`      // Quarter of the year, starting at 1
}

type MonthResponse struct {
	Data  *Month  `json:"data,omitempty"`
	Error *string `json:"error,omitempty"`
}

// Snapshot is the API representation of a saved ledger.
type Snapshot struct {
	ID        uuid.UUID       `json:"id" example:"9b1fd9a2-6a43-4f8e-8c8f-0c4f1e2b1c3d"`
	CreatedAt time.Time       `json:"createdAt" example:"2025-04-02T19:28:44.491514Z"`
	Resource  string          `json:"resource" example:"Jane Doe"`
	Name      string          `json:"name" example:"Baseline"`
	Note      string          `json:"note" example:"Approved by the steering committee"`
	Year      int             `json:"year" example:"2025"`
	Revision  uint64          `json:"revision" example:"12"` // Revision of the ledger when the snapshot was saved
	Entries   []ledger.Entry  `json:"entries,omitempty"`     // Only set for single snapshots
	Targets   *ledger.Monthly `json:"targets,omitempty"`     // Only set for single snapshots
	Summary   *ledger.Summary `json:"summary,omitempty"`     // Only set for single snapshots
	Links     SnapshotLinks   `json:"links"`
}

type SnapshotLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/snapshots/9b1fd9a2-6a43-4f8e-8c8f-0c4f1e2b1c3d"`
	Sessions string `json:"sessions" example:"https://example.com/api/v1/snapshots/9b1fd9a2-6a43-4f8e-8c8f-0c4f1e2b1c3d/sessions"` // POST to reopen the snapshot as a new ledger session
}

// SnapshotCreate is the body for saving a ledger.
type SnapshotCreate struct {
	Name string `json:"name" binding:"required" example:"Baseline"`
	Note string `json:"note" example:"Approved by the steering committee"`
}

type SnapshotResponse struct {
	Data  *Snapshot `json:"data,omitempty"`
	Error *string   `json:"error,omitempty"`
}

type SnapshotListResponse struct {
	Data       []Snapshot  `json:"data"`
	Error      *string     `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type SnapshotQueryFilter struct {
	Resource string `form:"resource"`                   // By resource
	Year     int    `form:"year"`                       // By year
	Name     string `form:"name"`                       // By name
	Search   string `form:"search" filterField:"false"` // Search for this text in name and note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first snapshot returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of snapshots to return. Defaults to 50.
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

type ExportResponse struct {
	Data  []export.Record `json:"data"`
	Error *string         `json:"error,omitempty"`
}
