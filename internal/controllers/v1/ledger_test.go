package v1_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/workload-planner/backend/internal/controllers/v1"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/test"
)

func (suite *TestSuiteStandard) TestLedgersCreate() {
	l := suite.createTestLedger(suite.T(), testLedger())
	require.NotNil(suite.T(), l.Data)

	d := l.Data
	assert.Equal(suite.T(), "Jane Doe", d.Resource)
	assert.Equal(suite.T(), 2025, d.Year)
	assert.Equal(suite.T(), uint64(0), d.Revision)
	assert.Len(suite.T(), d.Entries, 3)
	assert.Equal(suite.T(), "http://example.com/v1/ledgers/"+d.ID.String(), d.Links.Self)
	assert.Equal(suite.T(), d.Links.Self+"/allocations", d.Links.Allocations)

	// Targets default to the configured default target
	for m, target := range d.Targets {
		assert.True(suite.T(), target.Equal(decimal.NewFromFloat(0.8)), "Target for month %d is %s", m, target)
	}

	jan := d.Summary.Months[0]
	assert.True(suite.T(), jan.Allocated.Equal(decimal.NewFromFloat(0.85)), jan.Allocated)
	assert.True(suite.T(), jan.Available.Equal(decimal.NewFromFloat(-0.05)), jan.Available)
	assert.True(suite.T(), jan.Utilization.Equal(decimal.NewFromFloat(106.25)), jan.Utilization)
	assert.Equal(suite.T(), ledger.StatusOverAllocated, jan.Status)

	require.Len(suite.T(), d.Summary.WorkPackages, 2)
	assert.Equal(suite.T(), "WP1", d.Summary.WorkPackages[0].ID)
	assert.True(suite.T(), d.Summary.WorkPackages[0].Total.Equal(decimal.NewFromFloat(2)), d.Summary.WorkPackages[0].Total)
	assert.True(suite.T(), d.Summary.YearTotal.Equal(decimal.NewFromFloat(2.1)), d.Summary.YearTotal)
	assert.True(suite.T(), d.Summary.YearTarget.Equal(decimal.NewFromFloat(9.6)), d.Summary.YearTarget)

	assert.Equal(suite.T(), 1, suite.co.Sessions.Len())
}

func (suite *TestSuiteStandard) TestLedgersCreateEmptyTargets() {
	r := test.Request(suite.co, suite.T(), http.MethodPost, "http://example.com/v1/ledgers", `{"resource": "Jane Doe", "year": 2025, "targets": []}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var l v1.LedgerResponse
	test.DecodeResponse(suite.T(), &r, &l)
	require.NotNil(suite.T(), l.Data)

	for m, target := range l.Data.Targets {
		assert.True(suite.T(), target.Equal(decimal.NewFromFloat(0.8)), "Target for month %d is %s", m, target)
	}
}

func (suite *TestSuiteStandard) TestLedgersCreateWithTargets() {
	create := testLedger()
	create.Targets = []any{"1", 0.5, ""}

	l := suite.createTestLedger(suite.T(), create)
	require.NotNil(suite.T(), l.Data)

	assert.True(suite.T(), l.Data.Targets[0].Equal(decimal.NewFromInt(1)))
	assert.True(suite.T(), l.Data.Targets[1].Equal(decimal.NewFromFloat(0.5)))

	// Unspecified and empty targets are 0
	assert.True(suite.T(), l.Data.Targets[2].IsZero())
	assert.True(suite.T(), l.Data.Targets[11].IsZero())

	// A target of 0 means no utilization
	assert.True(suite.T(), l.Data.Summary.Months[11].Utilization.IsZero())
	assert.Equal(suite.T(), ledger.StatusLowUtilization, l.Data.Summary.Months[11].Status)
}

func (suite *TestSuiteStandard) TestLedgersCreateEmpty() {
	l := suite.createTestLedger(suite.T(), v1.LedgerCreate{Resource: "Team Blue", Year: 2026})
	require.NotNil(suite.T(), l.Data)

	assert.Len(suite.T(), l.Data.Entries, 0)
	assert.Len(suite.T(), l.Data.Summary.WorkPackages, 0)
	assert.True(suite.T(), l.Data.Summary.YearTotal.IsZero())
}

func (suite *TestSuiteStandard) TestLedgersCreateFails() {
	tests := []struct {
		name   string
		body   any
		errMsg string
	}{
		{"Empty body", "", "the request body must not be empty"},
		{"Broken JSON", `{ "resource": "Jane Doe", `, "the body of your request contains invalid or un-parseable data"},
		{"No resource", v1.LedgerCreate{Year: 2025}, "Resource is required"},
		{"Year out of range", v1.LedgerCreate{Resource: "Jane Doe", Year: 12}, "Year must be at least 1900"},
		{"Entry without task", v1.LedgerCreate{Resource: "Jane Doe", Year: 2025, Entries: []v1.EntryCreate{{WorkPackageID: "WP1"}}}, "TaskID is required"},
		{
			"Allocation above one",
			v1.LedgerCreate{Resource: "Jane Doe", Year: 2025, Entries: []v1.EntryCreate{{WorkPackageID: "WP1", TaskID: "T1", Months: []any{"0.5", "1.5"}}}},
			"entry 0: month 1: the allocation must be less than or equal to 1",
		},
		{
			"Negative allocation",
			v1.LedgerCreate{Resource: "Jane Doe", Year: 2025, Entries: []v1.EntryCreate{{WorkPackageID: "WP1", TaskID: "T1", Months: []any{-0.1}}}},
			"the value must be greater than or equal to 0",
		},
		{
			"Not a number",
			v1.LedgerCreate{Resource: "Jane Doe", Year: 2025, Entries: []v1.EntryCreate{{WorkPackageID: "WP1", TaskID: "T1", Months: []any{"half"}}}},
			"the value is not a valid number",
		},
		{
			"Thirteen targets",
			v1.LedgerCreate{Resource: "Jane Doe", Year: 2025, Targets: []any{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
			"a year has 12 months",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPost, "http://example.com/v1/ledgers", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			require.NotNil(t, l.Error)
			assert.Contains(t, *l.Error, tt.errMsg)
			assert.Nil(t, l.Data)
		})
	}

	assert.Equal(suite.T(), 0, suite.co.Sessions.Len(), "Failed requests must not create sessions")
}

func (suite *TestSuiteStandard) TestLedgersGet() {
	created := suite.createTestLedger(suite.T(), testLedger())

	r := test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var l v1.LedgerResponse
	test.DecodeResponse(suite.T(), &r, &l)

	assert.Equal(suite.T(), created.Data.ID, l.Data.ID)
	assert.Equal(suite.T(), created.Data.Entries, l.Data.Entries)
}

func (suite *TestSuiteStandard) TestLedgersGetFilter() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name         string
		query        string
		workPackages []string
	}{
		{"No filter", "", []string{"WP1", "WP2"}},
		{"By ID", "?workPackage=WP2", []string{"WP2"}},
		{"By name glob", "?workPackage=Res*", []string{"WP1"}},
		{"Multiple patterns", "?workPackage=WP1&workPackage=*nation", []string{"WP1", "WP2"}},
		{"No match", "?workPackage=WP3", []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, created.Data.Links.Self+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			ids := []string{}
			for _, wp := range l.Data.Summary.WorkPackages {
				ids = append(ids, wp.ID)
			}
			assert.Equal(t, tt.workPackages, ids)

			for _, e := range l.Data.Entries {
				assert.Contains(t, tt.workPackages, e.WorkPackageID)
			}

			// Aggregates always cover the whole ledger
			assert.True(t, l.Data.Summary.Months[0].Allocated.Equal(decimal.NewFromFloat(0.85)))
		})
	}
}

func (suite *TestSuiteStandard) TestLedgersGetFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Not a UUID", "not-a-uuid", http.StatusBadRequest},
		{"Nil UUID", "00000000-0000-0000-0000-000000000000", http.StatusBadRequest},
		{"Unknown session", "d2525a3e-9a22-4a6b-9ab8-6e1d2b3a4f55", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, "http://example.com/v1/ledgers/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)
			assert.NotNil(t, l.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestLedgersDelete() {
	created := suite.createTestLedger(suite.T(), testLedger())

	r := test.Request(suite.co, suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), 0, suite.co.Sessions.Len())

	r = test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.co, suite.T(), http.MethodDelete, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestLedgersOptions() {
	created := suite.createTestLedger(suite.T(), testLedger())
	self := created.Data.Links.Self

	tests := []struct {
		path     string
		status   int
		expected string
	}{
		{"http://example.com/v1/ledgers", http.StatusNoContent, "OPTIONS, POST"},
		{self, http.StatusNoContent, "OPTIONS, GET, DELETE"},
		{self + "/allocations/0/0/0", http.StatusNoContent, "OPTIONS, PATCH"},
		{self + "/targets/jan", http.StatusNoContent, "OPTIONS, PATCH"},
		{self + "/months/2025-03", http.StatusNoContent, "OPTIONS, GET"},
		{self + "/export", http.StatusNoContent, "OPTIONS, GET"},
		{self + "/export.xlsx", http.StatusNoContent, "OPTIONS, GET"},
		{self + "/snapshots", http.StatusNoContent, "OPTIONS, POST"},
		{"http://example.com/v1/ledgers/d2525a3e-9a22-4a6b-9ab8-6e1d2b3a4f55", http.StatusNotFound, ""},
		{"http://example.com/v1/ledgers/not-a-uuid/export", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.expected, r.Header().Get("allow"))
		})
	}
}
