package v1_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/workload-planner/backend/internal/controllers/v1"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/test"
)

func (suite *TestSuiteStandard) TestAllocationsUpdate() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name     string
		path     string
		value    any
		expected decimal.Decimal
	}{
		{"Number", "/0/0/0", 0.3, decimal.NewFromFloat(0.3)},
		{"String", "/0/1/1", "0.75", decimal.NewFromFloat(0.75)},
		{"Full time", "/1/0/feb", 1, decimal.NewFromInt(1)},
		{"Empty string clears", "/0/0/2025-03", "", decimal.Zero},
		{"Null clears", "/1/0/0", nil, decimal.Zero},
		{"Whitespace around number", "/0/1/december", " 0.2 ", decimal.NewFromFloat(0.2)},
	}

	for i, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, created.Data.Links.Allocations+tt.path, map[string]any{"value": tt.value})
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)
			require.Nil(t, l.Error)
			assert.Equal(t, uint64(i+1), l.Data.Revision)

			parts := strings.Split(strings.TrimPrefix(tt.path, "/"), "/")
			var wp ledger.WorkPackageSummary
			if parts[0] == "0" {
				wp = l.Data.Summary.WorkPackages[0]
			} else {
				wp = l.Data.Summary.WorkPackages[1]
			}
			task := wp.Tasks[0]
			if parts[1] == "1" {
				task = wp.Tasks[1]
			}

			found := false
			for _, v := range task.Months {
				if v.Equal(tt.expected) {
					found = true
				}
			}
			assert.True(t, found, "%s not found in %v", tt.expected, task.Months)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsUpdateAggregates() {
	created := suite.createTestLedger(suite.T(), testLedger())

	// January: 0.5 + 0.25 + 0.1 = 0.85. Reducing T1.1 to 0.4 gives 0.75,
	// which is 93.75% of 0.8
	r := test.Request(suite.co, suite.T(), http.MethodPatch, created.Data.Links.Allocations+"/0/0/0", v1.ValueEdit{Value: "0.4"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var l v1.LedgerResponse
	test.DecodeResponse(suite.T(), &r, &l)

	jan := l.Data.Summary.Months[0]
	assert.True(suite.T(), jan.Allocated.Equal(decimal.NewFromFloat(0.75)), jan.Allocated)
	assert.True(suite.T(), jan.Available.Equal(decimal.NewFromFloat(0.05)), jan.Available)
	assert.True(suite.T(), jan.Utilization.Equal(decimal.NewFromFloat(93.75)), jan.Utilization)
	assert.Equal(suite.T(), ledger.StatusUnderTarget, jan.Status)
	assert.Equal(suite.T(), ledger.SeverityWarning, jan.Severity)
	assert.True(suite.T(), l.Data.Summary.WorkPackages[0].Months[0].Equal(decimal.NewFromFloat(0.65)))
}

func (suite *TestSuiteStandard) TestAllocationsUpdateRejected() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		errMsg string
	}{
		{"Above one", "/0/0/0", v1.ValueEdit{Value: 1.01}, http.StatusBadRequest, "the allocation must be less than or equal to 1"},
		{"Negative", "/0/0/0", v1.ValueEdit{Value: "-0.5"}, http.StatusBadRequest, "the value must be greater than or equal to 0"},
		{"Not a number", "/0/0/0", v1.ValueEdit{Value: "a lot"}, http.StatusBadRequest, "the value is not a valid number"},
		{"Boolean", "/0/0/0", v1.ValueEdit{Value: true}, http.StatusBadRequest, "the value is not a valid number"},
		{"Whitespace only", "/0/0/0", v1.ValueEdit{Value: "   "}, http.StatusBadRequest, "the value is not a valid number"},
		{"Tiny exponent", "/0/0/0", v1.ValueEdit{Value: "1e-100000"}, http.StatusBadRequest, "has too many decimal places"},
		{"Unknown work package", "/5/0/0", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest, "there is no allocation cell at the specified position"},
		{"Unknown task", "/1/1/0", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest, "work package 1 has no task 1"},
		{"Negative task", "/0/-1/0", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest, "there is no allocation cell at the specified position"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, created.Data.Links.Allocations+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			require.NotNil(t, l.Error)
			assert.Contains(t, *l.Error, tt.errMsg)

			// The unchanged ledger is returned with the error
			require.NotNil(t, l.Data)
			assert.Equal(t, uint64(0), l.Data.Revision)
			assert.Equal(t, created.Data.Entries, l.Data.Entries)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsUpdateFails() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Invalid month", created.Data.Links.Allocations + "/0/0/13", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest},
		{"Invalid month name", created.Data.Links.Allocations + "/0/0/smarch", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest},
		{"Work package not a number", created.Data.Links.Allocations + "/first/0/0", v1.ValueEdit{Value: 0.5}, http.StatusBadRequest},
		{"Empty body", created.Data.Links.Allocations + "/0/0/0", "", http.StatusBadRequest},
		{"Broken body", created.Data.Links.Allocations + "/0/0/0", `{"value": `, http.StatusBadRequest},
		{"Unknown session", "http://example.com/v1/ledgers/d2525a3e-9a22-4a6b-9ab8-6e1d2b3a4f55/allocations/0/0/0", v1.ValueEdit{Value: 0.5}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)
			assert.NotNil(t, l.Error)
			assert.Nil(t, l.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestTargetsUpdate() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name     string
		month    string
		value    any
		index    int
		expected decimal.Decimal
	}{
		{"Index", "0", "1", 0, decimal.NewFromInt(1)},
		{"Name", "February", 0.5, 1, decimal.NewFromFloat(0.5)},
		{"Period", "2025-12", "", 11, decimal.Zero},
		{"Above one", "jun", 1.5, 5, decimal.NewFromFloat(1.5)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, created.Data.Links.Targets+"/"+tt.month, v1.ValueEdit{Value: tt.value})
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			assert.True(t, l.Data.Targets[tt.index].Equal(tt.expected), "Target is %s, expected %s", l.Data.Targets[tt.index], tt.expected)
			assert.True(t, l.Data.Summary.Months[tt.index].Target.Equal(tt.expected))
		})
	}

	// January is now 0.85 of 1
	r := test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Self, "")
	var l v1.LedgerResponse
	test.DecodeResponse(suite.T(), &r, &l)
	assert.True(suite.T(), l.Data.Summary.Months[0].Utilization.Equal(decimal.NewFromInt(85)))
	assert.Equal(suite.T(), ledger.StatusUnderTarget, l.Data.Summary.Months[0].Status)
	assert.Equal(suite.T(), uint64(4), l.Data.Revision)
}

func (suite *TestSuiteStandard) TestTargetsUpdateRejected() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name   string
		value  any
		errMsg string
	}{
		{"Negative", "-1", "the value must be greater than or equal to 0"},
		{"Whitespace only", " ", "the value is not a valid number"},
		{"Huge exponent", "1e50000000", "it is too large"},
		{"Huge exponent number", json.RawMessage("1e50000000"), "it is too large"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodPatch, created.Data.Links.Targets+"/mar", v1.ValueEdit{Value: tt.value})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			require.NotNil(t, l.Error)
			assert.Contains(t, *l.Error, tt.errMsg)
			assert.Equal(t, created.Data.Targets, l.Data.Targets)
			assert.Equal(t, uint64(0), l.Data.Revision)
		})
	}

	r := test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

// TestEditMetrics verifies that edits are counted by kind and result.
func (suite *TestSuiteStandard) TestEditMetrics() {
	created := suite.createTestLedger(suite.T(), testLedger())

	r := test.Request(suite.co, suite.T(), http.MethodPatch, created.Data.Links.Allocations+"/0/0/0", v1.ValueEdit{Value: "0.1"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.co, suite.T(), http.MethodPatch, created.Data.Links.Targets+"/0", v1.ValueEdit{Value: "x"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/metrics", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Contains(suite.T(), r.Body.String(), `ledger_edits_total{kind="allocation",result="accepted"}`)
	assert.Contains(suite.T(), r.Body.String(), `ledger_edits_total{kind="target",result="rejected"}`)
}
