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

func (suite *TestSuiteStandard) TestMonthsGet() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		month     string
		index     int
		name      string
		period    string
		quarter   int
		allocated decimal.Decimal
		status    ledger.Status
	}{
		{"0", 0, "Jan", "2025-01", 1, decimal.NewFromFloat(0.85), ledger.StatusOverAllocated},
		{"feb", 1, "Feb", "2025-02", 1, decimal.NewFromFloat(0.75), ledger.StatusUnderTarget},
		{"March", 2, "Mar", "2025-03", 1, decimal.NewFromFloat(0.5), ledger.StatusLowUtilization},
		{"2025-07", 6, "Jul", "2025-07", 3, decimal.Zero, ledger.StatusLowUtilization},
		{"11", 11, "Dec", "2025-12", 4, decimal.Zero, ledger.StatusLowUtilization},
	}

	for _, tt := range tests {
		suite.T().Run(tt.month, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, created.Data.Links.Months+"/"+tt.month, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var m v1.MonthResponse
			test.DecodeResponse(t, &r, &m)
			require.NotNil(t, m.Data)

			assert.Equal(t, tt.index, m.Data.Month)
			assert.Equal(t, tt.name, m.Data.Name)
			assert.Equal(t, tt.period, m.Data.Period)
			assert.Equal(t, tt.quarter, m.Data.Quarter)
			assert.True(t, m.Data.Allocated.Equal(tt.allocated), "Allocated is %s, expected %s", m.Data.Allocated, tt.allocated)
			assert.True(t, m.Data.Target.Equal(decimal.NewFromFloat(0.8)))
			assert.Equal(t, tt.status, m.Data.Status)
			assert.Equal(t, tt.status.Severity(), m.Data.Severity)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthsGetFails() {
	created := suite.createTestLedger(suite.T(), testLedger())

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"Month too large", created.Data.Links.Months + "/12", http.StatusBadRequest},
		{"Negative month", created.Data.Links.Months + "/-1", http.StatusBadRequest},
		{"Invalid period", created.Data.Links.Months + "/2025-13", http.StatusBadRequest},
		{"Unknown session", "http://example.com/v1/ledgers/d2525a3e-9a22-4a6b-9ab8-6e1d2b3a4f55/months/0", http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.co, t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var m v1.MonthResponse
			test.DecodeResponse(t, &r, &m)
			assert.NotNil(t, m.Error)
		})
	}
}
