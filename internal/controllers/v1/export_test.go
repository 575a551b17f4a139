package v1_test

import (
	"bytes"
	"mime"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/workload-planner/backend/internal/controllers/v1"
	"github.com/workload-planner/backend/internal/export"
	"github.com/workload-planner/backend/internal/types"
	"github.com/workload-planner/backend/test"
	"github.com/xuri/excelize/v2"
)

func (suite *TestSuiteStandard) TestExportRecords() {
	created := suite.createTestLedger(suite.T(), testLedger())

	r := test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Export, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var e v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &e)

	// Three tasks with twelve months each
	require.Len(suite.T(), e.Data, 36)

	first := e.Data[0]
	assert.Equal(suite.T(), "WP1", first.WorkPackageID)
	assert.Equal(suite.T(), "T1.1", first.TaskID)
	assert.Equal(suite.T(), types.Month(0), first.Month)
	assert.Equal(suite.T(), "Jan", first.MonthName)
	assert.True(suite.T(), first.Allocation.Equal(decimal.NewFromFloat(0.5)))

	last := e.Data[35]
	assert.Equal(suite.T(), "WP2", last.WorkPackageID)
	assert.Equal(suite.T(), "Dec", last.MonthName)
	assert.True(suite.T(), last.Allocation.IsZero())
}

func (suite *TestSuiteStandard) TestExportWorkbook() {
	created := suite.createTestLedger(suite.T(), testLedger())

	r := test.Request(suite.co, suite.T(), http.MethodGet, created.Data.Links.Workbook, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), export.ContentType, r.Header().Get("Content-Type"))
	assert.Equal(suite.T(), `attachment; filename="allocations-Jane Doe-2025.xlsx"`, r.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
	require.Nil(suite.T(), err)
	defer f.Close()

	assert.Equal(suite.T(), []string{export.GridSheet, export.RecordsSheet}, f.GetSheetList())

	rows, err := f.GetRows(export.RecordsSheet)
	require.Nil(suite.T(), err)

	// Header and one row per record
	assert.Len(suite.T(), rows, 37)
}

func (suite *TestSuiteStandard) TestExportWorkbookFilename() {
	tests := []struct {
		resource string
		filename string
	}{
		{`Jane "JD" Doe`, `allocations-Jane "JD" Doe-2025.xlsx`},
		{"Zoë Ångström", "allocations-Zoë Ångström-2025.xlsx"},
		{`Team\Ops`, `allocations-Team\Ops-2025.xlsx`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.resource, func(t *testing.T) {
			create := testLedger()
			create.Resource = tt.resource
			created := suite.createTestLedger(t, create)

			r := test.Request(suite.co, t, http.MethodGet, created.Data.Links.Workbook, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			disposition, params, err := mime.ParseMediaType(r.Header().Get("Content-Disposition"))
			require.Nil(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, tt.filename, params["filename"])
		})
	}
}

func (suite *TestSuiteStandard) TestExportFails() {
	for _, path := range []string{"export", "export.xlsx"} {
		r := test.Request(suite.co, suite.T(), http.MethodGet, "http://example.com/v1/ledgers/d2525a3e-9a22-4a6b-9ab8-6e1d2b3a4f55/"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}
}
