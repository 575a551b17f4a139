package v1

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/workload-planner/backend/internal/export"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/models"
)

// @Summary		Export ledger
// @Description	Returns one record per work package, task and month
// @Tags			Ledgers
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		400	{object}	ExportResponse
// @Failure		404	{object}	ExportResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id}/export [get]
func (co Controller) GetLedgerExport(c *gin.Context) {
	s, err := co.getSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &e,
		})
		return
	}

	var records []export.Record
	_ = s.Do(func(l *ledger.Ledger) error {
		records = export.Records(l)
		return nil
	})

	c.JSON(http.StatusOK, ExportResponse{Data: records})
}

// @Summary		Export ledger as workbook
// @Description	Returns an XLSX workbook with the allocation grid and all records
// @Tags			Ledgers
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id}/export.xlsx [get]
func (co Controller) GetLedgerWorkbook(c *gin.Context) {
	s, err := co.getSession(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	meta := export.Meta{Resource: s.Resource, Year: s.Year}

	var buf *bytes.Buffer
	err = s.Do(func(l *ledger.Ledger) error {
		f, err := export.Workbook(l, meta)
		if err != nil {
			return err
		}
		defer f.Close()

		buf, err = f.WriteToBuffer()
		return err
	})
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": meta.Filename()}))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
