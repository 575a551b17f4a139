package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workload-planner/backend/internal/ledger"
)

// @Summary		Get month
// @Description	Returns the summary for one month of a ledger: target, allocated and available capacity, utilization and status
// @Tags			Ledgers
// @Produce		json
// @Success		200		{object}	MonthResponse
// @Failure		400		{object}	MonthResponse
// @Failure		404		{object}	MonthResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			month	path		string	true	"Month from 0 to 11, month name or YYYY-MM"
// @Router			/v1/ledgers/{id}/months/{month} [get]
func (co Controller) GetLedgerMonth(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthResponse{
			Error: &e,
		})
		return
	}

	s, err := co.getSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}

	var data Month
	_ = s.Do(func(l *ledger.Ledger) error {
		data = Month{
			MonthSummary: l.Month(uri.Month.Index()),
			Name:         uri.Month.String(),
			Period:       uri.Month.In(s.Year),
			Quarter:      uri.Month.Quarter(),
		}
		return nil
	})

	c.JSON(http.StatusOK, MonthResponse{Data: &data})
}
