package v1

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/workload-planner/backend/internal/httputil"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/session"
)

// @Summary		Update allocation
// @Description	Sets the allocation of one task in one month. Values must be numbers between 0 and 1, an empty value sets the allocation to 0.
// @Description	Rejected values leave the ledger unchanged. The response then contains the error and the unchanged ledger.
// @Tags			Ledgers
// @Accept			json
// @Produce		json
// @Success		200			{object}	LedgerResponse
// @Failure		400			{object}	LedgerResponse
// @Failure		404			{object}	LedgerResponse
// @Param			id			path		string		true	"ID formatted as string"
// @Param			workPackage	path		int			true	"Index of the work package"
// @Param			task		path		int			true	"Index of the task in the work package"
// @Param			month		path		string		true	"Month from 0 to 11, month name or YYYY-MM"
// @Param			value		body		ValueEdit	true	"New allocation"
// @Router			/v1/ledgers/{id}/allocations/{workPackage}/{task}/{month} [patch]
func (co Controller) UpdateAllocation(c *gin.Context) {
	var uri URICell
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, LedgerResponse{
			Error: &e,
		})
		return
	}

	co.edit(c, "allocation", func(l *ledger.Ledger, value any) error {
		return l.SetAllocation(uri.WorkPackage, uri.Task, uri.Month.Index(), value)
	})
}

// @Summary		Update target
// @Description	Sets the target capacity for one month. Values must be numbers of at least 0, an empty value sets the target to 0.
// @Description	Rejected values leave the ledger unchanged. The response then contains the error and the unchanged ledger.
// @Tags			Ledgers
// @Accept			json
// @Produce		json
// @Success		200		{object}	LedgerResponse
// @Failure		400		{object}	LedgerResponse
// @Failure		404		{object}	LedgerResponse
// @Param			id		path		string		true	"ID formatted as string"
// @Param			month	path		string		true	"Month from 0 to 11, month name or YYYY-MM"
// @Param			value	body		ValueEdit	true	"New target"
// @Router			/v1/ledgers/{id}/targets/{month} [patch]
func (co Controller) UpdateTarget(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, LedgerResponse{
			Error: &e,
		})
		return
	}

	co.edit(c, "target", func(l *ledger.Ledger, value any) error {
		return l.SetTarget(uri.Month.Index(), value)
	})
}

// edit applies a single value edit to the session's ledger.
//
// Rejected edits are answered with 400 and the unchanged ledger.
func (co Controller) edit(c *gin.Context, kind string, apply func(*ledger.Ledger, any) error) {
	s, err := co.getSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	var body ValueEdit
	err = httputil.BindData(c, &body)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	var data Ledger
	editErr := s.Do(func(l *ledger.Ledger) error {
		err := apply(l, body.Value)
		data = newLedger(c, s, l, nil)
		return err
	})
	countEdit(kind, editErr)

	if editErr != nil {
		logRejected(c, s, kind, editErr)

		e := editErr.Error()
		c.JSON(status(editErr), LedgerResponse{
			Data:  &data,
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, LedgerResponse{Data: &data})
}

func logRejected(c *gin.Context, s *session.Session, kind string, err error) {
	log.Debug().
		Str("request-id", requestid.Get(c)).
		Str("session", s.ID.String()).
		Str("kind", kind).
		Bool("validation", ledger.IsValidationError(err)).
		Err(err).
		Msg("edit rejected")
}
