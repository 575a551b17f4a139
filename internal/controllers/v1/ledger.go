package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"github.com/workload-planner/backend/internal/httputil"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/models"
	"github.com/workload-planner/backend/internal/session"
	"golang.org/x/exp/slices"
)

func (co Controller) RegisterLedgerRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsLedgers)
		r.POST("", co.CreateLedger)
	}
	{
		r.OPTIONS("/:id", co.OptionsLedgerDetail)
		r.GET("/:id", co.GetLedger)
		r.DELETE("/:id", co.DeleteLedger)
	}
	{
		r.OPTIONS("/:id/allocations/:workPackage/:task/:month", co.OptionsLedgerEdit)
		r.PATCH("/:id/allocations/:workPackage/:task/:month", co.UpdateAllocation)
		r.OPTIONS("/:id/targets/:month", co.OptionsLedgerEdit)
		r.PATCH("/:id/targets/:month", co.UpdateTarget)
	}
	{
		r.OPTIONS("/:id/months/:month", co.OptionsLedgerGet)
		r.GET("/:id/months/:month", co.GetLedgerMonth)
		r.OPTIONS("/:id/export", co.OptionsLedgerGet)
		r.GET("/:id/export", co.GetLedgerExport)
		r.OPTIONS("/:id/export.xlsx", co.OptionsLedgerGet)
		r.GET("/:id/export.xlsx", co.GetLedgerWorkbook)
		r.OPTIONS("/:id/snapshots", co.OptionsLedgerSnapshots)
		r.POST("/:id/snapshots", co.CreateSnapshot)
	}
}

// getSession returns the session for the id parameter
func (co Controller) getSession(c *gin.Context) (*session.Session, error) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, httputil.ErrInvalidUUID
	}

	return co.Sessions.Get(id)
}

// newLedger transforms a session into its API representation.
//
// If patterns are given, only work packages with an ID or name matching
// at least one of the glob patterns are included in entries and work package
// summaries. Monthly and yearly aggregates always cover the whole ledger.
func newLedger(c *gin.Context, s *session.Session, l *ledger.Ledger, patterns []string) Ledger {
	url := fmt.Sprintf("%s/v1/ledgers/%s", c.GetString(string(models.DBContextURL)), s.ID)

	summary := l.Summary()
	entries := l.Entries()
	if entries == nil {
		entries = []ledger.Entry{}
	}

	if len(patterns) > 0 {
		entries = slices.DeleteFunc(entries, func(e ledger.Entry) bool {
			return !matchesAny(patterns, e.WorkPackageID, e.WorkPackageName)
		})

		summary.WorkPackages = slices.DeleteFunc(summary.WorkPackages, func(wp ledger.WorkPackageSummary) bool {
			return !matchesAny(patterns, wp.ID, wp.Name)
		})
	}

	return Ledger{
		ID:        s.ID,
		Resource:  s.Resource,
		Year:      s.Year,
		CreatedAt: s.CreatedAt,
		Revision:  l.Revision(),
		Entries:   entries,
		Targets:   l.Targets(),
		Summary:   summary,
		Links: LedgerLinks{
			Self:        url,
			Allocations: url + "/allocations",
			Targets:     url + "/targets",
			Months:      url + "/months",
			Export:      url + "/export",
			Workbook:    url + "/export.xlsx",
			Snapshots:   url + "/snapshots",
		},
	}
}

func matchesAny(patterns []string, values ...string) bool {
	for _, p := range patterns {
		for _, v := range values {
			if glob.Glob(p, v) {
				return true
			}
		}
	}
	return false
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Router			/v1/ledgers [options]
func (co Controller) OptionsLedgers(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id} [options]
func (co Controller) OptionsLedgerDetail(c *gin.Context) {
	co.optionsForSession(c, httputil.OptionsGetDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string	true	"ID formatted as string"
// @Param			month		path		string	true	"Month from 0 to 11, month name or YYYY-MM"
// @Router			/v1/ledgers/{id}/months/{month} [options]
// @Router			/v1/ledgers/{id}/export [options]
// @Router			/v1/ledgers/{id}/export.xlsx [options]
func (co Controller) OptionsLedgerGet(c *gin.Context) {
	co.optionsForSession(c, httputil.OptionsGet)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string	true	"ID formatted as string"
// @Param			workPackage	path		int		true	"Index of the work package"
// @Param			task		path		int		true	"Index of the task in the work package"
// @Param			month		path		string	true	"Month from 0 to 11, month name or YYYY-MM"
// @Router			/v1/ledgers/{id}/allocations/{workPackage}/{task}/{month} [options]
// @Router			/v1/ledgers/{id}/targets/{month} [options]
func (co Controller) OptionsLedgerEdit(c *gin.Context) {
	co.optionsForSession(c, httputil.OptionsPatch)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id}/snapshots [options]
func (co Controller) OptionsLedgerSnapshots(c *gin.Context) {
	co.optionsForSession(c, httputil.OptionsPost)
}

func (co Controller) optionsForSession(c *gin.Context, options func(*gin.Context)) {
	_, err := co.getSession(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}

// @Summary		Create ledger
// @Description	Creates a new ledger session from a ledger definition. The session expires when it is not used.
// @Tags			Ledgers
// @Produce		json
// @Success		201		{object}	LedgerResponse
// @Failure		400		{object}	LedgerResponse
// @Param			ledger	body		LedgerCreate	true	"Ledger"
// @Router			/v1/ledgers [post]
func (co Controller) CreateLedger(c *gin.Context) {
	var create LedgerCreate

	err := httputil.BindData(c, &create)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	l, err := create.Ledger(ledger.Uniform(co.DefaultTarget))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	s := co.Sessions.Create(create.Resource, create.Year, l)
	log.Debug().Str("request-id", requestid.Get(c)).Str("session", s.ID.String()).Int("workPackages", l.Len()).Msg("ledger session created")

	var data Ledger
	_ = s.Do(func(l *ledger.Ledger) error {
		data = newLedger(c, s, l, nil)
		return nil
	})

	c.JSON(http.StatusCreated, LedgerResponse{Data: &data})
}

// @Summary		Get ledger
// @Description	Returns a ledger session with its entries, targets and the derived summary
// @Tags			Ledgers
// @Produce		json
// @Success		200			{object}	LedgerResponse
// @Failure		400			{object}	LedgerResponse
// @Failure		404			{object}	LedgerResponse
// @Param			id			path		string		true	"ID formatted as string"
// @Param			workPackage	query		[]string	false	"Only show work packages whose ID or name matches one of these glob patterns"
// @Router			/v1/ledgers/{id} [get]
func (co Controller) GetLedger(c *gin.Context) {
	s, err := co.getSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	patterns := c.QueryArray("workPackage")

	var data Ledger
	_ = s.Do(func(l *ledger.Ledger) error {
		data = newLedger(c, s, l, patterns)
		return nil
	})

	c.JSON(http.StatusOK, LedgerResponse{Data: &data})
}

// @Summary		Delete ledger
// @Description	Closes a ledger session and discards all unsaved changes
// @Tags			Ledgers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/ledgers/{id} [delete]
func (co Controller) DeleteLedger(c *gin.Context) {
	s, err := co.getSession(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.Sessions.Delete(s.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
