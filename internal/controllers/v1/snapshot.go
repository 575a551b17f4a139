package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workload-planner/backend/internal/httputil"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func (co Controller) RegisterSnapshotRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsSnapshots)
		r.GET("", co.GetSnapshots)
	}
	{
		r.OPTIONS("/:id", co.OptionsSnapshotDetail)
		r.GET("/:id", co.GetSnapshot)
		r.DELETE("/:id", co.DeleteSnapshot)
		r.OPTIONS("/:id/sessions", co.OptionsSnapshotSessions)
		r.POST("/:id/sessions", co.ReopenSnapshot)
	}
}

func newSnapshot(c *gin.Context, s models.Snapshot) Snapshot {
	url := fmt.Sprintf("%s/v1/snapshots/%s", c.GetString(string(models.DBContextURL)), s.ID)

	return Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Resource:  s.Resource,
		Name:      s.Name,
		Note:      s.Note,
		Year:      s.Year,
		Revision:  s.Revision,
		Links: SnapshotLinks{
			Self:     url,
			Sessions: url + "/sessions",
		},
	}
}

// getSnapshot loads the snapshot for the id parameter with all cells and targets
func getSnapshot(c *gin.Context) (models.Snapshot, error) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		return models.Snapshot{}, err
	}

	var s models.Snapshot
	err = models.WithData(models.DB).First(&s, "id = ?", id).Error
	if err != nil {
		return models.Snapshot{}, err
	}

	return s, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Snapshots
// @Success		204
// @Router			/v1/snapshots [options]
func (co Controller) OptionsSnapshots(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Snapshots
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/snapshots/{id} [options]
func (co Controller) OptionsSnapshotDetail(c *gin.Context) {
	optionsForSnapshot(c, httputil.OptionsGetDelete)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Snapshots
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/snapshots/{id}/sessions [options]
func (co Controller) OptionsSnapshotSessions(c *gin.Context) {
	optionsForSnapshot(c, httputil.OptionsPost)
}

func optionsForSnapshot(c *gin.Context, options func(*gin.Context)) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Snapshot{}, "id = ?", id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}

// @Summary		Save ledger
// @Description	Saves the current state of a ledger session as a snapshot. The session stays open.
// @Tags			Ledgers
// @Accept			json
// @Produce		json
// @Success		201			{object}	SnapshotResponse
// @Failure		400			{object}	SnapshotResponse
// @Failure		404			{object}	SnapshotResponse
// @Failure		500			{object}	SnapshotResponse
// @Param			id			path		string			true	"ID formatted as string"
// @Param			snapshot	body		SnapshotCreate	true	"Snapshot"
// @Router			/v1/ledgers/{id}/snapshots [post]
func (co Controller) CreateSnapshot(c *gin.Context) {
	s, err := co.getSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &e,
		})
		return
	}

	var create SnapshotCreate
	err = httputil.BindData(c, &create)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &e,
		})
		return
	}

	var snapshot models.Snapshot
	_ = s.Do(func(l *ledger.Ledger) error {
		snapshot = models.NewSnapshot(l, s.Resource, create.Name, create.Note, s.Year)
		return nil
	})

	err = models.DB.Create(&snapshot).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &e,
		})
		return
	}

	data := newSnapshot(c, snapshot)
	c.JSON(http.StatusCreated, SnapshotResponse{Data: &data})
}

// @Summary		Get snapshots
// @Description	Returns a list of snapshots, newest first
// @Tags			Snapshots
// @Produce		json
// @Success		200			{object}	SnapshotListResponse
// @Failure		400			{object}	SnapshotListResponse
// @Failure		500			{object}	SnapshotListResponse
// @Router			/v1/snapshots [get]
// @Param			resource	query	string	false	"Filter by resource"
// @Param			year		query	int		false	"Filter by year"
// @Param			name		query	string	false	"Filter by name"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first snapshot returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of snapshots to return. Defaults to 50."
func (co Controller) GetSnapshots(c *gin.Context) {
	var filter SnapshotQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SnapshotListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Model(&models.Snapshot{}).
		Order("snapshots.created_at DESC, snapshots.name ASC").
		Where(&models.Snapshot{
			Resource: filter.Resource,
			Year:     filter.Year,
			Name:     filter.Name,
		}, queryFields...)

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		q = q.Where("snapshots.name LIKE ? OR snapshots.note LIKE ?", search, search)
	}

	// The query is used for counting and fetching
	q = q.Session(&gorm.Session{})

	var total int64
	err := q.Count(&total).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotListResponse{
			Error: &e,
		})
		return
	}

	// Default to 50 snapshots
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	var snapshots []models.Snapshot
	err = q.Offset(int(filter.Offset)).Limit(limit).Find(&snapshots).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		data = append(data, newSnapshot(c, s))
	}

	c.JSON(http.StatusOK, SnapshotListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// @Summary		Get snapshot
// @Description	Returns a snapshot with its entries, targets and the derived summary
// @Tags			Snapshots
// @Produce		json
// @Success		200	{object}	SnapshotResponse
// @Failure		400	{object}	SnapshotResponse
// @Failure		404	{object}	SnapshotResponse
// @Failure		500	{object}	SnapshotResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/snapshots/{id} [get]
func (co Controller) GetSnapshot(c *gin.Context) {
	s, err := getSnapshot(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotResponse{
			Error: &e,
		})
		return
	}

	l, err := s.Ledger()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, SnapshotResponse{
			Error: &e,
		})
		return
	}

	data := newSnapshot(c, s)
	targets := l.Targets()
	summary := l.Summary()
	data.Entries = l.Entries()
	data.Targets = &targets
	data.Summary = &summary

	c.JSON(http.StatusOK, SnapshotResponse{Data: &data})
}

// @Summary		Delete snapshot
// @Description	Deletes a snapshot
// @Tags			Snapshots
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/snapshots/{id} [delete]
func (co Controller) DeleteSnapshot(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var s models.Snapshot
	err = models.DB.First(&s, "id = ?", id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&s).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Reopen snapshot
// @Description	Creates a new ledger session from a snapshot
// @Tags			Snapshots
// @Produce		json
// @Success		201	{object}	LedgerResponse
// @Failure		400	{object}	LedgerResponse
// @Failure		404	{object}	LedgerResponse
// @Failure		500	{object}	LedgerResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/snapshots/{id}/sessions [post]
func (co Controller) ReopenSnapshot(c *gin.Context) {
	s, err := getSnapshot(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &e,
		})
		return
	}

	l, err := s.Ledger()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, LedgerResponse{
			Error: &e,
		})
		return
	}

	sess := co.Sessions.Create(s.Resource, s.Year, l)

	var data Ledger
	_ = sess.Do(func(l *ledger.Ledger) error {
		data = newLedger(c, sess, l, nil)
		return nil
	})

	c.JSON(http.StatusCreated, LedgerResponse{Data: &data})
}
