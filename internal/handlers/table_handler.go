package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/httpresp"
	"github.com/BruksfildServices01/table-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/table-reservations/internal/middleware"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

type TableHandler struct {
	repo         domain.Repository
	availability *ucReservation.GetAvailability
	audit        *audit.Dispatcher
}

func NewTableHandler(
	repo domain.Repository,
	availability *ucReservation.GetAvailability,
	audit *audit.Dispatcher,
) *TableHandler {
	return &TableHandler{
		repo:         repo,
		availability: availability,
		audit:        audit,
	}
}

type CreateTableRequest struct {
	Number   int `json:"number" binding:"required,min=1"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

type UpdateTableStateRequest struct {
	State models.TableState `json:"state" binding:"required"`
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.repo.ListTables(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, tables)
}

func (h *TableHandler) Create(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	t := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		State:    models.TableAvailable,
	}
	if err := h.repo.CreateTable(c.Request.Context(), &t); err != nil {
		if repository.IsSlotConflict(err) {
			httperr.Conflict(c, "table_number_taken", "A table with that number already exists.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	actorID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:    &actorID,
		RequestID: middleware.RequestID(c),
		Action:    "table_created",
		Entity:    "table",
		EntityID:  &t.ID,
	})

	httpresp.Created(c, t)
}

func (h *TableHandler) UpdateState(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateTableStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.State.Valid() {
		httperr.BadRequest(c, "invalid_table_state", "State must be available, occupied, reserved or cleaning.")
		return
	}

	t, err := h.repo.UpdateTableState(c.Request.Context(), id, req.State)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	actorID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:    &actorID,
		RequestID: middleware.RequestID(c),
		Action:    "table_state_changed",
		Entity:    "table",
		EntityID:  &t.ID,
		Metadata:  gin.H{"state": t.State},
	})

	httpresp.OK(c, t)
}

func (h *TableHandler) Availability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required (YYYY-MM-DD).")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), id, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"table_id": id,
		"date":     date,
		"slots":    slots,
	})
}
