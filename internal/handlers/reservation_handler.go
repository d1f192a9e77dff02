package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	"github.com/BruksfildServices01/table-reservations/internal/dto"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/httpresp"
	"github.com/BruksfildServices01/table-reservations/internal/middleware"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	propose *ucReservation.ProposeReservation
	cancel  *ucReservation.CancelReservation
	remove  *ucReservation.DeleteReservation
	list    *ucReservation.ListReservations
}

func NewReservationHandler(
	propose *ucReservation.ProposeReservation,
	cancel *ucReservation.CancelReservation,
	remove *ucReservation.DeleteReservation,
	list *ucReservation.ListReservations,
) *ReservationHandler {
	return &ReservationHandler{
		propose: propose,
		cancel:  cancel,
		remove:  remove,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	TableID    uint   `json:"table_id" binding:"required"`
	CustomerID uint   `json:"customer_id"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	PartySize  int    `json:"party_size" binding:"required"`
	Note       string `json:"note" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actorID := middleware.UserID(c)
	role := middleware.Role(c)

	customerID := actorID
	if req.CustomerID != 0 && req.CustomerID != actorID {
		if !access.Authorize(role, access.BookForOthers) {
			httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
			return
		}
		customerID = req.CustomerID
	}

	res, err := h.propose.Execute(c.Request.Context(), ucReservation.ProposeReservationInput{
		TableID:    req.TableID,
		CustomerID: customerID,
		Date:       req.Date,
		Time:       req.Time,
		PartySize:  req.PartySize,
		Note:       req.Note,
		ActorID:    actorID,
		RequestID:  middleware.RequestID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// LIST
// ======================================================

func (h *ReservationHandler) List(c *gin.Context) {
	var tableID uint
	if s := c.Query("table_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_table_id", "table_id must be a positive integer.")
			return
		}
		tableID = uint(id)
	}

	rs, err := h.list.Execute(c.Request.Context(), ucReservation.ListReservationsInput{
		Date:      c.Query("date"),
		Status:    c.Query("status"),
		TableID:   tableID,
		ActorID:   middleware.UserID(c),
		ActorRole: middleware.Role(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.ReservationList(rs))
}

// ======================================================
// CANCEL
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), ucReservation.CancelReservationInput{
		ReservationID: id,
		ActorID:       middleware.UserID(c),
		ActorRole:     middleware.Role(c),
		RequestID:     middleware.RequestID(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// DELETE (soft)
// ======================================================

func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(
		c.Request.Context(),
		id,
		middleware.UserID(c),
		middleware.RequestID(c),
	); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}
