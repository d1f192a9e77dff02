package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/httpresp"
	"github.com/BruksfildServices01/table-reservations/internal/timezone"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

type SweepHandler struct {
	sweep *ucReservation.RunDailySweep
	loc   *time.Location
}

func NewSweepHandler(sweep *ucReservation.RunDailySweep, loc *time.Location) *SweepHandler {
	return &SweepHandler{sweep: sweep, loc: loc}
}

// Run completes past reservations. as_of defaults to today.
func (h *SweepHandler) Run(c *gin.Context) {
	asOf := c.Query("as_of")
	if asOf == "" {
		asOf = time.Now().In(h.loc).Format(timezone.DateLayout)
	}

	res, err := h.sweep.Execute(c.Request.Context(), asOf)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}
