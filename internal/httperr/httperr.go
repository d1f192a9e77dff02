package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// statusByCode maps business codes to HTTP statuses. Codes not listed are 400.
var statusByCode = map[string]int{
	"reservation_not_found": http.StatusNotFound,
	"table_not_found":       http.StatusNotFound,
	"customer_not_found":    http.StatusNotFound,
	"forbidden":             http.StatusForbidden,
	"slot_taken":            http.StatusConflict,
	"already_terminal":      http.StatusConflict,
	"invalid_transition":    http.StatusConflict,
	"invalid_party_size":    http.StatusUnprocessableEntity,
	"invalid_interval":      http.StatusUnprocessableEntity,
}

var messageByCode = map[string]string{
	"reservation_not_found": "Reservation not found.",
	"table_not_found":       "Table not found.",
	"customer_not_found":    "Customer not found.",
	"forbidden":             "Insufficient permissions.",
	"slot_taken":            "The table is already booked for that time.",
	"already_terminal":      "The reservation is already completed or cancelled.",
	"invalid_transition":    "Status change not allowed.",
	"invalid_party_size":    "Party size must be between 1 and the table capacity.",
	"invalid_interval":      "Invalid reservation time window.",
	"invalid_date":          "Date must use the YYYY-MM-DD format.",
	"invalid_status":        "Status must be pending, active, completed or cancelled.",
	"invalid_role":          "Role must be admin, cashier, waiter or client.",
}

// FromError writes err as a JSON error response. Business failures keep their
// code; anything else is logged and reported as a generic internal error.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		Internal(c, "internal_error", "Internal server error.")
		return
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusBadRequest
	}
	msg, ok := messageByCode[code]
	if !ok {
		msg = code
	}
	Write(c, status, code, msg)
}
