package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/httpresp"
	"github.com/BruksfildServices01/table-reservations/internal/middleware"
)

// UserHandler lets an admin create accounts with any role.
type UserHandler struct {
	auth  *AuthHandler
	audit *audit.Dispatcher
}

func NewUserHandler(auth *AuthHandler, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{auth: auth, audit: audit}
}

type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role, ok := access.ParseRole(req.Role)
	if !ok {
		httperr.BadRequest(c, "invalid_role", "Role must be admin, cashier, waiter or client.")
		return
	}

	user, ok := h.auth.createUser(c, req.RegisterRequest, role)
	if !ok {
		return
	}

	actorID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:    &actorID,
		RequestID: middleware.RequestID(c),
		Action:    "user_created",
		Entity:    "user",
		EntityID:  &user.ID,
		Metadata:  gin.H{"role": role},
	})

	httpresp.Created(c, userView(user))
}
