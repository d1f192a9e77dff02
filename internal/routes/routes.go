package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-reservations/internal/audit"
	"github.com/BruksfildServices01/table-reservations/internal/config"
	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	domain "github.com/BruksfildServices01/table-reservations/internal/domain/reservation"
	"github.com/BruksfildServices01/table-reservations/internal/handlers"
	"github.com/BruksfildServices01/table-reservations/internal/infra/lock"
	"github.com/BruksfildServices01/table-reservations/internal/middleware"
	ucReservation "github.com/BruksfildServices01/table-reservations/internal/usecase/reservation"
)

// Deps are the singletons shared by the HTTP API and the background jobs.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Repo     domain.Repository
	Locker   lock.Locker
	Hours    domain.ServiceHours
	Location *time.Location
	Audit    *audit.Dispatcher
	Sweep    *ucReservation.RunDailySweep
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES
	// ======================================================
	proposeUC := ucReservation.NewProposeReservation(
		d.Repo,
		d.Locker,
		d.Hours,
		d.Location,
		d.Audit,
	)
	cancelUC := ucReservation.NewCancelReservation(d.Repo, d.Audit)
	deleteUC := ucReservation.NewDeleteReservation(d.Repo, d.Audit)
	listUC := ucReservation.NewListReservations(d.Repo)
	availabilityUC := ucReservation.NewGetAvailability(d.Repo, d.Hours, d.Location)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	meHandler := handlers.NewMeHandler(d.DB)
	userHandler := handlers.NewUserHandler(authHandler, d.Audit)
	customerHandler := handlers.NewCustomerHandler(d.DB)
	tableHandler := handlers.NewTableHandler(d.Repo, availabilityUC, d.Audit)
	reservationHandler := handlers.NewReservationHandler(proposeUC, cancelUC, deleteUC, listUC)
	sweepHandler := handlers.NewSweepHandler(d.Sweep, d.Location)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	can := middleware.RequireAction

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", can(access.ViewProfile), meHandler.GetMe)
			secured.PATCH("/me", can(access.ViewProfile), meHandler.UpdateMe)

			secured.GET("/tables", can(access.ViewTables), tableHandler.List)
			secured.POST("/tables", can(access.ManageTables), tableHandler.Create)
			secured.PATCH("/tables/:id/state", can(access.UpdateTableState), tableHandler.UpdateState)
			secured.GET("/tables/:id/availability", can(access.ViewAvailability), tableHandler.Availability)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.POST("/reservations", can(access.CreateReservation), reservationHandler.Create)
			secured.PATCH("/reservations/:id/cancel", can(access.CancelOwn), reservationHandler.Cancel)
			secured.DELETE("/reservations/:id", can(access.DeleteReservation), reservationHandler.Delete)

			secured.GET("/customers", can(access.ViewCustomers), customerHandler.List)

			admin := secured.Group("/admin")
			{
				admin.POST("/sweep", can(access.RunSweep), sweepHandler.Run)
				admin.POST("/users", can(access.ManageUsers), userHandler.Create)
			}

			secured.GET("/audit-logs", can(access.ViewAuditLogs), auditLogsHandler.List)
		}
	}
}
