package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/internal/analytics"
	"github.com/clubhubdev/clubhub-backend/internal/auditlog"
	"github.com/clubhubdev/clubhub-backend/internal/auth"
	"github.com/clubhubdev/clubhub-backend/internal/club"
	"github.com/clubhubdev/clubhub-backend/internal/clubrequest"
	"github.com/clubhubdev/clubhub-backend/internal/event"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
	"github.com/clubhubdev/clubhub-backend/internal/reports"
	"github.com/clubhubdev/clubhub-backend/internal/userprofile"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

// SetupRoutes wires repositories, services and handlers onto the engine
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, publisher registration.ConfirmationPublisher) {
	// ===========================
	// 🧩 Repositories
	// ===========================
	auditRepo := auditlog.NewRepository(db)
	authRepo := auth.NewRepository(db)
	clubRepo := club.NewRepository(db)
	clubRequestRepo := clubrequest.NewRepository(db)
	eventRepo := event.NewRepository(db)
	registrationRepo := registration.NewRepository(db)
	analyticsRepo := analytics.NewRepository(db)
	profileRepo := userprofile.NewRepository(db)

	// ===========================
	// ⚙️ Services
	// ===========================
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(authRepo, cfg)
	clubSvc := club.NewService(clubRepo)
	clubRequestSvc := clubrequest.NewService(clubRequestRepo)
	eventSvc := event.NewService(eventRepo)
	registrationSvc := registration.NewService(registrationRepo, eventRepo, authRepo, publisher)
	analyticsSvc := analytics.NewService(analyticsRepo)
	profileSvc := userprofile.NewService(profileRepo)

	// ===========================
	// 🎯 Handlers
	// ===========================
	auditHandler := auditlog.NewHandler(auditSvc)
	authHandler := auth.NewHandler(authSvc, auditSvc)
	clubHandler := club.NewHandler(clubSvc, auditSvc)
	clubRequestHandler := clubrequest.NewHandler(clubRequestSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc, auditSvc)
	registrationHandler := registration.NewHandler(registrationSvc, auditSvc)
	analyticsHandler := analytics.NewHandler(analyticsSvc)
	profileHandler := userprofile.NewHandler(profileSvc)
	reportsHandler := reports.NewHandler(analyticsSvc, registrationSvc)

	// Swagger + health
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(cfg, authSvc)
	leaderOnly := middleware.RBACMiddleware(auth.RoleLeader)
	universityOnly := middleware.RBACMiddleware(auth.RoleUniversity)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ===========================
	// 🔓 Public routes
	// ===========================
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.POST("/events/track-views", eventHandler.TrackViews)
	api.GET("/participant/events", eventHandler.BrowseEvents)

	api.POST("/registrations", registrationHandler.RegisterGuest)
	api.GET("/registrations", registrationHandler.ListActive)
	api.GET("/registrations/:id/qr", registrationHandler.QRImage)
	api.GET("/participant/registrations/:email", registrationHandler.ByParticipant)
	api.GET("/participant/registrations/:email/qrs", registrationHandler.QRsByParticipant)

	analyticsGroup := api.Group("/analytics")
	{
		analyticsGroup.GET("/overview", analyticsHandler.Overview)
		analyticsGroup.GET("/popular-clubs", analyticsHandler.PopularClubs)
		analyticsGroup.GET("/active-days", analyticsHandler.ActiveDays)
		analyticsGroup.GET("/event-wise-attendance", analyticsHandler.EventAttendance)
	}

	// ===========================
	// 🔐 Authenticated routes
	// ===========================
	authed := api.Group("")
	authed.Use(authMW)
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/clubs", clubHandler.ListClubs)

		authed.POST("/events/:id/register", registrationHandler.Register)
		authed.DELETE("/events/:id/rsvp", registrationHandler.Cancel)

		authed.POST("/club-requests", clubRequestHandler.CreateRequest)
		authed.GET("/club-requests/mine", clubRequestHandler.MyRequests)

		profileGroup := authed.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.POST("/upload-image", profileHandler.UploadImage)
			profileGroup.GET("/registrations", profileHandler.RegistrationHistory)
		}
	}

	// ===========================
	// 🧑‍💼 Leader routes
	// ===========================
	leader := api.Group("")
	leader.Use(authMW, leaderOnly)
	{
		leader.POST("/events", eventHandler.CreateEvent)
		leader.PUT("/events/:id", eventHandler.UpdateEvent)
		leader.DELETE("/events/:id", eventHandler.DeleteEvent)
		leader.POST("/events/upload-poster", eventHandler.UploadPoster)

		leader.GET("/leader/events", eventHandler.LeaderEvents)
		leader.GET("/leader/registrations/:id", registrationHandler.Roster)
		leader.POST("/leader/check-in", registrationHandler.CheckIn)
		leader.POST("/leader/check-in/:id", registrationHandler.CheckIn)
		leader.GET("/leader/events/:id/roster.csv", reportsHandler.RosterCSV)

		leader.GET("/profile/user-by-email", profileHandler.GetUserByEmail)
	}

	// ===========================
	// 🏛️ University routes
	// ===========================
	university := api.Group("/university")
	university.Use(authMW, universityOnly)
	{
		university.GET("/clubs", clubHandler.ListClubsForAdmin)
		university.DELETE("/clubs/:id", clubHandler.DeleteClub)
		university.POST("/clubs/:id/revoke-leader", clubHandler.RevokeLeader)

		university.GET("/club-requests", clubRequestHandler.ListForReview)
		university.POST("/club-requests/:id/decision", clubRequestHandler.Decide)

		university.GET("/audit-logs", auditHandler.GetAuditLogs)
		university.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)

		university.GET("/reports/attendance.xlsx", reportsHandler.AttendanceXLSX)
		university.GET("/reports/attendance.pdf", reportsHandler.AttendancePDF)
	}
}
