package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"
	"alcyxob/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles the operations the HTTP surface exposes.
type Services struct {
	Auth       service.AuthService
	Players    service.PlayerService
	Coaching   service.CoachingService
	Drills     service.DrillService
	Texts      service.TextService
	Dashboards service.DashboardService
}

func SetupRoutes(
	router *gin.Engine,
	sessions *SessionManager,
	services Services,
	files storage.FileStorage,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.NewNop()
	}
	useFormFieldNames()

	r := responder{sessions: sessions, logger: logger}
	authHandler := NewAuthHandler(r, services.Auth)
	playerHandler := NewPlayerHandler(r, services.Players)
	coachingHandler := NewCoachingHandler(r, services.Coaching)
	drillHandler := NewDrillHandler(r, services.Drills)
	textHandler := NewTextHandler(r, services.Texts)
	pageHandler := NewPageHandler(r, services.Dashboards, services.Auth)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Uploaded photos and drills, when they live on the local filesystem.
	// With S3 the pages link to presigned URLs instead.
	for _, area := range []string{storage.AreaPlayers, storage.AreaDrills} {
		if fs, ok := storage.HTTPFileSystem(files, area); ok {
			router.StaticFS(storage.StaticURLPrefix+"/"+area, fs)
		}
	}

	site := router.Group("")
	site.Use(SessionMiddleware(sessions))
	{
		// --- Pages ---
		site.GET("/", pageHandler.Dashboard)
		site.GET("/instructor", pageHandler.Workspace)
		site.GET("/players/:id", pageHandler.PlayerDetail)

		// --- Sessions ---
		site.POST("/login_player", authHandler.LoginPlayer)
		site.POST("/login_instructor", authHandler.LoginInstructor)
		site.POST("/logout", authHandler.Logout)

		// --- Instructor actions ---
		site.POST("/star/toggle", instructorOnly(r, true), coachingHandler.ToggleStar)

		instructor := site.Group("")
		instructor.Use(instructorOnly(r, false))
		instructor.POST("/players/create", playerHandler.CreatePlayer)
		instructor.POST("/players/bulk_csv", playerHandler.BulkImportCSV)
		instructor.POST("/players/:id/delete", playerHandler.DeletePlayer)
		instructor.POST("/instructors/:id/delete", authHandler.DeleteInstructor)
		instructor.POST("/metrics/add", coachingHandler.AddMetric)
		instructor.POST("/notes/add", coachingHandler.AddNote)
		instructor.POST("/drills/upload", drillHandler.UploadDrill)
		instructor.POST("/drills/send", drillHandler.ShareDrill)
		instructor.POST("/text/send", textHandler.SendText)
	}
}
