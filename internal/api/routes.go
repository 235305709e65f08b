package api

import (
	"alcyxob/gym-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	exerciseService service.ExerciseService,
	templateService service.TemplateService,
	sessionService service.SessionService,
	historyService service.HistoryService,
	exportService service.ExportService,
) {
	exerciseHandler := NewExerciseHandler(exerciseService)
	templateHandler := NewTemplateHandler(templateService)
	sessionHandler := NewSessionHandler(sessionService)
	historyHandler := NewHistoryHandler(historyService, exportService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/grouped", exerciseHandler.GroupedExercises)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		templateGroup := apiV1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.POST("", sessionHandler.StartEmpty)
			sessionGroup.POST("/from-template/:templateId", sessionHandler.StartFromTemplate)
			sessionGroup.POST("/exercises", sessionHandler.AddExercise)
			sessionGroup.DELETE("/entries/:entryId", sessionHandler.RemoveExercise)
			sessionGroup.POST("/entries/:entryId/sets", sessionHandler.AddSet)
			sessionGroup.DELETE("/entries/:entryId/sets/:setId", sessionHandler.RemoveSet)
			sessionGroup.POST("/complete", sessionHandler.Complete)
			sessionGroup.POST("/cancel", sessionHandler.Cancel)
			sessionGroup.GET("/available-exercises", sessionHandler.AvailableExercises)
		}

		historyGroup := apiV1.Group("/history")
		{
			historyGroup.GET("", historyHandler.ListHistory)
			historyGroup.GET("/:id", historyHandler.GetHistory)
		}

		exportGroup := apiV1.Group("/exports")
		{
			exportGroup.GET("/history.xlsx", historyHandler.DownloadWorkbook)
			exportGroup.POST("/history", historyHandler.PublishWorkbook)
		}

		apiV1.GET("/snapshot", historyHandler.Snapshot)
	}
}
