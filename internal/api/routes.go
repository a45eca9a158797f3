package api

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	exerciseService service.ExerciseService,
	slotService service.SlotService,
	catalogController CatalogController,
) {
	exerciseHandler := NewExerciseHandler(exerciseService)
	slotHandler := NewSlotHandler(slotService)
	catalogHandler := NewCatalogHandler(catalogController)

	authMiddleware := AuthMiddleware(jwtSecret)
	coachOnly := RoleMiddleware(domain.RoleCoach)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	// Catalog reads are public.
	exerciseGroup := apiV1.Group("/exercises")
	{
		exerciseGroup.GET("", exerciseHandler.ListExercises)
		exerciseGroup.GET("/categories", exerciseHandler.ListCategories)
		exerciseGroup.GET("/:id", exerciseHandler.GetExercise)

		exerciseGroup.POST("", authMiddleware, coachOnly, exerciseHandler.CreateExercise)
		exerciseGroup.PATCH("/:id", authMiddleware, coachOnly, exerciseHandler.UpdateExercise)
		exerciseGroup.DELETE("/:id", authMiddleware, coachOnly, exerciseHandler.DeleteExercise)
	}

	catalogGroup := apiV1.Group("/catalog")
	{
		catalogGroup.GET("/status", catalogHandler.GetStatus)
		catalogGroup.POST("/refresh", authMiddleware, coachOnly, catalogHandler.Refresh)
	}

	programGroup := apiV1.Group("/programs/:programId")
	programGroup.Use(authMiddleware)
	{
		programGroup.GET("/slots/:exerciseSlot/:categorySlot", slotHandler.ResolveSlot)
		programGroup.PUT("/slots/:exerciseSlot/:categorySlot", slotHandler.SetSelection)
		programGroup.POST("/progress", slotHandler.GetProgress)
	}
}
