package api

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
// The id is derived from the name and cannot be chosen.
type CreateExerciseRequest struct {
	Name            string                `json:"name" binding:"required"`
	Category        domain.Category       `json:"category" binding:"required"`
	Description     string                `json:"description"`
	VideoURL        *string               `json:"videoUrl" binding:"omitempty,url"`
	Tips            []string              `json:"tips"`
	MusclesTargeted *domain.MuscleTargets `json:"musclesTargeted"`
	Equipment       []string              `json:"equipment"`
	SelectionPools  []domain.CategorySlot `json:"selectionPools"`
	IsCore          bool                  `json:"isCore"`
}

// UpdateExerciseRequest is a partial update; omitted fields are left as they are.
type UpdateExerciseRequest = catalog.ExercisePatch

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Category        domain.Category       `json:"category"`
	Description     string                `json:"description"`
	VideoURL        *string               `json:"videoUrl,omitempty"`
	Tips            []string              `json:"tips,omitempty"`
	MusclesTargeted *domain.MuscleTargets `json:"musclesTargeted,omitempty"`
	Equipment       []string              `json:"equipment,omitempty"`
	SelectionPools  []domain.CategorySlot `json:"selectionPools,omitempty"`
	IsCore          bool                  `json:"isCore"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:              ex.ID,
		Name:            ex.Name,
		Category:        ex.Category,
		Description:     ex.Description,
		VideoURL:        ex.VideoURL,
		Tips:            ex.Tips,
		MusclesTargeted: ex.MusclesTargeted,
		Equipment:       ex.Equipment,
		SelectionPools:  ex.SelectionPools,
		IsCore:          ex.IsCore,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(ex)
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List catalog exercises
// @Tags Exercises
// @Produce json
// @Param category query string false "Exact category filter"
// @Success 200 {array} ExerciseResponse
// @Failure 400 {object} gin.H "Unknown category"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Query("category"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListCategories godoc
// @Summary List the categories present in the catalog
// @Tags Exercises
// @Produce json
// @Success 200 {array} string
// @Router /exercises/categories [get]
func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.ListCategories())
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	ex, err := h.exerciseService.GetExerciseByID(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(ex))
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 403 {object} gin.H "Forbidden (not a coach)"
// @Failure 409 {object} gin.H "An exercise with this name exists"
// @Failure 502 {object} gin.H "Catalog store unavailable"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), domain.Exercise{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		Tips:            req.Tips,
		MusclesTargeted: req.MusclesTargeted,
		Equipment:       req.Equipment,
		SelectionPools:  req.SelectionPools,
		IsCore:          req.IsCore,
	}, userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Partially update an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param patch body UpdateExerciseRequest true "Fields to change"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [patch]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondWithServiceError maps service and catalog errors to status codes.
func respondWithServiceError(c *gin.Context, err error) {
	var te *catalog.TransportError
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &te):
		_ = c.Error(err)
		abortWithError(c, http.StatusBadGateway, "Exercise store is unavailable.")
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
