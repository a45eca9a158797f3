package api

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SlotHandler serves slot resolution for program days.
type SlotHandler struct {
	slotService service.SlotService
}

func NewSlotHandler(slotService service.SlotService) *SlotHandler {
	return &SlotHandler{slotService: slotService}
}

// SetSelectionRequest picks an exercise for a slot.
type SetSelectionRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// ProgressRequest lists the slots of one day.
type ProgressRequest struct {
	Day   int                  `json:"day"`
	Slots []domain.WorkoutSlot `json:"slots" binding:"required,dive"`
}

// SlotResponse is the resolved view of a slot.
type SlotResponse struct {
	ProgramID          string             `json:"programId"`
	ExerciseSlot       string             `json:"exerciseSlot"`
	CategorySlot       string             `json:"categorySlot"`
	Categories         []domain.Category  `json:"categories"`
	AvailableExercises []ExerciseResponse `json:"availableExercises"`
	SelectedExerciseID *string            `json:"selectedExerciseId"`
	SelectionSource    string             `json:"selectionSource"`
}

// MapSlotResolutionToResponse converts a resolution to its DTO. No selection renders as null.
func MapSlotResolutionToResponse(res service.SlotResolution) SlotResponse {
	out := SlotResponse{
		ProgramID:          res.Key.ProgramID,
		ExerciseSlot:       res.Key.ExerciseSlot,
		CategorySlot:       string(res.Key.CategorySlot),
		Categories:         res.Categories,
		AvailableExercises: MapExercisesToResponse(res.Available),
		SelectionSource:    string(res.Source),
	}
	if res.SelectedExerciseID != "" {
		id := res.SelectedExerciseID
		out.SelectedExerciseID = &id
	}
	return out
}

// ResolveSlot godoc
// @Summary Resolve a program slot
// @Tags Slots
// @Produce json
// @Security BearerAuth
// @Param programId path string true "Program ID"
// @Param exerciseSlot path string true "Slot position, e.g. 1A"
// @Param categorySlot path string true "Category slot tag, e.g. PRIMARY_SQUAT"
// @Success 200 {object} SlotResponse
// @Router /programs/{programId}/slots/{exerciseSlot}/{categorySlot} [get]
func (h *SlotHandler) ResolveSlot(c *gin.Context) {
	res := h.slotService.ResolveSlot(c.Request.Context(),
		c.Param("programId"), c.Param("exerciseSlot"), domain.CategorySlot(c.Param("categorySlot")))
	c.JSON(http.StatusOK, MapSlotResolutionToResponse(res))
}

// SetSelection godoc
// @Summary Override the exercise chosen for a slot
// @Tags Slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param selection body SetSelectionRequest true "Chosen exercise"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} gin.H "Exercise not available for this slot"
// @Router /programs/{programId}/slots/{exerciseSlot}/{categorySlot} [put]
func (h *SlotHandler) SetSelection(c *gin.Context) {
	var req SetSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	programID, exerciseSlot := c.Param("programId"), c.Param("exerciseSlot")
	categorySlot := domain.CategorySlot(c.Param("categorySlot"))
	err := h.slotService.SetSelection(c.Request.Context(), programID, exerciseSlot, categorySlot, req.ExerciseID)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to store selection.")
		return
	}

	res := h.slotService.ResolveSlot(c.Request.Context(), programID, exerciseSlot, categorySlot)
	c.JSON(http.StatusOK, MapSlotResolutionToResponse(res))
}

// GetProgress godoc
// @Summary Count selected slots of a day
// @Tags Slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param day body ProgressRequest true "Slots of the day"
// @Success 200 {object} service.SlotProgress
// @Router /programs/{programId}/progress [post]
func (h *SlotHandler) GetProgress(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	day := domain.WorkoutDay{ProgramID: c.Param("programId"), Day: req.Day, Slots: req.Slots}
	c.JSON(http.StatusOK, h.slotService.Progress(c.Request.Context(), day))
}
