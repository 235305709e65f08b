package api

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/service"
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

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), domain.ExerciseDraft{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Description: req.Description,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// ListExercises godoc
// @Summary List the exercise library
// @Tags Exercises
// @Produce json
// @Success 200 {array} domain.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.ListExercises(c.Request.Context()))
}

// GroupedExercises godoc
// @Summary List exercises grouped by muscle group
// @Tags Exercises
// @Produce json
// @Success 200 {array} domain.CategoryGroup
// @Router /exercises/grouped [get]
func (h *ExerciseHandler) GroupedExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.GroupedExercises(c.Request.Context()))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Description Removes the exercise from the library, every template and the active session.
// @Tags Exercises
// @Param id path string true "Exercise ID"
// @Description Deleting an unknown id succeeds and reports deleted=false.
// @Produce json
// @Success 200 {object} DeleteResponse
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	deleted := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
