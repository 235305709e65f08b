package api

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplate godoc
// @Summary Create a workout template
// @Description Unknown exercise ids are dropped; at least one must resolve.
// @Tags Templates
// @Accept json
// @Produce json
// @Param template body CreateTemplateRequest true "Template details"
// @Success 201 {object} domain.WorkoutTemplate
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	draft := domain.TemplateDraft{
		Name:        req.Name,
		Description: req.Description,
		ExerciseIDs: req.ExerciseIDs,
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, domain.ExerciseRef{
			ExerciseID: item.ExerciseID,
			TargetSets: item.TargetSets,
			TargetReps: item.TargetReps,
			Notes:      item.Notes,
		})
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), draft)
	if err != nil {
		abortWithServiceError(c, err, "Failed to create template.")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates godoc
// @Summary List workout templates
// @Tags Templates
// @Produce json
// @Success 200 {array} domain.WorkoutTemplate
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.templateService.ListTemplates(c.Request.Context()))
}

// DeleteTemplate godoc
// @Summary Delete a workout template
// @Tags Templates
// @Param id path string true "Template ID"
// @Description Deleting an unknown id succeeds and reports deleted=false.
// @Produce json
// @Success 200 {object} DeleteResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	deleted := h.templateService.DeleteTemplate(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
