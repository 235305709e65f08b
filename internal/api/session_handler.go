package api

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/service"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the active-session state machine.
// Operations that find no active session answer 200 with a null session.
type SessionHandler struct {
	sessionService service.SessionService
	now            func() time.Time
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, now: time.Now}
}

func (h *SessionHandler) respond(c *gin.Context, code int, s *domain.ActiveSession) {
	c.JSON(code, mapSessionToResponse(s, h.now()))
}

// GetSession godoc
// @Summary Get the active workout session
// @Tags Session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.respond(c, http.StatusOK, h.sessionService.ActiveSession(c.Request.Context()))
}

// StartEmpty godoc
// @Summary Start an empty workout session
// @Tags Session
// @Accept json
// @Produce json
// @Param session body StartSessionRequest false "Optional session name"
// @Success 201 {object} SessionResponse
// @Failure 409 {object} gin.H "A session is already in progress"
// @Router /session [post]
func (h *SessionHandler) StartEmpty(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := h.sessionService.StartEmpty(c.Request.Context(), req.Name)
	if err != nil {
		h.abortStart(c, session, err)
		return
	}
	h.respond(c, http.StatusCreated, session)
}

// StartFromTemplate godoc
// @Summary Start a workout session from a template
// @Tags Session
// @Produce json
// @Param templateId path string true "Template ID"
// @Description An unknown template starts nothing and returns session=null.
// @Success 201 {object} SessionResponse
// @Success 200 {object} SessionResponse "Template not found; nothing started"
// @Failure 409 {object} gin.H "A session is already in progress"
// @Router /session/from-template/{templateId} [post]
func (h *SessionHandler) StartFromTemplate(c *gin.Context) {
	session, err := h.sessionService.StartFromTemplate(c.Request.Context(), c.Param("templateId"))
	if err != nil {
		h.abortStart(c, session, err)
		return
	}
	if session == nil {
		h.respond(c, http.StatusOK, nil)
		return
	}
	h.respond(c, http.StatusCreated, session)
}

func (h *SessionHandler) abortStart(c *gin.Context, current *domain.ActiveSession, err error) {
	if errors.Is(err, domain.ErrSessionInProgress) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error(), "session": current})
		return
	}
	abortWithServiceError(c, err, "Failed to start session.")
}

// AddExercise godoc
// @Summary Add an exercise to the active session
// @Tags Session
// @Accept json
// @Produce json
// @Param exercise body AddExerciseRequest true "Exercise to add"
// @Success 200 {object} SessionResponse
// @Router /session/exercises [post]
func (h *SessionHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.respond(c, http.StatusOK, h.sessionService.AddExercise(c.Request.Context(), req.ExerciseID))
}

// RemoveExercise godoc
// @Summary Remove an entry from the active session
// @Tags Session
// @Produce json
// @Param entryId path string true "Entry ID"
// @Success 200 {object} SessionResponse
// @Router /session/entries/{entryId} [delete]
func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	h.respond(c, http.StatusOK, h.sessionService.RemoveExercise(c.Request.Context(), c.Param("entryId")))
}

// AddSet godoc
// @Summary Log a set for an entry
// @Description Weight and reps may be strings or numbers; blank or unparseable values are stored as null.
// @Tags Session
// @Accept json
// @Produce json
// @Param entryId path string true "Entry ID"
// @Param set body AddSetRequest true "Set values"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} gin.H "Empty set"
// @Router /session/entries/{entryId}/sets [post]
func (h *SessionHandler) AddSet(c *gin.Context) {
	var req AddSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	session, err := h.sessionService.AddSet(c.Request.Context(), c.Param("entryId"), domain.SetInput{
		Weight: string(req.Weight),
		Reps:   string(req.Reps),
		Notes:  req.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err, "Failed to log set.")
		return
	}
	h.respond(c, http.StatusOK, session)
}

// RemoveSet godoc
// @Summary Remove a logged set
// @Tags Session
// @Produce json
// @Param entryId path string true "Entry ID"
// @Param setId path string true "Set ID"
// @Success 200 {object} SessionResponse
// @Router /session/entries/{entryId}/sets/{setId} [delete]
func (h *SessionHandler) RemoveSet(c *gin.Context) {
	h.respond(c, http.StatusOK, h.sessionService.RemoveSet(c.Request.Context(), c.Param("entryId"), c.Param("setId")))
}

// Complete godoc
// @Summary Finish the active session
// @Description Moves the session to history. requireSets overrides the server default.
// @Tags Session
// @Accept json
// @Produce json
// @Param options body CompleteSessionRequest false "Completion options"
// @Success 200 {object} gin.H "session is null; completed holds the history record"
// @Failure 400 {object} gin.H "No sets logged"
// @Router /session/complete [post]
func (h *SessionHandler) Complete(c *gin.Context) {
	var req CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	record, err := h.sessionService.Complete(c.Request.Context(), service.CompleteOptions{RequireSets: req.RequireSets})
	if err != nil {
		abortWithServiceError(c, err, "Failed to complete session.")
		return
	}
	var summary *HistorySummaryResponse
	if record != nil {
		s := mapHistoryToSummary(*record)
		summary = &s
	}
	c.JSON(http.StatusOK, gin.H{"session": nil, "completed": record, "summary": summary})
}

// Cancel godoc
// @Summary Discard the active session
// @Tags Session
// @Produce json
// @Success 200 {object} gin.H
// @Router /session/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	cancelled := h.sessionService.Cancel(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"session": nil, "cancelled": cancelled})
}

// AvailableExercises godoc
// @Summary List exercises not yet in the active session
// @Tags Session
// @Produce json
// @Success 200 {array} domain.Exercise
// @Router /session/available-exercises [get]
func (h *SessionHandler) AvailableExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionService.AvailableExercises(c.Request.Context()))
}
