package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hqnguyen/elevenprep/internal/controller/middleware"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/model"
	"github.com/hqnguyen/elevenprep/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService  service.SessionService
	attemptService  service.AttemptService
	questionService service.QuestionService
	historyService  service.HistoryService
}

func NewSessionController(
	sessionService service.SessionService,
	attemptService service.AttemptService,
	questionService service.QuestionService,
	historyService service.HistoryService,
) *SessionController {
	return &SessionController{
		sessionService:  sessionService,
		attemptService:  attemptService,
		questionService: questionService,
		historyService:  historyService,
	}
}

// StartSession godoc
// @Summary Start a practice session
// @Description Creates a session for a subject with its question set bound at creation time.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_data body dto.StartSessionRequest true "Subject and ordered question ids"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Empty question set or invalid body"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	userID, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.sessionService.StartSession(userID, req)
	if err != nil {
		respondError(ctx, err, "StartSession")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetSession godoc
// @Summary Get a session's state
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	resp, err := c.sessionService.GetSession(sessionID, userID)
	if err != nil {
		respondError(ctx, err, "GetSession")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// LoadSessionQuestions godoc
// @Summary Load a session's questions for display
// @Description Returns the bound questions in order with options freshly shuffled. Echo the shuffled option ids back as display_order when recording an answer.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/questions [get]
func (c *SessionController) LoadSessionQuestions(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	resp, err := c.questionService.LoadSessionQuestions(sessionID, userID)
	if err != nil {
		respondError(ctx, err, "LoadSessionQuestions")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordAnswer godoc
// @Summary Record an answer within a session
// @Description Persists one attempt with the shown option order. Resubmitting a question returns the original attempt unchanged.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Param answer_data body dto.RecordAnswerRequest true "Answer payload"
// @Success 201 {object} dto.AttemptResponse
// @Success 200 {object} dto.AttemptResponse "Duplicate submission, existing attempt returned"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{session_id}/answers [post]
func (c *SessionController) RecordAnswer(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	var req dto.RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.attemptService.RecordAnswer(userID, sessionID, req)
	if errors.Is(err, model.ErrDuplicateAttempt) {
		// Idempotent resubmission: the first attempt stands.
		ctx.JSON(http.StatusOK, resp)
		return
	}
	if err != nil {
		respondError(ctx, err, "RecordAnswer")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CompleteSession godoc
// @Summary Mark a session as completed
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/complete [post]
func (c *SessionController) CompleteSession(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	resp, err := c.sessionService.CompleteSession(sessionID, userID)
	if err != nil {
		respondError(ctx, err, "CompleteSession")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSession godoc
// @Summary Delete a session and all of its attempts
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id} [delete]
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	if err := c.sessionService.DeleteSession(sessionID, userID); err != nil {
		respondError(ctx, err, "DeleteSession")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSessionSummary godoc
// @Summary Get score and attempts for one session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/summary [get]
func (c *SessionController) GetSessionSummary(ctx *gin.Context) {
	userID, sessionID, ok := c.sessionScope(ctx)
	if !ok {
		return
	}
	resp, err := c.historyService.GetSessionSummary(sessionID, userID)
	if err != nil {
		respondError(ctx, err, "GetSessionSummary")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSessionHistory godoc
// @Summary List the user's sessions with scores, newest first
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SessionSummaryResponse
// @Router /sessions [get]
func (c *SessionController) ListSessionHistory(ctx *gin.Context) {
	userID, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return
	}
	resp, err := c.historyService.ListSessionHistory(userID)
	if err != nil {
		respondError(ctx, err, "ListSessionHistory")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *SessionController) sessionScope(ctx *gin.Context) (uuid.UUID, uint, bool) {
	userID, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
		return uuid.Nil, 0, false
	}
	sessionID, err := strconv.ParseUint(ctx.Param("session_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID format"})
		return uuid.Nil, 0, false
	}
	return userID, uint(sessionID), true
}

// respondError maps sentinel domain errors onto HTTP statuses. Unknown errors
// are persistence failures: logged server-side, surfaced as a retryable 500.
func respondError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrQuestionNotFound),
		errors.Is(err, model.ErrSubjectNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrEmptyQuestionSet):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("Session controller: unexpected service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Something went wrong, please retry"})
	}
}
