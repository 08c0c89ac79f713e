package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hqnguyen/elevenprep/internal/dto"
	"github.com/hqnguyen/elevenprep/internal/service"
)

type SubjectController struct {
	subjectService  service.SubjectService
	questionService service.QuestionService
}

func NewSubjectController(subjectService service.SubjectService, questionService service.QuestionService) *SubjectController {
	return &SubjectController{subjectService: subjectService, questionService: questionService}
}

// ListSubjects godoc
// @Summary List practice subjects
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubjectResponse
// @Router /subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	resp, err := c.subjectService.ListSubjects()
	if err != nil {
		respondError(ctx, err, "ListSubjects")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListTopics godoc
// @Summary List topics for a subject
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param subject_id path int true "Subject ID"
// @Success 200 {array} dto.TopicResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /subjects/{subject_id}/topics [get]
func (c *SubjectController) ListTopics(ctx *gin.Context) {
	subjectID, ok := c.subjectID(ctx)
	if !ok {
		return
	}
	resp, err := c.subjectService.ListTopics(subjectID)
	if err != nil {
		respondError(ctx, err, "ListTopics")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// BrowseQuestions godoc
// @Summary Browse active questions for a subject
// @Description Lists questions for assembling a new practice set. Optional topic_id and limit query params.
// @Tags Subjects
// @Produce json
// @Security BearerAuth
// @Param subject_id path int true "Subject ID"
// @Param topic_id query int false "Filter by topic"
// @Param limit query int false "Maximum questions to return"
// @Success 200 {array} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /subjects/{subject_id}/questions [get]
func (c *SubjectController) BrowseQuestions(ctx *gin.Context) {
	subjectID, ok := c.subjectID(ctx)
	if !ok {
		return
	}

	var topicID *uint
	if raw := ctx.Query("topic_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid topic_id format"})
			return
		}
		id := uint(val)
		topicID = &id
	}
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit format"})
			return
		}
		limit = val
	}

	resp, err := c.questionService.BrowseQuestions(subjectID, topicID, limit)
	if err != nil {
		respondError(ctx, err, "BrowseQuestions")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *SubjectController) subjectID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param("subject_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject ID format"})
		return 0, false
	}
	return uint(val), true
}
