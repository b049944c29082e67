package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

type AdminQuizController struct {
	quizService service.QuizService
}

func NewAdminQuizController(quizService service.QuizService) *AdminQuizController {
	return &AdminQuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a manual quiz
// @Description Creates a quiz with all its questions. Manual quizzes are published immediately.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizCreateDTO true "Quiz with questions"
// @Success 201 {object} dto.QuizCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or question data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [post]
func (c *AdminQuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.CurrentClaims(ctx)
	created, err := c.quizService.CreateManualQuiz(req, claims.UserID)
	if err != nil {
		var invalid *service.InvalidQuestionError
		if errors.As(err, &invalid) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// PendingQuizzes godoc
// @Summary (Admin) List quizzes awaiting approval
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/pending [get]
func (c *AdminQuizController) PendingQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetPendingQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("PendingQuizzes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve pending quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// UpdateQuizStatus godoc
// @Summary (Admin) Approve or reject a quiz
// @Description Setting status to published makes the quiz public; pending or rejected hides it.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param status body dto.QuizStatusUpdateDTO true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID or status"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/{quiz_id}/status [put]
func (c *AdminQuizController) UpdateQuizStatus(ctx *gin.Context) {
	quizID, ok := parseQuizID(ctx)
	if !ok {
		return
	}

	var req dto.QuizStatusUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.quizService.UpdateStatus(quizID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("UpdateQuizStatus: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update quiz status", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Quiz status updated successfully"})
}

// DeleteQuiz godoc
// @Summary (Admin) Delete a quiz
// @Description Soft-deletes the quiz; its questions and past results remain.
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/{quiz_id} [delete]
func (c *AdminQuizController) DeleteQuiz(ctx *gin.Context) {
	quizID, ok := parseQuizID(ctx)
	if !ok {
		return
	}

	if err := c.quizService.Delete(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("DeleteQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

func parseQuizID(ctx *gin.Context) (uint, bool) {
	quizIDStr := ctx.Param("quiz_id")
	quizID, err := strconv.ParseUint(quizIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz ID format"})
		return 0, false
	}
	return uint(quizID), true
}
