package user

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

type QuizController struct {
	quizService       service.QuizService
	submissionService service.SubmissionService
	generationService service.GenerationService
}

func NewQuizController(qs service.QuizService, ss service.SubmissionService, gs service.GenerationService) *QuizController {
	return &QuizController{
		quizService:       qs,
		submissionService: ss,
		generationService: gs,
	}
}

// ListQuizzes godoc
// @Summary List published quizzes
// @Description All quizzes visible to regular users, newest first.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetPublishedQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("ListQuizzes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// MyQuizzes godoc
// @Summary List quizzes created by the authenticated user
// @Description Includes pending and rejected quizzes, so creators can track approval.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/mine [get]
func (c *QuizController) MyQuizzes(ctx *gin.Context) {
	claims := middleware.CurrentClaims(ctx)
	quizzes, err := c.quizService.GetUserQuizzes(claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("MyQuizzes: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quizzes", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Returns the quiz and its questions for taking an attempt. Correct answers are not included.
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz ID"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quizID, ok := parseQuizID(ctx)
	if !ok {
		return
	}

	quiz, err := c.quizService.GetQuizWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("GetQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers for a quiz
// @Description Grades the submission server-side and records the result. A repeat submission of the same quiz within the duplicate-prevention window is rejected.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param submission body dto.QuizSubmitDTO true "Answers keyed by question ID, plus time taken in seconds"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.DuplicateSubmissionDTO "Duplicate submission"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	quizID, ok := parseQuizID(ctx)
	if !ok {
		return
	}

	var req dto.QuizSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if len(req.Answers) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission must contain at least one answer"})
		return
	}

	claims := middleware.CurrentClaims(ctx)
	result, err := c.submissionService.Submit(claims.UserID, quizID, req)
	if err != nil {
		var dup *service.DuplicateSubmissionError
		if errors.As(err, &dup) {
			ctx.JSON(http.StatusBadRequest, dto.DuplicateSubmissionDTO{
				Message:             "You have already submitted this quiz recently. Please wait before submitting again.",
				DuplicatePrevention: true,
				LastSubmission:      dup.LastSubmission,
			})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", claims.UserID).Msg("SubmitQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process submission", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GenerateQuiz godoc
// @Summary Generate a quiz with AI
// @Description Generates questions via Gemini, falling back to templates when the AI is unavailable. Quizzes from regular users await admin approval.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param generation body dto.QuizGenerateDTO true "Topic, difficulty and question count"
// @Success 201 {object} dto.QuizCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /quizzes/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	var req dto.QuizGenerateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.CurrentClaims(ctx)
	created, err := c.generationService.GenerateQuiz(ctx.Request.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("GenerateQuiz: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, created)
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
