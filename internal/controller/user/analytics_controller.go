package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// UserAnalytics godoc
// @Summary Get the authenticated user's analytics
// @Description Aggregate stats, per-topic performance, recent results, 30-day progress and activity streaks. All sections are computed together; the response is never partial.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserAnalyticsDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/user [get]
func (c *AnalyticsController) UserAnalytics(ctx *gin.Context) {
	claims := middleware.CurrentClaims(ctx)
	analytics, err := c.analyticsService.UserAnalytics(claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("UserAnalytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Error fetching analytics data", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}
