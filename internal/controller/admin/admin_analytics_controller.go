package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizforge/internal/dto"
	"quizforge/internal/service"
)

type AdminAnalyticsController struct {
	adminAnalyticsService service.AdminAnalyticsService
}

func NewAdminAnalyticsController(adminAnalyticsService service.AdminAnalyticsService) *AdminAnalyticsController {
	return &AdminAnalyticsController{adminAnalyticsService: adminAnalyticsService}
}

// PlatformAnalytics godoc
// @Summary (Admin) Platform-wide analytics
// @Description User, quiz and attempt counts, popular topics, 30-day activity, user growth and top performers.
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminAnalyticsDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AdminAnalyticsController) PlatformAnalytics(ctx *gin.Context) {
	analytics, err := c.adminAnalyticsService.PlatformAnalytics()
	if err != nil {
		log.Error().Err(err).Msg("PlatformAnalytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Error fetching platform analytics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// ListUsers godoc
// @Summary (Admin) List registered users with activity
// @Description Every non-admin user with attempt count, average score and last activity.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminUserListDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminAnalyticsController) ListUsers(ctx *gin.Context) {
	users, err := c.adminAnalyticsService.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("ListUsers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Error fetching users", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// UserActivity godoc
// @Summary (Admin) Detailed activity of one user
// @Description The user's profile, aggregate stats, recent attempts and per-topic breakdown.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserActivityDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{user_id}/activity [get]
func (c *AdminAnalyticsController) UserActivity(ctx *gin.Context) {
	userIDStr := ctx.Param("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	activity, err := c.adminAnalyticsService.UserActivity(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
			return
		}
		log.Error().Err(err).Uint64("userID", userID).Msg("UserActivity: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Error fetching user activity", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, activity)
}
