package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/app/services"
	"github.com/yigit/hostelms/internal/middleware"
)

// DashboardController serves the two dashboard views
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// AdminDashboard serves the admin overview
// @Summary Admin dashboard
// @Description Counts and recent activity across the whole hostel
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboardResponse} "Overview"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Router /dashboard/admin [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.AdminDashboard(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// StudentDashboard serves the caller's own hostel state
// @Summary Student dashboard
// @Description The caller's profile, room, leave requests and payments
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Own state"
// @Failure 403 {object} dto.APIResponse "Student role required"
// @Router /dashboard/student [get]
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.StudentDashboard(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
