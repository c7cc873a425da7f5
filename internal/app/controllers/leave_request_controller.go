package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/app/services"
	"github.com/yigit/hostelms/internal/middleware"
)

// LeaveRequestController handles leave request submission and review
type LeaveRequestController struct {
	leaveService services.LeaveRequestService
}

// NewLeaveRequestController creates a new LeaveRequestController
func NewLeaveRequestController(leaveService services.LeaveRequestService) *LeaveRequestController {
	return &LeaveRequestController{
		leaveService: leaveService,
	}
}

// CreateLeaveRequest submits a leave request for the calling student
// @Summary Submit a leave request
// @Description Creates a pending leave request owned by the caller
// @Tags leave-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLeaveRequestRequest true "Leave details"
// @Success 201 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 403 {object} dto.APIResponse "Student role required"
// @Router /leave-requests [post]
func (c *LeaveRequestController) CreateLeaveRequest(ctx *gin.Context) {
	var req dto.CreateLeaveRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	leave, err := c.leaveService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(leave))
}

// GetAllLeaveRequests lists leave requests scoped to the caller
// @Summary List leave requests
// @Description Admins see every request, students only their own
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LeaveRequest} "Leave requests"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /leave-requests [get]
func (c *LeaveRequestController) GetAllLeaveRequests(ctx *gin.Context) {
	leaves, err := c.leaveService.List(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leaves))
}

// GetLeaveRequestByID retrieves a leave request
// @Summary Get a leave request
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse{data=models.LeaveRequest} "Leave request"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Leave request not found"
// @Router /leave-requests/{id} [get]
func (c *LeaveRequestController) GetLeaveRequestByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	leave, err := c.leaveService.GetByID(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leave))
}

// UpdateLeaveRequest reviews a leave request
// @Summary Review a leave request
// @Description Approves or rejects a pending request; review is final
// @Tags leave-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Param request body dto.UpdateLeaveRequestRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=models.LeaveRequest} "Updated leave request"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 404 {object} dto.APIResponse "Leave request not found"
// @Failure 409 {object} dto.APIResponse "Already reviewed"
// @Router /leave-requests/{id} [put]
func (c *LeaveRequestController) UpdateLeaveRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLeaveRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	leave, err := c.leaveService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leave))
}

// DeleteLeaveRequest removes a leave request
// @Summary Delete a leave request
// @Description Admins may delete any request, students only their own
// @Tags leave-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Leave request deleted"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Failure 404 {object} dto.APIResponse "Leave request not found"
// @Router /leave-requests/{id} [delete]
func (c *LeaveRequestController) DeleteLeaveRequest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.leaveService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Leave request deleted"}))
}
