package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/app/services"
	"github.com/yigit/hostelms/internal/middleware"
)

// RoomController handles room management and occupancy
type RoomController struct {
	roomService services.RoomService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// CreateRoom handles room creation
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 409 {object} dto.APIResponse "Room number already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	room, err := c.roomService.Create(ctx.Request.Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(room))
}

// GetAllRooms lists rooms
// @Summary List rooms
// @Description Lists all rooms with occupants and availability resolved
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Router /rooms [get]
func (c *RoomController) GetAllRooms(ctx *gin.Context) {
	rooms, err := c.roomService.GetAll(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rooms))
}

// GetRoomByID retrieves a room
// @Summary Get a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoomByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	room, err := c.roomService.GetByID(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(room))
}

// UpdateRoom applies a partial update to a room
// @Summary Update a room
// @Description Changes type or capacity; the room number is immutable
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Updated room"
// @Failure 400 {object} dto.APIResponse "Invalid request data or room number present"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	room, err := c.roomService.Update(ctx.Request.Context(), middleware.CurrentActor(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(room))
}

// DeleteRoom removes a room
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Room deleted"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.roomService.Delete(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Room deleted"}))
}

// AssignOccupant places a student in a room
// @Summary Assign a student to a room
// @Description Fails with a conflict when the room is at capacity
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.AssignOccupantRequest true "Student to assign"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Updated room"
// @Failure 400 {object} dto.APIResponse "Target is not a student"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 404 {object} dto.APIResponse "Room or student not found"
// @Failure 409 {object} dto.APIResponse "Room is at full capacity"
// @Router /rooms/{id}/occupants [post]
func (c *RoomController) AssignOccupant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignOccupantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	room, err := c.roomService.AssignOccupant(ctx.Request.Context(), middleware.CurrentActor(ctx), id, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(room))
}

// RemoveOccupant clears a student's room assignment
// @Summary Remove a student from a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Updated room"
// @Failure 400 {object} dto.APIResponse "Student is not in this room"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Failure 404 {object} dto.APIResponse "Room not found"
// @Router /rooms/{id}/occupants/{studentId} [delete]
func (c *RoomController) RemoveOccupant(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	room, err := c.roomService.RemoveOccupant(ctx.Request.Context(), middleware.CurrentActor(ctx), id, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(room))
}
