package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelms/internal/app/controllers"
	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	roomController *controllers.RoomController,
	leaveController *controllers.LeaveRequestController,
	paymentController *controllers.PaymentController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

		// Rooms: reads for everyone, writes for admins
		rooms := authenticated.Group("/rooms")
		{
			rooms.GET("", roomController.GetAllRooms)
			rooms.GET("/:id", roomController.GetRoomByID)

			roomsAdmin := rooms.Group("")
			roomsAdmin.Use(adminOnly)
			{
				roomsAdmin.POST("", roomController.CreateRoom)
				roomsAdmin.PUT("/:id", roomController.UpdateRoom)
				roomsAdmin.DELETE("/:id", roomController.DeleteRoom)
				roomsAdmin.POST("/:id/occupants", roomController.AssignOccupant)
				roomsAdmin.DELETE("/:id/occupants/:studentId", roomController.RemoveOccupant)
			}
		}

		// Leave requests: role scoping happens in the service layer
		leaveRequests := authenticated.Group("/leave-requests")
		{
			leaveRequests.POST("", leaveController.CreateLeaveRequest)
			leaveRequests.GET("", leaveController.GetAllLeaveRequests)
			leaveRequests.GET("/:id", leaveController.GetLeaveRequestByID)
			leaveRequests.PUT("/:id", leaveController.UpdateLeaveRequest)
			leaveRequests.DELETE("/:id", leaveController.DeleteLeaveRequest)
		}

		// Payments: reads scoped in the service layer, writes admin only
		payments := authenticated.Group("/payments")
		{
			payments.GET("", paymentController.GetAllPayments)
			payments.GET("/:id", paymentController.GetPaymentByID)

			paymentsAdmin := payments.Group("")
			paymentsAdmin.Use(adminOnly)
			{
				paymentsAdmin.POST("", paymentController.CreatePayment)
				paymentsAdmin.PUT("/:id", paymentController.UpdatePayment)
				paymentsAdmin.DELETE("/:id", paymentController.DeletePayment)
			}
		}

		// User administration
		users := authenticated.Group("/users")
		users.Use(adminOnly)
		{
			users.POST("", userController.CreateUser)
			users.GET("", userController.GetAllUsers)
			users.GET("/:id", userController.GetUserByID)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Self-service profile
		profile := authenticated.Group("/profile")
		{
			profile.GET("", userController.GetProfile)
			profile.PUT("", userController.UpdateProfile)
			profile.PUT("/password", userController.ChangePassword)
		}

		// Dashboards
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/admin", dashboardController.AdminDashboard)
			dashboard.GET("/student", dashboardController.StudentDashboard)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
