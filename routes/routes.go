package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
	"guesthouse-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCheckedIn,
			models.BookingStatusCheckedOut,
			models.BookingStatusCancelled:
			return true
		}
		return false
	})
}

func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	cc *controllers.CartController,
	bc *controllers.BookingController,
	rpc *controllers.ReportController,
	dc *controllers.DocumentController,
) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public catalog and availability. Dates come in as query params.
		api.GET("/rooms", rc.GetRooms)

		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/admin/login", controllers.AdminLogin)
		}

		// Signed links are self-authenticating, the handler verifies the HMAC.
		api.GET("/documents/view", dc.ViewDocument)

		customer := api.Group("")
		customer.Use(middleware.RequireCustomer())
		{
			customer.POST("/phone/request-code", ac.RequestPhoneCode)
			customer.POST("/phone/verify", ac.VerifyPhoneCode)

			customer.GET("/cart", cc.GetCart)
			customer.POST("/cart", cc.UpdateCart)
			customer.DELETE("/cart", cc.ClearCart)
			customer.GET("/cart/quote", bc.QuoteCart)

			customer.POST("/bookings", bc.CreateBooking)
			customer.GET("/bookings/mine", bc.GetMyBookings)
			customer.GET("/bookings/mine/:id", bc.GetMyBookingDetails)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			bookings := admin.Group("/bookings")
			{
				bookings.GET("", middleware.RequirePermission("bookingManagement.view"), bc.GetBookings)
				bookings.GET("/:id", middleware.RequirePermission("bookingManagement.view"), bc.GetBookingDetails)
				bookings.PATCH("/:id/status", middleware.RequirePermission("bookingManagement.edit"), bc.UpdateBookingStatus)
				bookings.PATCH("/:id/payment", middleware.RequirePermission("paymentManagement.edit"), bc.UpdatePaymentStatus)
				bookings.POST("/offline", middleware.RequirePermission("bookingManagement.create"), bc.CreateOfflineBooking)
			}

			rooms := admin.Group("/rooms")
			{
				rooms.GET("", middleware.RequirePermission("roomManagement.view"), controllers.GetAllRooms)
				rooms.POST("", middleware.RequirePermission("roomManagement.create"), controllers.CreateRoom)
				rooms.PUT("/:id", middleware.RequirePermission("roomManagement.edit"), controllers.UpdateRoom)
				rooms.DELETE("/:id", middleware.RequirePermission("roomManagement.delete"), controllers.DeleteRoom)
			}

			reports := admin.Group("/reports")
			reports.Use(middleware.RequirePermission("reports.view"))
			{
				reports.GET("/dashboard", rpc.GetDashboard)
				reports.GET("/revenue", rpc.GetRevenueSeries)
				reports.GET("/room-types", rpc.GetRoomTypeRevenue)
				reports.GET("/status-distribution", rpc.GetStatusDistribution)
			}

			admin.POST("/documents/sign", middleware.RequirePermission("documents.view"), dc.SignDocument)

			roles := admin.Group("/roles")
			{
				roles.GET("", middleware.RequirePermission("rolesAndPermissions.view"), controllers.GetRoles)
				roles.PUT("/:id/permissions", middleware.RequirePermission("rolesAndPermissions.edit"), controllers.UpdateRolePermissions)
			}

			admins := admin.Group("/admins")
			{
				admins.GET("", middleware.RequirePermission("adminManagement.view"), controllers.GetAdmins)
				admins.POST("", middleware.RequirePermission("adminManagement.create"), controllers.CreateAdmin)
				admins.DELETE("/:id", middleware.RequirePermission("adminManagement.delete"), controllers.DeleteAdmin)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("", middleware.RequirePermission("settings.view"), controllers.GetSettings)
				settings.PUT("", middleware.RequirePermission("settings.edit"), controllers.UpdateSettings)
			}
		}
	}

	return r
}
