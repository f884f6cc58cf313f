package routes

import (
	"net/http"
	"time"

	"stayfinder/config"
	"stayfinder/handlers"
	"stayfinder/middleware"
	"stayfinder/models"
	"stayfinder/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/register", hb.Auth.Register)
		group.POST("/login", hb.Auth.Login)

		group.GET("/me", auth, hb.Auth.Me)
		group.PUT("/fcm-token", auth, hb.Auth.UpdateFCMToken)
	}
}

// RegisterListingRoutes registers listing search, management and review endpoints.
func RegisterListingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/listings")
	{
		// Browsing is public.
		group.GET("", hb.Listings.Search)
		group.GET("/:id", hb.Listings.Get)

		protected := group.Group("")
		protected.Use(auth)
		protected.GET("/owner/listings", hb.Listings.ListMine)
		protected.POST("", middleware.RequireRole(models.RoleHost, models.RoleAdmin), hb.Listings.Create)
		protected.PUT("/:id", hb.Listings.Update)
		protected.DELETE("/:id", hb.Listings.Delete)
		protected.POST("/:id/reviews", hb.Listings.AddReview)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/bookings")
	{
		group.Use(auth)
		group.POST("", hb.Bookings.CreateBooking)
		group.GET("/user", hb.Bookings.ListGuestBookings)
		group.GET("/host", hb.Bookings.ListHostBookings)
		group.GET("/listing/:listingId", hb.Bookings.ListListingBookings)
		group.GET("/:id", hb.Bookings.GetBooking)
		group.PATCH("/:id/status", hb.Bookings.UpdateStatus)
		group.DELETE("/:id", hb.Bookings.CancelBooking)
		group.DELETE("/:id/permanent", hb.Bookings.DeleteBooking)
	}
}

// RegisterNotificationRoutes registers the notification inbox endpoints.
func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/notifications")
	{
		group.Use(auth)
		group.GET("", hb.Notifications.List)
		group.GET("/unread-count", hb.Notifications.UnreadCount)
		group.PUT("/read-all", hb.Notifications.MarkAllRead)
		group.PUT("/:id/read", hb.Notifications.MarkRead)
		group.DELETE("/read", hb.Notifications.DeleteRead)
	}
}

// RegisterUploadRoutes registers image upload endpoints. Without a storage backend
// both routes answer 503.
func RegisterUploadRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	group := api.Group("/upload")
	group.Use(auth)
	if hb.Storage == nil {
		group.POST("/image", handlers.Unavailable)
		group.POST("/images", handlers.Unavailable)
		return
	}
	group.POST("/image", hb.Storage.UploadImage)
	group.POST("/images", hb.Storage.UploadImages)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "StayFinder API is running",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AllowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: len(origins) > 0 && origins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.JWTAuthMiddleware(hb.UserRepo, hb.AuthCache)
	api := r.Group("/api")

	RegisterAuthRoutes(api, hb, auth)
	RegisterListingRoutes(api, hb, auth)
	RegisterBookingRoutes(api, hb, auth)
	RegisterNotificationRoutes(api, hb, auth)
	RegisterUploadRoutes(api, hb, auth)
	RegisterHealthRoute(r)
}
