package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hibiscus/internal/api/controllers"
	"hibiscus/pkg/middleware"
	"hibiscus/pkg/utils"
)

type RouterDeps struct {
	Logger     *zap.Logger
	Tours      *controllers.TourController
	Inquiries  *controllers.InquiryController
	Admin      *controllers.AdminController
	Images     *controllers.ImageController
	Limiter    utils.InquiryLimiter
	// AdminGuard protects the admin-only routes. Nil leaves them open.
	AdminGuard gin.HandlerFunc
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.RecoveryMiddleware(d.Logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", middleware.TraceHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.NoMethod(func(c *gin.Context) {
		utils.RespondError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Not found")
	})

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d RouterDeps) {
	guard := d.AdminGuard
	if guard == nil {
		guard = func(c *gin.Context) { c.Next() }
	}
	limiter := d.Limiter
	if limiter == nil {
		limiter = utils.NewNoopLimiter()
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	toursGroup := api.Group("/tours")
	toursGroup.GET("", d.Tours.ListTours)
	toursGroup.POST("", guard, d.Tours.CreateTour)
	toursGroup.GET("/:id", d.Tours.GetTour)
	toursGroup.PATCH("/:id", guard, d.Tours.UpdateTour)
	toursGroup.DELETE("/:id", guard, d.Tours.DeleteTour)

	inquiriesGroup := api.Group("/inquiries")
	inquiriesGroup.GET("", guard, d.Inquiries.ListInquiries)
	inquiriesGroup.POST("", middleware.InquiryRateLimit(limiter), d.Inquiries.CreateInquiry)
	inquiriesGroup.PATCH("/:id", guard, d.Inquiries.UpdateInquiryStatus)
	inquiriesGroup.DELETE("/:id", guard, d.Inquiries.DeleteInquiry)

	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", d.Admin.Login)
	adminGroup.POST("/verify", d.Admin.Verify)
	adminGroup.POST("/reset", guard, d.Admin.Reset)
	adminGroup.GET("/check", d.Admin.Check)

	api.POST("/upload/image", guard, d.Images.UploadImage)
	api.GET("/images/:id", d.Images.GetImage)
}
