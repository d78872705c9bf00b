package router

import (
	"github.com/gin-gonic/gin"
	"salon-crm-backend/config"
	"salon-crm-backend/internal/app/controller"
	"salon-crm-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	customerController  *controller.CustomerController
	treatmentController *controller.TreatmentController
	imageController     *controller.ImageController
	adminController     *controller.AdminController
	exportController    *controller.ExportController
	intakeController    *controller.IntakeController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
	rateLimitEnabled    bool
}

func NewRouter(
	authController *controller.AuthController,
	customerController *controller.CustomerController,
	treatmentController *controller.TreatmentController,
	imageController *controller.ImageController,
	adminController *controller.AdminController,
	exportController *controller.ExportController,
	intakeController *controller.IntakeController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
	rateLimitEnabled bool,
) *Router {
	return &Router{
		authController:      authController,
		customerController:  customerController,
		treatmentController: treatmentController,
		imageController:     imageController,
		adminController:     adminController,
		exportController:    exportController,
		intakeController:    intakeController,
		authMiddleware:      authMiddleware,
		config:              cfg,
		rateLimitEnabled:    rateLimitEnabled,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Salon CRM API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Walk-in self-registration: no auth, optionally rate limited
		if r.rateLimitEnabled {
			v1.POST("/customer-register",
				middleware.RateLimitMiddleware("intake", r.config.Intake.RateLimit, r.config.Intake.RateLimitWindow),
				r.intakeController.Register,
			)
		} else {
			v1.POST("/customer-register", r.intakeController.Register)
		}

		customers := v1.Group("/customers")
		customers.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			customers.GET("", r.customerController.ListCustomers)
			customers.POST("", r.customerController.CreateCustomer)
			customers.GET("/:id", r.customerController.GetCustomer)
			customers.PUT("/:id", r.customerController.UpdateCustomer)
			customers.DELETE("/:id", r.customerController.DeleteCustomer)

			customers.GET("/:id/treatments", r.treatmentController.ListTreatments)
			customers.POST("/:id/treatments", r.treatmentController.CreateTreatment)
		}

		treatments := v1.Group("/treatments")
		treatments.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			treatments.GET("/:id", r.treatmentController.GetTreatment)
			treatments.PUT("/:id", r.treatmentController.UpdateTreatment)
			treatments.DELETE("/:id", r.treatmentController.DeleteTreatment)

			treatments.POST("/:id/images", r.imageController.UploadImage)
			treatments.DELETE("/:id/images/:imageId", r.imageController.DeleteImage)
		}

		admins := v1.Group("/admins")
		{
			// Bootstrap needs a login but not an existing admin row
			admins.POST("/migrate", r.authMiddleware.Authenticate(), r.adminController.Migrate)

			gated := admins.Group("")
			gated.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
			{
				gated.GET("", r.adminController.ListAdmins)
				gated.POST("", r.adminController.CreateAdmin)
				gated.PUT("/:id", r.adminController.UpdateAdmin)
				gated.DELETE("/:id", r.adminController.DeleteAdmin)
			}
		}

		export := v1.Group("/export")
		export.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			export.GET("/customers", r.exportController.ExportCustomers)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
