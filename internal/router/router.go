package router

import (
	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/config"
	"github.com/artigianatoshop/artigianato-backend/internal/app/controller"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	categoryController  *controller.CategoryController
	productController   *controller.ProductController
	cartController      *controller.CartController
	orderController     *controller.OrderController
	issueController     *controller.IssueController
	uploadController    *controller.UploadController
	orderFeedController *controller.OrderFeedController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	issueController *controller.IssueController,
	uploadController *controller.UploadController,
	orderFeedController *controller.OrderFeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		categoryController:  categoryController,
		productController:   productController,
		cartController:      cartController,
		orderController:     orderController,
		issueController:     issueController,
		uploadController:    uploadController,
		orderFeedController: orderFeedController,
		authMiddleware:      authMiddleware,
		config:              cfg,
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
			"message": "ArtigianatoShop API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("/tree", r.categoryController.GetTree)
			categories.GET("/:id", r.categoryController.GetCategory)

			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.categoryController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.categoryController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.categoryController.DeleteCategory,
			)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.ExportProducts,
			)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.POST("", r.cartController.CreateCart)
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:id", r.cartController.UpdateItem)
			cart.DELETE("/items/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("/checkout", r.orderController.Checkout)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.PUT("/:id", r.orderController.UpdateStatus)
		}

		issues := v1.Group("/issues")
		issues.Use(r.authMiddleware.Authenticate())
		{
			issues.POST("", r.issueController.ReportIssue)
			issues.GET("", r.issueController.GetMyIssues)
			issues.GET("/:reference", r.issueController.GetIssue)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.GET("/issues", r.issueController.ListIssues)
			admin.PUT("/issues/:id", r.issueController.ResolveIssue)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}

		// WebSocket order feed, authenticated via ?token= query parameter
		v1.GET("/ws/orders", r.authMiddleware.Authenticate(), r.orderFeedController.Connect)
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
