package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ebuka-odih/mini-ecommerce-backend/config"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/app/controller"
	"github.com/ebuka-odih/mini-ecommerce-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	productController   *controller.ProductController
	categoryController  *controller.CategoryController
	lookupController    *controller.LookupController
	variationController *controller.VariationController
	mediaController     *controller.MediaController
	uploadController    *controller.UploadController
	layoutController    *controller.LayoutController
	orderController     *controller.OrderController
	eventsController    *controller.EventsController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	lookupController *controller.LookupController,
	variationController *controller.VariationController,
	mediaController *controller.MediaController,
	uploadController *controller.UploadController,
	layoutController *controller.LayoutController,
	orderController *controller.OrderController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		productController:   productController,
		categoryController:  categoryController,
		lookupController:    lookupController,
		variationController: variationController,
		mediaController:     mediaController,
		uploadController:    uploadController,
		layoutController:    layoutController,
		orderController:     orderController,
		eventsController:    eventsController,
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
			"message": r.config.Site.Name + " API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
		}

		// Storefront surfaces, no auth required
		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.GET("/slug/:slug", r.productController.GetProductBySlug)
			products.GET("/:id/variations", r.variationController.ListVariations)
			products.GET("/:id/resolve", r.variationController.Resolve)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id", r.categoryController.GetCategory)
			categories.GET("/slug/:slug", r.categoryController.GetCategoryBySlug)
		}

		v1.GET("/sizes", r.lookupController.ListSizes)
		v1.GET("/colors", r.lookupController.ListColors)
		v1.GET("/homepage", r.layoutController.ResolveHomepage)

		v1.POST("/orders",
			r.authMiddleware.Authenticate(),
			r.orderController.CreateOrder,
		)

		// Back-office surfaces
		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			adminProducts := admin.Group("/products")
			{
				adminProducts.POST("", r.productController.CreateProduct)
				adminProducts.PUT("/:id", r.productController.UpdateProduct)
				adminProducts.DELETE("/:id", r.productController.DeleteProduct)
				adminProducts.PUT("/:id/images", r.productController.AttachImages)
				adminProducts.POST("/:id/variations", r.variationController.CreateVariation)
			}

			admin.PUT("/variations/:id", r.variationController.UpdateVariation)
			admin.DELETE("/variations/:id", r.variationController.DeleteVariation)

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", r.categoryController.CreateCategory)
				adminCategories.PUT("/:id", r.categoryController.UpdateCategory)
				adminCategories.DELETE("/:id", r.categoryController.DeleteCategory)
			}

			admin.POST("/sizes", r.lookupController.CreateSize)
			admin.PUT("/sizes/:id", r.lookupController.UpdateSize)
			admin.DELETE("/sizes/:id", r.lookupController.DeleteSize)
			admin.POST("/colors", r.lookupController.CreateColor)
			admin.PUT("/colors/:id", r.lookupController.UpdateColor)
			admin.DELETE("/colors/:id", r.lookupController.DeleteColor)

			media := admin.Group("/media")
			{
				media.GET("", r.mediaController.ListImages)
				media.GET("/folders", r.mediaController.ListFolders)
				media.GET("/:id", r.mediaController.GetImage)
				media.POST("/upload", r.mediaController.Upload)
				media.POST("/import", r.mediaController.ImportFromURLs)
				media.POST("/bulk-delete", r.mediaController.BulkDelete)
				media.POST("/move", r.mediaController.MoveToFolder)
				media.PUT("/:id/tags", r.mediaController.Retag)
				media.PUT("/:id/featured", r.mediaController.SetFeatured)
				media.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			}

			layouts := admin.Group("/layouts")
			{
				layouts.GET("", r.layoutController.ListLayouts)
				layouts.GET("/:id", r.layoutController.GetLayout)
				layouts.POST("", r.layoutController.CreateLayout)
				layouts.PUT("/:id", r.layoutController.UpdateLayout)
				layouts.DELETE("/:id", r.layoutController.DeleteLayout)
				layouts.POST("/:id/toggle", r.layoutController.ToggleActive)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", r.orderController.ListOrders)
				adminOrders.GET("/:id", r.orderController.GetOrder)
				adminOrders.PUT("/:id/status", r.orderController.UpdateOrderStatus)
			}

			admin.GET("/customers", r.orderController.ListCustomers)
			admin.GET("/customers/:id", r.orderController.GetCustomer)

			admin.GET("/events/ws", r.eventsController.Stream)
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
