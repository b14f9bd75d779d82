package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hamperhouse/pkg/logger"
	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/util"
)

const serviceName = "storefront-service"

func SetupRoutes(
	pageHandler *PageHandler,
	contactHandler *ContactHandler,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	authMiddleware *AuthMiddleware,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичная витрина
	api := router.Group("/api")
	{
		api.GET("/site-config", pageHandler.SiteConfig)
		api.POST("/contact", contactHandler.Submit)

		pages := api.Group("/pages")
		{
			pages.GET("/home", pageHandler.Home)
			pages.GET("/categories/:categorySlug", pageHandler.Category)
			pages.GET("/categories/:categorySlug/subcategories/:subcategorySlug", pageHandler.Subcategory)
			pages.GET("/categories/:categorySlug/products/:productSlug", pageHandler.Product)
			pages.GET("/campaigns/:campaign", pageHandler.Campaign)
		}
	}

	router.POST("/admin/login", authHandler.Login)

	admin := router.Group("/admin/api")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(authMiddleware.RequireRole(util.RoleAdmin))
	{
		admin.GET("/stats", adminHandler.Stats)

		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PUT("/categories/:id", adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		admin.GET("/subcategories", adminHandler.ListSubcategories)
		admin.POST("/subcategories", adminHandler.CreateSubcategory)
		admin.PUT("/subcategories/:id", adminHandler.UpdateSubcategory)
		admin.DELETE("/subcategories/:id", adminHandler.DeleteSubcategory)

		admin.GET("/products", adminHandler.ListProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/submissions", adminHandler.ListSubmissions)
		admin.DELETE("/submissions/:id", adminHandler.DeleteSubmission)

		admin.GET("/audit", adminHandler.AuditLog)
	}

	return router
}
