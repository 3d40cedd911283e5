package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/storeadmin/internal/server/http/handlers"
	"github.com/polkiloo/storeadmin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ConsoleFacade, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := handlers.NewHealthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	locationHandler := handlers.NewLocationHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	admin := engine.Group("/api/admin")
	admin.Use(middleware.AuthRequired(facade))

	orders := admin.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/counts", orderHandler.Counts)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/return", orderHandler.UpdateReturn)

	locations := admin.Group("/locations")
	locations.GET("/suggest", locationHandler.Suggest)
	locations.GET("/:code", locationHandler.Get)
	locations.POST("/:code/reserve", locationHandler.Reserve)

	categories := admin.Group("/categories")
	categories.GET("", catalogHandler.Categories)
	categories.POST("", catalogHandler.CreateCategory)
	categories.DELETE("/:id", catalogHandler.DeleteCategory)

	products := admin.Group("/products")
	products.GET("", catalogHandler.Products)
	products.POST("", catalogHandler.CreateProduct)
	products.GET("/:category/:id", catalogHandler.Product)
	products.DELETE("/:category/:id", catalogHandler.DeleteProduct)
	products.PUT("/:category/:id/location", catalogHandler.Relocate)
	products.PUT("/:category/:id/offer-band", catalogHandler.SetOfferBand)

	offers := admin.Group("/offer-messages")
	offers.GET("", catalogHandler.OfferMessages)
	offers.POST("", catalogHandler.CreateOfferMessage)
	offers.PUT("/:id", catalogHandler.UpdateOfferMessage)
	offers.DELETE("/:id", catalogHandler.DeleteOfferMessage)

	return engine
}
