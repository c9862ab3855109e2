package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/inlet-sites/inletshopapi/controllers"
	"github.com/inlet-sites/inletshopapi/middleware"
)

// RegisterVendorRoutes wires the vendor-facing API. Credential endpoints
// are rate limited; everything else behind the group requires the vendor
// session cookie.
func RegisterVendorRoutes(r *gin.Engine) {
	// Credential routes (rate limited, no session required)
	creds := r.Group("/vendor")
	creds.Use(middleware.RateLimit())
	{
		creds.POST("/login", controllers.Login)
		creds.POST("/password", controllers.CreatePassword)
		creds.POST("/password/email", controllers.PasswordEmail)
		creds.POST("/password/reset", controllers.ResetPassword)
	}

	// Authenticated vendor routes
	api := r.Group("/vendor")
	api.Use(middleware.VendorAuth())
	{
		api.POST("/logout", controllers.Logout)
		api.GET("", controllers.Me)
		api.PUT("", controllers.UpdateVendor)
		api.PUT("/password", controllers.ChangePassword)
		api.PUT("/image", controllers.UpdateVendorImage)

		api.POST("/connect", controllers.CreateConnect)
		api.POST("/connect/session", controllers.CreateConnectSession)

		api.POST("/products", controllers.CreateProduct)
		api.GET("/products", controllers.GetVendorProducts)
		api.GET("/products/:product_id", controllers.GetVendorProduct)
		api.PUT("/products/:product_id", controllers.UpdateProduct)
		api.DELETE("/products/:product_id", controllers.DeleteProduct)

		api.POST("/products/:product_id/images", controllers.AddProductImages)
		api.DELETE("/products/:product_id/images", controllers.RemoveProductImages)

		api.POST("/products/:product_id/prices", controllers.CreatePrice)
		api.PUT("/products/:product_id/prices/:price_id", controllers.UpdatePrice)
		api.DELETE("/products/:product_id/prices/:price_id", controllers.DeletePrice)
		api.DELETE("/products/:product_id/prices/:price_id/images", controllers.RemovePriceImages)
	}
}

// RegisterUserRoutes wires the public shopper-facing API.
func RegisterUserRoutes(r *gin.Engine) {
	api := r.Group("/user")
	{
		// Shared :vendor segment: the slug route and the products route
		// interpret it differently, but gin requires one wildcard name.
		api.GET("/vendors", controllers.GetVendors)
		api.GET("/vendors/:vendor", controllers.GetVendorByURL)
		api.GET("/vendors/:vendor/products", controllers.GetUserVendorProducts)
		api.GET("/products/:product_id", controllers.GetUserProduct)
	}

	r.GET("/documentation", controllers.Documentation)
}
