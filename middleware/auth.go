package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/models"
)

// VendorKey is the gin context key holding the authenticated vendor.
const VendorKey = "vendor"

// VendorAuth authenticates the vendor session cookie and loads the
// vendor document into the request context.
func VendorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie("vendor")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		vendorID, err := primitive.ObjectIDFromHex(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		vendor, err := models.FindVendorByID(c.Request.Context(), vendorID)
		if err != nil {
			if models.IsNoDocuments(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			} else {
				zap.L().Error("Failed to load vendor for auth", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			}
			return
		}

		c.Set(VendorKey, vendor)
		c.Next()
	}
}

// CurrentVendor returns the vendor loaded by VendorAuth.
func CurrentVendor(c *gin.Context) *models.Vendor {
	return c.MustGet(VendorKey).(*models.Vendor)
}
