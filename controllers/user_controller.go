package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/models"
)

// GetVendors lists all active storefronts for shoppers.
func GetVendors(c *gin.Context) {
	projection := bson.M{
		"_id":                1,
		"store":              1,
		"url":                1,
		"public_data.slogan": 1,
		"public_data.image":  1,
	}

	vendors, err := models.ListActiveVendors(c.Request.Context(), projection)
	if err != nil {
		zap.L().Error("Failed to list vendors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vendors"})
		return
	}

	response := make([]VendorSummary, 0, len(vendors))
	for _, v := range vendors {
		response = append(response, toVendorSummary(v))
	}

	c.JSON(http.StatusOK, response)
}

// GetVendorByURL returns one storefront by its public URL slug.
func GetVendorByURL(c *gin.Context) {
	vendor, err := models.FindVendorByURL(c.Request.Context(), c.Param("vendor"))
	if err != nil {
		if models.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		zap.L().Error("Failed to fetch vendor", zap.String("url", c.Param("vendor")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, toVendorDetail(vendor))
}

// GetUserVendorProducts lists one vendor's products for shoppers, in
// short form with pagination.
func GetUserVendorProducts(c *gin.Context) {
	vendorID, err := primitive.ObjectIDFromHex(c.Param("vendor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID"})
		return
	}
	page, results := parsePagination(c)

	products, err := models.FindProductsByVendor(c.Request.Context(), vendorID, page, results)
	if err != nil {
		zap.L().Error("Failed to list products", zap.String("vendor", vendorID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	response := make([]ShortProductResponse, 0, len(products))
	for _, p := range products {
		if p.Archived || !p.Active {
			continue
		}
		response = append(response, toShortProductResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// GetUserProduct returns one product for shoppers, without an ownership
// filter.
func GetUserProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.FindProductByID(c.Request.Context(), productID, nil)
	if err != nil || product.Archived || !product.Active {
		if err != nil && !models.IsNoDocuments(err) {
			zap.L().Error("Failed to fetch product", zap.String("product", productID.Hex()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// Documentation serves the rendered API reference.
func Documentation(c *gin.Context) {
	c.File("./docs/redoc-static.html")
}
