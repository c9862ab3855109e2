package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
)

type createProductRequest struct {
	Name     string               `json:"name" binding:"required"`
	Tags     []string             `json:"tags"`
	Archived bool                 `json:"archived"`
	Prices   []createPriceRequest `json:"prices"`
}

type createPriceRequest struct {
	Descriptor     string                `json:"descriptor" binding:"required"`
	Price          int32                 `json:"price"`
	Quantity       int32                 `json:"quantity"`
	Shipping       int32                 `json:"shipping"`
	PurchaseOption models.PurchaseOption `json:"purchase_option"`
}

// CreateProduct creates a product for the authenticated vendor. Vendors
// without Stripe onboarding can only list items, so their prices are
// demoted to the list option.
func CreateProduct(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	for _, p := range req.Prices {
		if !p.PurchaseOption.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase option"})
			return
		}
	}

	product := buildProduct(req, vendor)
	if err := models.InsertProduct(c.Request.Context(), product); err != nil {
		zap.L().Error("Failed to insert product", zap.String("vendor", vendor.ID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func buildProduct(req createProductRequest, vendor *models.Vendor) *models.Product {
	product := &models.Product{
		ID:        primitive.NewObjectID(),
		Vendor:    vendor.ID,
		Name:      req.Name,
		Tags:      req.Tags,
		Images:    []string{},
		Active:    true,
		Archived:  req.Archived,
		CreatedAt: time.Now().UTC(),
		Prices:    make([]models.Price, 0, len(req.Prices)),
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	for _, p := range req.Prices {
		option := p.PurchaseOption
		if vendor.Stripe == nil {
			option = models.PurchaseOptionList
		}

		product.Prices = append(product.Prices, models.Price{
			ID:             primitive.NewObjectID(),
			Descriptor:     p.Descriptor,
			Price:          p.Price,
			Quantity:       p.Quantity,
			Shipping:       p.Shipping,
			Images:         []string{},
			PurchaseOption: option,
			Archived:       false,
		})
	}

	return product
}

// GetVendorProducts lists the authenticated vendor's products in short
// form, paginated.
func GetVendorProducts(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)
	page, results := parsePagination(c)

	products, err := models.FindProductsByVendor(c.Request.Context(), vendor.ID, page, results)
	if err != nil {
		zap.L().Error("Failed to list products", zap.String("vendor", vendor.ID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	response := make([]ShortProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toShortProductResponse(p))
	}

	c.JSON(http.StatusOK, response)
}

// GetVendorProduct returns one of the authenticated vendor's products.
func GetVendorProduct(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.FindProductByID(c.Request.Context(), productID, &vendor.ID)
	if err != nil {
		respondProductLookup(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

type productUpdateRequest struct {
	Name      *string   `json:"name"`
	Tags      *[]string `json:"tags"`
	Thumbnail *string   `json:"thumbnail"`
}

// UpdateProduct applies a partial update to a product the vendor owns
// and returns the updated document.
func UpdateProduct(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	set := buildProductUpdate(req)
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	err = models.UpdateProductOwned(c.Request.Context(), productID, vendor.ID, bson.M{"$set": set})
	if err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	product, err := models.FindProductByID(c.Request.Context(), productID, &vendor.ID)
	if err != nil {
		respondProductLookup(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func buildProductUpdate(req productUpdateRequest) bson.M {
	set := bson.M{}

	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.Thumbnail != nil {
		set["thumbnail"] = *req.Thumbnail
	}

	return set
}

// DeleteProduct archives a product the vendor owns. Archival is the
// delete operation; documents are never removed.
func DeleteProduct(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	update := bson.M{"$set": bson.M{"archived": true}}
	if err := models.UpdateProductOwned(c.Request.Context(), productID, vendor.ID, update); err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondProductLookup maps a product read failure. An ownership-scoped
// miss deliberately collapses not-found and not-owned into one signal.
func respondProductLookup(c *gin.Context, err error) {
	if models.IsNoDocuments(err) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have authorization for this product"})
		return
	}
	zap.L().Error("Failed to look up product", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

func respondProductUpdate(c *gin.Context, productID primitive.ObjectID, err error) {
	if errors.Is(err, models.ErrNotOwned) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have authorization for this product"})
		return
	}
	zap.L().Error("Failed to update product", zap.String("product", productID.Hex()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
}
