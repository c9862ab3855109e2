package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
)

// CreatePrice appends a new price to a product the vendor owns. Vendors
// without Stripe onboarding can only list.
func CreatePrice(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req createPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if !req.PurchaseOption.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase option"})
		return
	}

	option := req.PurchaseOption
	if vendor.Stripe == nil {
		option = models.PurchaseOptionList
	}

	price := models.Price{
		ID:             primitive.NewObjectID(),
		Descriptor:     req.Descriptor,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Shipping:       req.Shipping,
		Images:         []string{},
		PurchaseOption: option,
		Archived:       false,
	}

	update := bson.M{"$push": bson.M{"prices": price}}
	if err := models.UpdateProductOwned(c.Request.Context(), productID, vendor.ID, update); err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	c.JSON(http.StatusOK, toPriceResponse(price))
}

type priceUpdateRequest struct {
	Descriptor *string `json:"descriptor"`
	Quantity   *int32  `json:"quantity"`
}

// UpdatePrice applies a partial update to one embedded price.
func UpdatePrice(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, priceID, ok := parsePriceParams(c)
	if !ok {
		return
	}

	var req priceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	set := bson.M{}
	if req.Descriptor != nil {
		set["prices.$.descriptor"] = *req.Descriptor
	}
	if req.Quantity != nil {
		set["prices.$.quantity"] = *req.Quantity
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	err := models.UpdatePriceOwned(c.Request.Context(), productID, priceID, vendor.ID, bson.M{"$set": set})
	if err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeletePrice removes one embedded price from a product the vendor owns.
func DeletePrice(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, priceID, ok := parsePriceParams(c)
	if !ok {
		return
	}

	update := bson.M{"$pull": bson.M{"prices": bson.M{"_id": priceID}}}
	if err := models.UpdateProductOwned(c.Request.Context(), productID, vendor.ID, update); err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemovePriceImages removes image URLs from one embedded price and
// deletes the files behind them.
func RemovePriceImages(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, priceID, ok := parsePriceParams(c)
	if !ok {
		return
	}

	var urls []string
	if err := c.ShouldBindJSON(&urls); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	update := bson.M{"$pullAll": bson.M{"prices.$.images": urls}}
	err := models.UpdatePriceOwned(c.Request.Context(), productID, priceID, vendor.ID, update)
	if err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	deleteImageFiles(urls)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parsePriceParams(c *gin.Context) (productID, priceID primitive.ObjectID, ok bool) {
	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return productID, priceID, false
	}
	priceID, err = primitive.ObjectIDFromHex(c.Param("price_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price ID"})
		return productID, priceID, false
	}
	return productID, priceID, true
}
