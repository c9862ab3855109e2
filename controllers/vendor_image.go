package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
	"github.com/inlet-sites/inletshopapi/services/images"
)

const (
	maxStoreImageBytes = 25 << 20
	storeImageMaxSize  = 1000
	storeImageQuality  = 80
)

// UpdateVendorImage replaces the vendor's storefront image. The upload
// is shrunk in-process, written under the storage root, and the previous
// image file is removed. Synchronous, unlike product image batches.
func UpdateVendorImage(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Must contain field 'image'"})
		return
	}
	if fileHeader.Size > maxStoreImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Images cannot exceed 25MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zap.L().Error("Failed to open uploaded image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image format"})
		return
	}
	img = imaging.Fit(img, storeImageMaxSize, storeImageMaxSize, imaging.Lanczos)

	root := os.Getenv("HOME_DIR")
	if root == "" {
		zap.L().Error("HOME_DIR not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	baseDir := root + "srv"

	url := fmt.Sprintf("/vendor-%s/%s.jpg", vendor.ID.Hex(), uuid.New().String())
	path := baseDir + url

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		zap.L().Error("Failed to create storage directory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(storeImageQuality)); err != nil {
		zap.L().Error("Failed to save store image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	set := bson.M{"public_data.image": url}
	if _, err := models.UpdateVendor(c.Request.Context(), vendor.ID, set); err != nil {
		zap.L().Error("Failed to update vendor image", zap.Error(err))
		images.DeleteFiles([]string{path})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if vendor.PublicData.Image != nil {
		images.DeleteFiles([]string{baseDir + *vendor.PublicData.Image})
	}

	c.JSON(http.StatusOK, gin.H{"image": url})
}
