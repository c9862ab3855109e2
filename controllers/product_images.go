package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
	"github.com/inlet-sites/inletshopapi/services/images"
)

const maxUploadBytes = 50 << 20

// AddProductImages accepts a multipart image batch for conversion. The
// batch is validated and read into memory here, then handed to the
// background pipeline; the client gets a 202 and never learns the
// conversion outcome.
func AddProductImages(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	err = models.VerifyProductOwnership(c.Request.Context(), productID, vendor.ID)
	if err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	form := c.Request.MultipartForm

	files, err := readBatchFiles(form.File["images"], form.Value["id"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded files"})
		return
	}

	thumbnail := ""
	if values := form.Value["thumbnail"]; len(values) > 0 {
		thumbnail = values[0]
	}

	// Detached from the request: multipart temp files are removed when the
	// handler returns, so the bytes must already be in memory.
	go imagePipeline.Run(context.Background(), images.Batch{
		VendorID:  vendor.ID,
		ProductID: productID,
		Files:     files,
		Thumbnail: thumbnail,
	})

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// readBatchFiles pairs uploaded files with their client identifiers by
// position. Extra entries on either side are dropped.
func readBatchFiles(headers []*multipart.FileHeader, ids []string) ([]images.File, error) {
	n := len(headers)
	if len(ids) < n {
		n = len(ids)
	}

	files := make([]images.File, 0, n)
	for i := 0; i < n; i++ {
		f, err := headers[i].Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, images.File{Data: data, ID: ids[i]})
	}
	return files, nil
}

// RemoveProductImages removes image URLs from a product the vendor owns
// and deletes the files behind them. The body is a JSON array of stored
// URLs. File deletion is best effort; the database is the source of
// truth.
func RemoveProductImages(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var urls []string
	if err := c.ShouldBindJSON(&urls); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	update := bson.M{"$pullAll": bson.M{"images": urls}}
	if err := models.UpdateProductOwned(c.Request.Context(), productID, vendor.ID, update); err != nil {
		respondProductUpdate(c, productID, err)
		return
	}

	deleteImageFiles(urls)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deleteImageFiles resolves stored URLs against the storage root and
// removes the files. A missing root is logged and skipped; the database
// update already happened.
func deleteImageFiles(urls []string) {
	root, err := imagePipeline.Root()
	if err != nil {
		zap.L().Error("Cannot resolve storage root for file deletion", zap.Error(err))
		return
	}

	paths := make([]string, 0, len(urls))
	for _, url := range urls {
		paths = append(paths, root+"srv"+url)
	}
	images.DeleteFiles(paths)
}
