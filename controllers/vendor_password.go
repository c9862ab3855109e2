package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
	"github.com/inlet-sites/inletshopapi/services/password"
)

type createPasswordRequest struct {
	ID              string `json:"id" binding:"required"`
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// CreatePassword sets a vendor's first password, authorized by the
// single-use token from their invitation link. The token is rotated on
// success.
func CreatePassword(c *gin.Context) {
	var req createPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	vendorID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID"})
		return
	}

	vendor, err := models.FindVendorByID(c.Request.Context(), vendorID)
	if err != nil {
		respondVendorLookup(c, err)
		return
	}

	if vendor.PassHash != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vendor password already created"})
		return
	}
	if vendor.Token != req.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := password.Validate(req.Password, req.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := storePassword(c, vendor.ID, req.Password); err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePassword replaces the authenticated vendor's password after
// verifying the current one.
func ChangePassword(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if vendor.PassHash == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vendor password not created"})
		return
	}
	if err := password.Verify(req.CurrentPassword, *vendor.PassHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := password.Validate(req.NewPassword, req.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if _, err := models.UpdateVendor(c.Request.Context(), vendor.ID, bson.M{"pass_hash": hash}); err != nil {
		zap.L().Error("Failed to store password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type passwordEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// PasswordEmail sends a reset-password email carrying the vendor's ID
// and current token.
func PasswordEmail(c *gin.Context) {
	var req passwordEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	vendor, err := models.FindVendorByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondVendorLookup(c, err)
		return
	}

	err = mail.SendPasswordReset(c.Request.Context(), vendor.Email, vendor.Owner, vendor.ID.Hex(), vendor.Token)
	if err != nil {
		zap.L().Error("Failed to send reset email", zap.String("vendor", vendor.ID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type resetPasswordRequest struct {
	Vendor          string `json:"vendor" binding:"required"`
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResetPassword sets a new password from a reset link, authorized by the
// vendor's current token. The token is rotated on success.
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	vendorID, err := primitive.ObjectIDFromHex(req.Vendor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID"})
		return
	}

	vendor, err := models.FindVendorByID(c.Request.Context(), vendorID)
	if err != nil {
		respondVendorLookup(c, err)
		return
	}

	if vendor.Token != req.Token {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid authorization"})
		return
	}
	if err := password.Validate(req.Password, req.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := storePassword(c, vendor.ID, req.Password); err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// storePassword hashes the password and writes it together with a fresh
// token, invalidating any outstanding create/reset links. Responds with
// a 500 itself on failure.
func storePassword(c *gin.Context, vendorID primitive.ObjectID, pass string) error {
	hash, err := password.Hash(pass)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return err
	}

	set := bson.M{
		"pass_hash": hash,
		"token":     uuid.New().String(),
	}
	if _, err := models.UpdateVendor(c.Request.Context(), vendorID, set); err != nil {
		zap.L().Error("Failed to store password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return err
	}
	return nil
}

func respondVendorLookup(c *gin.Context, err error) {
	if models.IsNoDocuments(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendor with this ID not found"})
		return
	}
	zap.L().Error("Failed to look up vendor", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
