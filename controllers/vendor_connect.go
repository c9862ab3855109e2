package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
)

// CreateConnect creates a Stripe Connect express account for the vendor.
// Idempotent: a vendor that already onboarded gets their existing
// account ID back.
func CreateConnect(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	if vendor.Stripe != nil {
		c.JSON(http.StatusOK, gin.H{"account": vendor.Stripe.AccountID})
		return
	}

	accountID, err := stripeService.CreateExpressAccount(vendor.Email, vendor.Store)
	if err != nil {
		zap.L().Error("Failed to create Stripe account",
			zap.String("vendor", vendor.ID.Hex()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	set := bson.M{
		"stripe": bson.M{
			"account_id": accountID,
			"activated":  false,
		},
	}
	if _, err := models.UpdateVendor(c.Request.Context(), vendor.ID, set); err != nil {
		zap.L().Error("Failed to store Stripe account",
			zap.String("vendor", vendor.ID.Hex()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": accountID})
}

// CreateConnectSession creates an embedded-onboarding session for the
// vendor's Connect account and returns its client secret.
func CreateConnectSession(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	if vendor.Stripe == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe onboarding has not been started"})
		return
	}

	clientSecret, err := stripeService.CreateAccountSession(vendor.Stripe.AccountID)
	if err != nil {
		zap.L().Error("Failed to create Stripe account session",
			zap.String("vendor", vendor.ID.Hex()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"client_secret": clientSecret})
}
