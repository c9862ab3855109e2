package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
	"github.com/inlet-sites/inletshopapi/services/password"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a vendor by email and password and sets the
// session cookie.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	vendor, err := models.FindVendorByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if models.IsNoDocuments(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			zap.L().Error("Failed to look up vendor for login", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
		return
	}

	if vendor.PassHash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := password.Verify(req.Password, *vendor.PassHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	setAuthCookie(c, vendor.ID.Hex())
	c.JSON(http.StatusOK, vendor)
}

// Logout clears the vendor session cookie.
func Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated vendor's profile.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentVendor(c))
}

type vendorUpdateRequest struct {
	StripeActivated   *bool              `json:"stripe_activated"`
	NewOrderSendEmail *bool              `json:"new_order_send_email"`
	PublicData        *models.PublicData `json:"public_data"`
}

// UpdateVendor applies a partial update to the authenticated vendor's
// settings and public storefront data.
func UpdateVendor(c *gin.Context) {
	vendor := middleware.CurrentVendor(c)

	var req vendorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	set := buildVendorUpdate(req)
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update data provided"})
		return
	}

	updated, err := models.UpdateVendor(c.Request.Context(), vendor.ID, set)
	if err != nil {
		zap.L().Error("Failed to update vendor", zap.String("vendor", vendor.ID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// buildVendorUpdate maps the optional request fields onto dotted $set
// paths so absent fields are left untouched.
func buildVendorUpdate(req vendorUpdateRequest) bson.M {
	set := bson.M{}

	if req.StripeActivated != nil {
		set["stripe.activated"] = *req.StripeActivated
	}
	if req.NewOrderSendEmail != nil {
		set["new_order_send_email"] = *req.NewOrderSendEmail
	}

	if req.PublicData == nil {
		return set
	}
	pd := req.PublicData

	if pd.Phone != nil {
		set["public_data.phone"] = *pd.Phone
	}
	if pd.Email != nil {
		set["public_data.email"] = *pd.Email
	}
	if pd.Address != nil {
		addr := bson.M{}
		if pd.Address.Text != nil {
			addr["text"] = *pd.Address.Text
		}
		if pd.Address.Link != nil {
			addr["link"] = *pd.Address.Link
		}
		set["public_data.address"] = addr
	}
	if pd.Slogan != nil {
		set["public_data.slogan"] = *pd.Slogan
	}
	if pd.Description != nil {
		set["public_data.description"] = *pd.Description
	}
	if pd.Hours != nil {
		set["public_data.hours"] = buildHoursDoc(pd.Hours)
	}
	if pd.Links != nil {
		set["public_data.links"] = pd.Links
	}
	if pd.Website != nil {
		set["public_data.website"] = *pd.Website
	}

	return set
}

func buildHoursDoc(hours *models.BusinessHours) bson.M {
	doc := bson.M{}

	if hours.Sunday != nil {
		doc["sunday"] = hours.Sunday
	}
	if hours.Monday != nil {
		doc["monday"] = hours.Monday
	}
	if hours.Tuesday != nil {
		doc["tuesday"] = hours.Tuesday
	}
	if hours.Wednesday != nil {
		doc["wednesday"] = hours.Wednesday
	}
	if hours.Thursday != nil {
		doc["thursday"] = hours.Thursday
	}
	if hours.Friday != nil {
		doc["friday"] = hours.Friday
	}
	if hours.Saturday != nil {
		doc["saturday"] = hours.Saturday
	}

	return doc
}
