package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inlet-sites/inletshopapi/models"
)

func TestResultsPerPage(t *testing.T) {
	assert.Equal(t, int64(55), resultsPerPage(10, 100, 55))
	assert.Equal(t, int64(10), resultsPerPage(10, 100, 3))
	assert.Equal(t, int64(100), resultsPerPage(10, 100, 199))
	assert.Equal(t, int64(10), resultsPerPage(10, 100, 10))
	assert.Equal(t, int64(100), resultsPerPage(10, 100, 100))
}

func withEnv(t *testing.T, env string) {
	t.Helper()
	prev := appEnv
	appEnv = env
	t.Cleanup(func() { appEnv = prev })
}

func TestSetAuthCookieProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withEnv(t, "production")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuthCookie(c, "64a000000000000000000001")

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "vendor=64a000000000000000000001")
	assert.Contains(t, cookie, "Domain=inletsites.dev")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=None")
}

func TestSetAuthCookieDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withEnv(t, "development")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setAuthCookie(c, "64a000000000000000000001")

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "vendor=64a000000000000000000001")
	assert.Contains(t, cookie, "HttpOnly")
	assert.NotContains(t, cookie, "Secure")
	assert.NotContains(t, cookie, "Domain=")
}

func TestClearAuthCookieExpires(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withEnv(t, "development")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	clearAuthCookie(c)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "vendor=")
	assert.Contains(t, cookie, "Max-Age=0")
}

func TestPriceRange(t *testing.T) {
	assert.Nil(t, priceRange(nil))
	assert.Equal(t, int32(1500), priceRange([]models.Price{{Price: 1500}}))
	assert.Equal(t, [2]int32{500, 2500}, priceRange([]models.Price{
		{Price: 2500},
		{Price: 500},
		{Price: 1200},
	}))
}

func TestToShortProductResponse(t *testing.T) {
	product := models.Product{
		ID:     primitive.NewObjectID(),
		Name:   "Driftwood Lamp",
		Tags:   []string{"decor"},
		Images: []string{"/vendor-a/product-b/front.avif", "/vendor-a/product-b/back.avif"},
		Prices: []models.Price{{Price: 4500}},
	}

	resp := toShortProductResponse(product)
	require.NotNil(t, resp.Image)
	assert.Equal(t, "/vendor-a/product-b/front.avif", *resp.Image)
	assert.Equal(t, int32(4500), resp.Price)

	product.Images = nil
	assert.Nil(t, toShortProductResponse(product).Image)
}

func TestBuildVendorUpdate(t *testing.T) {
	activated := true
	slogan := "Fresh off the boat"
	update := buildVendorUpdate(vendorUpdateRequest{
		StripeActivated: &activated,
		PublicData:      &models.PublicData{Slogan: &slogan},
	})

	assert.Equal(t, bson.M{
		"stripe.activated":   true,
		"public_data.slogan": "Fresh off the boat",
	}, update)
}

func TestBuildVendorUpdateEmptyRequest(t *testing.T) {
	assert.Empty(t, buildVendorUpdate(vendorUpdateRequest{}))
}

func TestBuildVendorUpdateHours(t *testing.T) {
	update := buildVendorUpdate(vendorUpdateRequest{
		PublicData: &models.PublicData{
			Hours: &models.BusinessHours{
				Monday: []string{"9:00", "17:00"},
				Friday: []string{"9:00", "12:00"},
			},
		},
	})

	assert.Equal(t, bson.M{
		"public_data.hours": bson.M{
			"monday": []string{"9:00", "17:00"},
			"friday": []string{"9:00", "12:00"},
		},
	}, update)
}

func TestBuildProductUpdate(t *testing.T) {
	name := "Renamed"
	tags := []string{"new"}
	update := buildProductUpdate(productUpdateRequest{Name: &name, Tags: &tags})

	assert.Equal(t, bson.M{"name": "Renamed", "tags": []string{"new"}}, update)
	assert.Empty(t, buildProductUpdate(productUpdateRequest{}))
}

func TestBuildProductDemotesPricesWithoutStripe(t *testing.T) {
	vendor := &models.Vendor{ID: primitive.NewObjectID()}
	req := createProductRequest{
		Name: "Hand-thrown Mug",
		Prices: []createPriceRequest{
			{Descriptor: "Single", Price: 2200, PurchaseOption: models.PurchaseOptionShip},
		},
	}

	product := buildProduct(req, vendor)
	require.Len(t, product.Prices, 1)
	assert.Equal(t, models.PurchaseOptionList, product.Prices[0].PurchaseOption)

	vendor.Stripe = &models.StripeData{AccountID: "acct_1", Activated: true}
	product = buildProduct(req, vendor)
	assert.Equal(t, models.PurchaseOptionShip, product.Prices[0].PurchaseOption)
}

func TestBuildProductDefaults(t *testing.T) {
	vendor := &models.Vendor{ID: primitive.NewObjectID()}
	product := buildProduct(createProductRequest{Name: "Bare"}, vendor)

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, vendor.ID, product.Vendor)
	assert.True(t, product.Active)
	assert.NotNil(t, product.Tags)
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.WithinDuration(t, time.Now().UTC(), product.CreatedAt, time.Minute)
}
