package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inlet-sites/inletshopapi/services/images"
	"github.com/inlet-sites/inletshopapi/services/mailer"
	"github.com/inlet-sites/inletshopapi/services/payments"
)

var (
	imagePipeline *images.Pipeline
	stripeService *payments.StripeService
	mail          *mailer.Mailer
	appEnv        string
)

// Init wires the background services and environment the handlers depend
// on. Called once from main before routes are registered.
func Init(pipeline *images.Pipeline, stripe *payments.StripeService, m *mailer.Mailer, env string) {
	imagePipeline = pipeline
	stripeService = stripe
	mail = m
	appEnv = env
}

const (
	minResults     = 10
	maxResults     = 100
	defaultResults = 50
)

// resultsPerPage clamps the requested page size into [min, max].
func resultsPerPage(min, max, requested int64) int64 {
	if requested > max {
		return max
	}
	if requested < min {
		return min
	}
	return requested
}

// parsePagination reads page and results query parameters with defaults.
func parsePagination(c *gin.Context) (page, results int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}
	requested, err := strconv.ParseInt(c.DefaultQuery("results", strconv.Itoa(defaultResults)), 10, 64)
	if err != nil {
		requested = defaultResults
	}
	return page, resultsPerPage(minResults, maxResults, requested)
}

func production() bool {
	return appEnv == "production"
}

// setAuthCookie attaches the vendor session cookie to the response. The
// cookie holds the vendor's ObjectID hex; auth re-reads the vendor
// document on every request.
func setAuthCookie(c *gin.Context, vendorID string) {
	if production() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie("vendor", vendorID, 0, "/", ".inletsites.dev", true, true)
	} else {
		c.SetCookie("vendor", vendorID, 0, "/", "", false, true)
	}
}

// clearAuthCookie attaches a removal cookie for the vendor session.
func clearAuthCookie(c *gin.Context) {
	if production() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie("vendor", "", -1, "/", ".inletsites.dev", true, true)
	} else {
		c.SetCookie("vendor", "", -1, "/", "", false, true)
	}
}
