package controllers

import (
	"time"

	"github.com/inlet-sites/inletshopapi/models"
)

// PriceResponse is the vendor-facing view of one embedded price.
type PriceResponse struct {
	ID             string   `json:"id"`
	Descriptor     string   `json:"descriptor"`
	Price          int32    `json:"price"`
	Quantity       int32    `json:"quantity"`
	Shipping       int32    `json:"shipping"`
	Images         []string `json:"images"`
	PurchaseOption string   `json:"purchase_option"`
	Archived       bool     `json:"archived"`
}

func toPriceResponse(p models.Price) PriceResponse {
	return PriceResponse{
		ID:             p.ID.Hex(),
		Descriptor:     p.Descriptor,
		Price:          p.Price,
		Quantity:       p.Quantity,
		Shipping:       p.Shipping,
		Images:         p.Images,
		PurchaseOption: string(p.PurchaseOption),
		Archived:       p.Archived,
	}
}

// ProductResponse is the full view of one product.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tags      []string        `json:"tags"`
	Images    []string        `json:"images"`
	Thumbnail *string         `json:"thumbnail,omitempty"`
	Active    bool            `json:"active"`
	Archived  bool            `json:"archived"`
	CreatedAt time.Time       `json:"created_at"`
	Prices    []PriceResponse `json:"prices"`
}

func toProductResponse(p *models.Product) ProductResponse {
	prices := make([]PriceResponse, 0, len(p.Prices))
	for _, price := range p.Prices {
		prices = append(prices, toPriceResponse(price))
	}

	return ProductResponse{
		ID:        p.ID.Hex(),
		Name:      p.Name,
		Tags:      p.Tags,
		Images:    p.Images,
		Thumbnail: p.Thumbnail,
		Active:    p.Active,
		Archived:  p.Archived,
		CreatedAt: p.CreatedAt,
		Prices:    prices,
	}
}

// ShortProductResponse is the listing view: first image only, and the
// price collapsed to a single value or a [min, max] pair.
type ShortProductResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Image *string  `json:"image,omitempty"`
	Price any      `json:"price"`
}

func toShortProductResponse(p models.Product) ShortProductResponse {
	resp := ShortProductResponse{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Tags:  p.Tags,
		Price: priceRange(p.Prices),
	}
	if len(p.Images) > 0 {
		resp.Image = &p.Images[0]
	}
	return resp
}

// priceRange collapses a product's prices to one value when there is a
// single price, or [min, max] when there are several.
func priceRange(prices []models.Price) any {
	if len(prices) == 0 {
		return nil
	}
	if len(prices) == 1 {
		return prices[0].Price
	}

	min, max := prices[0].Price, prices[0].Price
	for _, p := range prices[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return [2]int32{min, max}
}

// VendorSummary is the public listing view of a vendor.
type VendorSummary struct {
	ID         string             `json:"id"`
	Store      string             `json:"store"`
	URL        string             `json:"url"`
	PublicData *VendorSummaryData `json:"public_data,omitempty"`
}

type VendorSummaryData struct {
	Slogan *string `json:"slogan,omitempty"`
	Image  *string `json:"image,omitempty"`
}

func toVendorSummary(v models.Vendor) VendorSummary {
	summary := VendorSummary{
		ID:    v.ID.Hex(),
		Store: v.Store,
		URL:   v.URL,
	}
	if v.PublicData.Slogan != nil || v.PublicData.Image != nil {
		summary.PublicData = &VendorSummaryData{
			Slogan: v.PublicData.Slogan,
			Image:  v.PublicData.Image,
		}
	}
	return summary
}

// VendorDetail is the public view of a single vendor storefront.
type VendorDetail struct {
	ID         string            `json:"id"`
	Store      string            `json:"store"`
	URL        string            `json:"url"`
	PublicData models.PublicData `json:"public_data"`
	HTML       *string           `json:"html,omitempty"`
}

func toVendorDetail(v *models.Vendor) VendorDetail {
	return VendorDetail{
		ID:         v.ID.Hex(),
		Store:      v.Store,
		URL:        v.URL,
		PublicData: v.PublicData,
		HTML:       v.HTML,
	}
}
