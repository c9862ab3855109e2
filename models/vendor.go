package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inlet-sites/inletshopapi/database"
)

const vendorCollection = "vendors"

// Vendor is a tenant store owner. The pass_hash and token fields never
// leave the API; token is a rotating single-use credential embedded in
// password create/reset links.
type Vendor struct {
	ID                primitive.ObjectID `json:"id" bson:"_id"`
	Email             string             `json:"email" bson:"email"`
	Owner             string             `json:"owner" bson:"owner"`
	Store             string             `json:"store" bson:"store"`
	URL               string             `json:"url" bson:"url"`
	PassHash          *string            `json:"-" bson:"pass_hash,omitempty"`
	Token             string             `json:"-" bson:"token"`
	PublicData        PublicData         `json:"public_data" bson:"public_data"`
	HTML              *string            `json:"html,omitempty" bson:"html,omitempty"`
	Active            bool               `json:"active" bson:"active"`
	NewOrderSendEmail bool               `json:"new_order_send_email" bson:"new_order_send_email"`
	Stripe            *StripeData        `json:"stripe,omitempty" bson:"stripe,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
}

type PublicData struct {
	Phone       *string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Email       *string        `json:"email,omitempty" bson:"email,omitempty"`
	Address     *Address       `json:"address,omitempty" bson:"address,omitempty"`
	Slogan      *string        `json:"slogan,omitempty" bson:"slogan,omitempty"`
	Description *string        `json:"description,omitempty" bson:"description,omitempty"`
	Image       *string        `json:"image,omitempty" bson:"image,omitempty"`
	Hours       *BusinessHours `json:"hours,omitempty" bson:"hours,omitempty"`
	Links       []Link         `json:"links,omitempty" bson:"links,omitempty"`
	Website     *string        `json:"website,omitempty" bson:"website,omitempty"`
}

type Address struct {
	Text *string `json:"text,omitempty" bson:"text,omitempty"`
	Link *string `json:"link,omitempty" bson:"link,omitempty"`
}

type BusinessHours struct {
	Sunday    []string `json:"sunday,omitempty" bson:"sunday,omitempty"`
	Monday    []string `json:"monday,omitempty" bson:"monday,omitempty"`
	Tuesday   []string `json:"tuesday,omitempty" bson:"tuesday,omitempty"`
	Wednesday []string `json:"wednesday,omitempty" bson:"wednesday,omitempty"`
	Thursday  []string `json:"thursday,omitempty" bson:"thursday,omitempty"`
	Friday    []string `json:"friday,omitempty" bson:"friday,omitempty"`
	Saturday  []string `json:"saturday,omitempty" bson:"saturday,omitempty"`
}

type Link struct {
	Text string `json:"text" bson:"text"`
	URL  string `json:"url" bson:"url"`
}

type StripeData struct {
	AccountID string `json:"account_id" bson:"account_id"`
	Activated bool   `json:"activated" bson:"activated"`
}

// FindVendorByID returns the vendor with the given ID, or
// mongo.ErrNoDocuments.
func FindVendorByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error) {
	var vendor Vendor
	err := database.DB.Collection(vendorCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&vendor)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindVendorByEmail returns the vendor with the given email address.
func FindVendorByEmail(ctx context.Context, email string) (*Vendor, error) {
	var vendor Vendor
	err := database.DB.Collection(vendorCollection).
		FindOne(ctx, bson.M{"email": email}).
		Decode(&vendor)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindVendorByURL returns the vendor with the given public URL slug.
func FindVendorByURL(ctx context.Context, url string) (*Vendor, error) {
	var vendor Vendor
	err := database.DB.Collection(vendorCollection).
		FindOne(ctx, bson.M{"url": url}).
		Decode(&vendor)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// UpdateVendor applies a $set update to the vendor and returns the
// updated document.
func UpdateVendor(ctx context.Context, id primitive.ObjectID, set bson.M) (*Vendor, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var vendor Vendor
	err := database.DB.Collection(vendorCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&vendor)
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListActiveVendors returns all active vendors with the given projection.
func ListActiveVendors(ctx context.Context, projection bson.M) ([]Vendor, error) {
	opts := options.Find().SetProjection(projection)

	cursor, err := database.DB.Collection(vendorCollection).
		Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vendors []Vendor
	if err := cursor.All(ctx, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}
