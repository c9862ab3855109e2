package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inlet-sites/inletshopapi/database"
)

const productCollection = "products"

// ErrNotOwned is returned when a product does not exist or does not
// belong to the requesting vendor. The two cases are deliberately not
// distinguished.
var ErrNotOwned = errors.New("vendor does not own this product")

type PurchaseOption string

const (
	PurchaseOptionShip PurchaseOption = "ship"
	PurchaseOptionBuy  PurchaseOption = "buy"
	PurchaseOptionList PurchaseOption = "list"
)

func (p PurchaseOption) Valid() bool {
	switch p {
	case PurchaseOptionShip, PurchaseOptionBuy, PurchaseOptionList:
		return true
	}
	return false
}

type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Vendor    primitive.ObjectID `json:"vendor" bson:"vendor"`
	Name      string             `json:"name" bson:"name"`
	Tags      []string           `json:"tags" bson:"tags"`
	Images    []string           `json:"images" bson:"images"`
	Thumbnail *string            `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Active    bool               `json:"active" bson:"active"`
	Archived  bool               `json:"archived" bson:"archived"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Prices    []Price            `json:"prices" bson:"prices"`
}

type Price struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Descriptor     string             `json:"descriptor" bson:"descriptor"`
	Price          int32              `json:"price" bson:"price"`
	Quantity       int32              `json:"quantity" bson:"quantity"`
	Shipping       int32              `json:"shipping" bson:"shipping"`
	Images         []string           `json:"images" bson:"images"`
	PurchaseOption PurchaseOption     `json:"purchase_option" bson:"purchase_option"`
	Archived       bool               `json:"archived" bson:"archived"`
}

// InsertProduct saves a new product document.
func InsertProduct(ctx context.Context, p *Product) error {
	_, err := database.DB.Collection(productCollection).InsertOne(ctx, p)
	return err
}

// FindProductByID returns a product by ID. When vendorID is non-nil the
// lookup is restricted to that owner; a miss for either reason returns
// mongo.ErrNoDocuments.
func FindProductByID(ctx context.Context, id primitive.ObjectID, vendorID *primitive.ObjectID) (*Product, error) {
	filter := bson.M{"_id": id}
	if vendorID != nil {
		filter["vendor"] = *vendorID
	}

	var product Product
	err := database.DB.Collection(productCollection).
		FindOne(ctx, filter).
		Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductsByVendor returns one page of a vendor's products.
func FindProductsByVendor(ctx context.Context, vendorID primitive.ObjectID, page, results int64) ([]Product, error) {
	opts := options.Find().
		SetSkip(page * results).
		SetLimit(results)

	cursor, err := database.DB.Collection(productCollection).
		Find(ctx, bson.M{"vendor": vendorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// VerifyProductOwnership confirms a product exists and belongs to the
// vendor. Returns ErrNotOwned when no document matches both.
func VerifyProductOwnership(ctx context.Context, productID, vendorID primitive.ObjectID) error {
	count, err := database.DB.Collection(productCollection).
		CountDocuments(ctx, bson.M{"_id": productID, "vendor": vendorID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotOwned
	}
	return nil
}

// UpdateProductOwned applies an update to a product, filtered on both
// product ID and owning vendor. Ownership is always re-asserted here even
// when the caller verified it earlier.
func UpdateProductOwned(ctx context.Context, productID, vendorID primitive.ObjectID, update bson.M) error {
	result, err := database.DB.Collection(productCollection).
		UpdateOne(ctx, bson.M{"_id": productID, "vendor": vendorID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotOwned
	}
	return nil
}

// UpdatePriceOwned applies an update to one embedded price, using the
// positional operator. The filter matches product, owner, and price.
func UpdatePriceOwned(ctx context.Context, productID, priceID, vendorID primitive.ObjectID, update bson.M) error {
	filter := bson.M{
		"_id":        productID,
		"vendor":     vendorID,
		"prices._id": priceID,
	}

	result, err := database.DB.Collection(productCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotOwned
	}
	return nil
}

// BuildImagesUpdate builds the single update document the image pipeline
// commits: append the converted URLs, optionally overwrite the thumbnail.
func BuildImagesUpdate(urls []string, thumbnail string) bson.M {
	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
	}
	if thumbnail != "" {
		update["$set"] = bson.M{"thumbnail": thumbnail}
	}
	return update
}

// AppendProductImages commits an image batch to a product. The filter
// re-asserts ownership so a product deleted or reassigned after the
// upload was accepted fails the batch instead of updating.
func AppendProductImages(ctx context.Context, productID, vendorID primitive.ObjectID, urls []string, thumbnail string) error {
	return UpdateProductOwned(ctx, productID, vendorID, BuildImagesUpdate(urls, thumbnail))
}

// IsNoDocuments reports whether err is a missing-document lookup result.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
