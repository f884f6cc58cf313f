package listingRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"stayfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildSearchFilter translates a ListingFilter into a Mongo filter document.
func buildSearchFilter(f models.ListingFilter) bson.M {
	filter := bson.M{}
	if f.City != "" {
		filter["location.city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.City) + "$", "$options": "i"}
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		filter["price_per_night"] = price
	}
	if f.Guests > 0 {
		filter["max_guests"] = bson.M{"$gte": f.Guests}
	}
	if f.Query != "" {
		filter["$text"] = bson.M{"$search": f.Query}
	}
	return filter
}

func (r *MongoListingRepo) Search(ctx context.Context, f models.ListingFilter) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"reviews": 0})
	return r.find(ctx, buildSearchFilter(f), opts)
}

func (r *MongoListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"owner_id": ownerID}, opts)
}

func (r *MongoListingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]models.Listing, 0)
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}
