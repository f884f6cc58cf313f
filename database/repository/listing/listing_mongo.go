package listingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

func NewMongoListingRepo(db *mongo.Database) *MongoListingRepo {
	return &MongoListingRepo{coll: db.Collection("listings")}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var listing models.Listing
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &listing, nil
}

// GetByIDs fetches a projection suitable for summaries; reviews are left out.
func (r *MongoListingRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetProjection(bson.M{"reviews": 0, "available_dates": 0})
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, opts)
}

func (r *MongoListingRepo) Update(ctx context.Context, listing *models.Listing) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	listing.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":           listing.Title,
		"description":     listing.Description,
		"location":        listing.Location,
		"images":          listing.Images,
		"price_per_night": listing.PricePerNight,
		"bedrooms":        listing.Bedrooms,
		"bathrooms":       listing.Bathrooms,
		"max_guests":      listing.MaxGuests,
		"amenities":       listing.Amenities,
		"available_dates": listing.AvailableDates,
		"updated_at":      listing.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": listing.ID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to update listing with id %s: %w", listing.ID, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoListingRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete listing with id %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoListingRepo) AddReview(ctx context.Context, listingID string, review models.Review, rating float64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"rating": rating, "updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": listingID}, update)
	if err != nil {
		return fmt.Errorf("failed to add review to listing %s: %w", listingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("listing with id %s not found", listingID)
	}
	return nil
}
