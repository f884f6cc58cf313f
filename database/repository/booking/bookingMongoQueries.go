package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"stayfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

func (r *MongoBookingRepo) ListByGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"guest": guestID}, newestFirst)
}

func (r *MongoBookingRepo) ListByHost(ctx context.Context, hostID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"host": hostID}, newestFirst)
}

func (r *MongoBookingRepo) ListByListing(ctx context.Context, listingID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"listing": listingID}, newestFirst)
}

// find runs filter with an optional sort and decodes every document.
func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
