package models

import "time"

// GeoPoint is a GeoJSON point; Coordinates is [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Location struct {
	Address     string    `bson:"address" json:"address"`
	City        string    `bson:"city" json:"city"`
	State       string    `bson:"state" json:"state"`
	Country     string    `bson:"country" json:"country"`
	Coordinates *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type DateRange struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

type Review struct {
	ID        string    `bson:"id" json:"id"`
	User      string    `bson:"user" json:"user"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Listing is a bookable property owned by a host.
type Listing struct {
	ID             string      `bson:"id" json:"id"`
	OwnerID        string      `bson:"owner_id" json:"ownerId"`
	HostName       string      `bson:"host_name" json:"hostName"`
	Title          string      `bson:"title" json:"title"`
	Description    string      `bson:"description" json:"description"`
	Location       Location    `bson:"location" json:"location"`
	Images         []string    `bson:"images" json:"images"`
	PricePerNight  float64     `bson:"price_per_night" json:"pricePerNight"`
	Bedrooms       int         `bson:"bedrooms" json:"bedrooms"`
	Bathrooms      int         `bson:"bathrooms" json:"bathrooms"`
	MaxGuests      int         `bson:"max_guests" json:"maxGuests"`
	Amenities      []string    `bson:"amenities" json:"amenities"`
	AvailableDates []DateRange `bson:"available_dates" json:"availableDates"`
	Rating         float64     `bson:"rating" json:"rating"`
	Reviews        []Review    `bson:"reviews" json:"reviews"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

// ListingFilter narrows a listing search. Zero values mean "no constraint".
type ListingFilter struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Guests   int
	Query    string
}
