package listingRepo

import (
	"context"
	"testing"

	"stayfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBuildSearchFilter(t *testing.T) {
	if got := buildSearchFilter(models.ListingFilter{}); len(got) != 0 {
		t.Errorf("empty filter = %v, want no constraints", got)
	}

	got := buildSearchFilter(models.ListingFilter{City: "St. Ives", MinPrice: 50, Guests: 2, Query: "sea view"})
	city, ok := got["location.city"].(bson.M)
	if !ok || city["$regex"] != `^St\. Ives$` || city["$options"] != "i" {
		t.Errorf("city clause = %v", got["location.city"])
	}
	price, ok := got["price_per_night"].(bson.M)
	if !ok || price["$gte"] != 50.0 {
		t.Errorf("price clause = %v", got["price_per_night"])
	}
	if _, hasMax := price["$lte"]; hasMax {
		t.Error("unset max price must not constrain")
	}
	if guests := got["max_guests"].(bson.M); guests["$gte"] != 2 {
		t.Errorf("guests clause = %v", guests)
	}
	if text := got["$text"].(bson.M); text["$search"] != "sea view" {
		t.Errorf("text clause = %v", text)
	}
}

func TestMongoListingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get missing listing is nil", func(mt *mtest.T) {
		repo := NewMongoListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stayfinder.listings", mtest.FirstBatch))

		l, err := repo.GetByID(context.Background(), "ghost")
		if err != nil || l != nil {
			t.Errorf("GetByID = %+v, %v; want nil, nil", l, err)
		}
	})

	mt.Run("delete of missing listing", func(mt *mtest.T) {
		repo := NewMongoListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if ok, err := repo.Delete(context.Background(), "ghost"); err != nil || ok {
			t.Errorf("Delete = %v, %v; want false, nil", ok, err)
		}
	})

	mt.Run("get by no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoListingRepo(mt.DB)

		got, err := repo.GetByIDs(context.Background(), []string{})
		if err != nil || got != nil {
			t.Errorf("GetByIDs = %v, %v; want nil, nil", got, err)
		}
	})

	mt.Run("search decodes listings", func(mt *mtest.T) {
		repo := NewMongoListingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stayfinder.listings", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "l2"}, {Key: "title", Value: "Loft"}, {Key: "price_per_night", Value: 80.0}},
			bson.D{{Key: "id", Value: "l1"}, {Key: "title", Value: "Barn"}, {Key: "price_per_night", Value: 60.0}},
		))

		got, err := repo.Search(context.Background(), models.ListingFilter{City: "Bath"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(got) != 2 || got[0].ID != "l2" || got[1].PricePerNight != 60 {
			t.Errorf("unexpected listings %+v", got)
		}
	})
}
