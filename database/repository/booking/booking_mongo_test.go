package bookingRepo

import (
	"context"
	"testing"
	"time"

	"stayfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "stayfinder.bookings"

func bookingDoc(id, guest string, created time.Time) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "listing", Value: "l1"},
		{Key: "guest", Value: guest},
		{Key: "host", Value: "h1"},
		{Key: "status", Value: "pending"},
		{Key: "created_at", Value: created},
	}
}

// sortDirection reads the sort order the driver sent for field.
func sortDirection(t *testing.T, cmd bson.Raw, field string) int64 {
	t.Helper()
	v := cmd.Lookup("sort", field)
	if i, ok := v.Int32OK(); ok {
		return int64(i)
	}
	if i, ok := v.Int64OK(); ok {
		return i
	}
	t.Fatalf("no sort on %s in %s", field, cmd)
	return 0
}

func TestMongoBookingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("get missing booking is nil", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		b, err := repo.GetByID(context.Background(), "ghost")
		if err != nil || b != nil {
			t.Errorf("GetByID = %+v, %v; want nil, nil", b, err)
		}
	})

	mt.Run("get decodes booking", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bookingDoc("b1", "g1", created)))

		b, err := repo.GetByID(context.Background(), "b1")
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if b == nil || b.ID != "b1" || b.Guest != "g1" || b.Status != models.StatusPending || !b.CreatedAt.Equal(created) {
			t.Errorf("unexpected booking %+v", b)
		}
	})

	mt.Run("update status of missing booking is nil", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		b, err := repo.UpdateStatus(context.Background(), "ghost", models.StatusConfirmed, created)
		if err != nil || b != nil {
			t.Errorf("UpdateStatus = %+v, %v; want nil, nil", b, err)
		}
	})

	mt.Run("update status returns the new document", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		doc := bookingDoc("b1", "g1", created)
		doc[4] = bson.E{Key: "status", Value: "confirmed"}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: doc}})

		b, err := repo.UpdateStatus(context.Background(), "b1", models.StatusConfirmed, created)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if b == nil || b.Status != models.StatusConfirmed {
			t.Errorf("unexpected booking %+v", b)
		}
	})

	mt.Run("delete reports whether a document went away", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		if ok, err := repo.Delete(context.Background(), "ghost"); err != nil || ok {
			t.Errorf("Delete(ghost) = %v, %v; want false, nil", ok, err)
		}
		if ok, err := repo.Delete(context.Background(), "b1"); err != nil || !ok {
			t.Errorf("Delete(b1) = %v, %v; want true, nil", ok, err)
		}
	})

	mt.Run("get by no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)

		got, err := repo.GetByIDs(context.Background(), nil)
		if err != nil || got != nil {
			t.Errorf("GetByIDs(nil) = %v, %v; want nil, nil", got, err)
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			t.Errorf("unexpected command %s", evt.CommandName)
		}
	})

	mt.Run("list by guest sorts newest first and decodes", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bookingDoc("b2", "g1", created.Add(time.Hour)),
			bookingDoc("b1", "g1", created),
		))

		got, err := repo.ListByGuest(context.Background(), "g1")
		if err != nil {
			t.Fatalf("ListByGuest: %v", err)
		}
		if len(got) != 2 || got[0].ID != "b2" || got[1].ID != "b1" {
			t.Errorf("unexpected bookings %+v", got)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			t.Fatalf("expected a find command, got %+v", evt)
		}
		if dir := sortDirection(t, evt.Command, "created_at"); dir != -1 {
			t.Errorf("created_at sort = %d, want -1", dir)
		}
		if guest := evt.Command.Lookup("filter", "guest").StringValue(); guest != "g1" {
			t.Errorf("filter guest = %q", guest)
		}
	})

	mt.Run("list of nobody is empty not nil", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := repo.ListByHost(context.Background(), "h9")
		if err != nil || got == nil || len(got) != 0 {
			t.Errorf("ListByHost = %#v, %v; want empty slice", got, err)
		}
	})

	mt.Run("query failure is wrapped", func(mt *mtest.T) {
		repo := NewMongoBookingRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad query",
		}))

		if _, err := repo.ListByListing(context.Background(), "l1"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
