package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"stayfinder/models"
)

func fixture() (*models.Booking, *models.Listing) {
	listing := &models.Listing{ID: "listing-1", OwnerID: "host-1", Title: "Cliff House", Images: []string{"a.jpg"}}
	booking := &models.Booking{
		ID:       "booking-1",
		Listing:  listing.ID,
		Guest:    "guest-1",
		Host:     listing.OwnerID,
		CheckIn:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:   models.StatusPending,
	}
	return booking, listing
}

func newTestService(t *testing.T, store *memStore, opts ...Option) *DefaultNotificationService {
	t.Helper()
	svc, err := NewDefaultNotificationService(store, memListings{}, memBookings{}, nil, opts...)
	if err != nil {
		t.Fatalf("NewDefaultNotificationService: %v", err)
	}
	return svc
}

func TestEmitPendingNotifiesHost(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)
	booking, listing := fixture()

	results := svc.Emit(context.Background(), models.StatusPending, booking, listing, booking.Guest)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	n := results[0].Notification
	if results[0].Err != nil || n == nil {
		t.Fatalf("unexpected failure: %v", results[0].Err)
	}
	if n.Recipient != "host-1" {
		t.Errorf("recipient = %q, want host-1", n.Recipient)
	}
	if n.Title != "New Booking Request" || n.Type != models.StatusPending {
		t.Errorf("unexpected title/type: %q %q", n.Title, n.Type)
	}
	want := "You have a new booking request for Cliff House from 6/1/2024 to 6/4/2024"
	if n.Message != want {
		t.Errorf("message = %q, want %q", n.Message, want)
	}
	if n.Read || n.RelatedBooking != booking.ID || n.RelatedListing != listing.ID || n.ListingTitle != "Cliff House" {
		t.Errorf("unexpected notification fields: %+v", n)
	}
}

func TestEmitRecipientsPerKind(t *testing.T) {
	booking, listing := fixture()
	cases := []struct {
		kind  models.BookingStatus
		actor string
		want  []string
		title string
	}{
		{models.StatusConfirmed, "host-1", []string{"guest-1"}, "Booking Confirmed"},
		{models.StatusRejected, "host-1", []string{"guest-1"}, "Booking Declined"},
		{models.StatusCompleted, "host-1", []string{"guest-1", "host-1"}, "Stay Completed"},
		{models.StatusCancelled, "guest-1", []string{"host-1"}, "Booking Cancelled"},
		{models.StatusCancelled, "host-1", []string{"guest-1"}, "Booking Cancelled"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind)+"/"+tc.actor, func(t *testing.T) {
			svc := newTestService(t, newMemStore())
			results := svc.Emit(context.Background(), tc.kind, booking, listing, tc.actor)
			if len(results) != len(tc.want) {
				t.Fatalf("expected %d results, got %d", len(tc.want), len(results))
			}
			got := map[string]bool{}
			for _, r := range results {
				if r.Err != nil {
					t.Fatalf("unexpected error: %v", r.Err)
				}
				if r.Notification.Title != tc.title {
					t.Errorf("title = %q, want %q", r.Notification.Title, tc.title)
				}
				got[r.Notification.Recipient] = true
			}
			for _, w := range tc.want {
				if !got[w] {
					t.Errorf("missing notification for %s", w)
				}
			}
		})
	}
}

func TestEmitCompletedMessagesDifferByParty(t *testing.T) {
	svc := newTestService(t, newMemStore())
	booking, listing := fixture()

	for _, r := range svc.Emit(context.Background(), models.StatusCompleted, booking, listing, booking.Host) {
		switch r.Notification.Recipient {
		case booking.Guest:
			if !strings.HasPrefix(r.Notification.Message, "Your stay at Cliff House") {
				t.Errorf("guest message = %q", r.Notification.Message)
			}
		case booking.Host:
			if !strings.HasPrefix(r.Notification.Message, "The stay at Cliff House") {
				t.Errorf("host message = %q", r.Notification.Message)
			}
		}
	}
}

func TestEmitUnknownKindIsNoop(t *testing.T) {
	store := newMemStore()
	svc := newTestService(t, store)
	booking, listing := fixture()

	if results := svc.Emit(context.Background(), models.BookingStatus("archived"), booking, listing, booking.Host); results != nil {
		t.Fatalf("expected no results, got %v", results)
	}
	if store.attempts != 0 {
		t.Fatalf("expected no writes, got %d", store.attempts)
	}
}

func TestEmitFailureDoesNotBlockSibling(t *testing.T) {
	store := newMemStore()
	store.failFor["guest-1"] = true
	svc := newTestService(t, store)
	booking, listing := fixture()

	results := svc.Emit(context.Background(), models.StatusCompleted, booking, listing, booking.Host)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if Failed(results) != 1 {
		t.Fatalf("expected exactly one failure, got %d", Failed(results))
	}
	if store.attempts != 2 {
		t.Fatalf("expected both inserts attempted, got %d", store.attempts)
	}
	for _, r := range results {
		if r.Err == nil && r.Notification.Recipient != "host-1" {
			t.Errorf("unexpected success for %s", r.Notification.Recipient)
		}
		if r.Err != nil && r.Notification != nil {
			t.Errorf("failed result should not carry a notification")
		}
	}
}

func TestEmitEnqueuesPushForEachPersisted(t *testing.T) {
	store := newMemStore()
	store.failFor["guest-1"] = true
	pusher := &recordingPusher{}
	svc := newTestService(t, store, WithPusher(pusher))
	booking, listing := fixture()

	svc.Emit(context.Background(), models.StatusCompleted, booking, listing, booking.Host)

	if len(pusher.payloads) != 1 {
		t.Fatalf("expected 1 push, got %d", len(pusher.payloads))
	}
	p := pusher.payloads[0]
	if p.Recipient != "host-1" || p.Type != "completed" || p.BookingID != booking.ID {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestEmitWithoutListingUsesPlaceholderTitle(t *testing.T) {
	svc := newTestService(t, newMemStore())
	booking, _ := fixture()

	results := svc.Emit(context.Background(), models.StatusRejected, booking, nil, booking.Host)
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if got := results[0].Notification.Message; got != "Your booking request for your listing has been declined" {
		t.Errorf("message = %q", got)
	}
	if got := results[0].Notification.ListingTitle; got != "" {
		t.Errorf("listing title snapshot = %q, want empty", got)
	}
}
