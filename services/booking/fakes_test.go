package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"stayfinder/models"
	"stayfinder/services/notification"
)

type memStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newMemStore() *memStore {
	return &memStore{bookings: map[string]models.Booking{}}
}

func (m *memStore) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memStore) GetByIDs(_ context.Context, ids []string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, id := range ids {
		if b, ok := m.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, status models.BookingStatus, updatedAt time.Time) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	m.bookings[id] = b
	return &b, nil
}

func (m *memStore) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return false, nil
	}
	delete(m.bookings, id)
	return true, nil
}

func (m *memStore) list(match func(models.Booking) bool) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memStore) ListByGuest(_ context.Context, guestID string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return b.Guest == guestID }), nil
}

func (m *memStore) ListByHost(_ context.Context, hostID string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return b.Host == hostID }), nil
}

func (m *memStore) ListByListing(_ context.Context, listingID string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return b.Listing == listingID }), nil
}

type memListings struct {
	mu       sync.Mutex
	listings map[string]models.Listing
}

func (m *memListings) put(l models.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[l.ID] = l
}

func (m *memListings) GetByID(_ context.Context, id string) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *memListings) GetByIDs(_ context.Context, ids []string) ([]models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Listing{}
	for _, id := range ids {
		if l, ok := m.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type memUsers map[string]models.User

func (m memUsers) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := m[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// memNotifications backs a real notification service so tests observe what
// the emitter actually persisted.
type memNotifications struct {
	mu    sync.Mutex
	items []models.Notification
	fail  bool
}

func (m *memNotifications) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("notification store unavailable")
	}
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListByRecipient(_ context.Context, recipient string, _ int64) ([]models.Notification, error) {
	return m.forRecipient(recipient), nil
}

func (m *memNotifications) MarkRead(context.Context, string, string) (*models.Notification, error) {
	return nil, nil
}

func (m *memNotifications) MarkAllRead(context.Context, string) (int64, error) { return 0, nil }

func (m *memNotifications) CountUnread(_ context.Context, recipient string) (int64, error) {
	return int64(len(m.forRecipient(recipient))), nil
}

func (m *memNotifications) DeleteRead(context.Context, string) (int64, error) { return 0, nil }

func (m *memNotifications) forRecipient(recipient string) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.items {
		if n.Recipient == recipient {
			out = append(out, n)
		}
	}
	return out
}

func (m *memNotifications) all() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Notification(nil), m.items...)
}

// snapshotEmitter records whether the booking still existed when Emit ran.
type snapshotEmitter struct {
	inner   notification.Emitter
	store   *memStore
	present []bool
}

func (e *snapshotEmitter) Emit(ctx context.Context, kind models.BookingStatus, b *models.Booking, l *models.Listing, actor string) []notification.EmitResult {
	found, _ := e.store.GetByID(ctx, b.ID)
	e.present = append(e.present, found != nil)
	return e.inner.Emit(ctx, kind, b, l, actor)
}

const (
	hostID  = "host-1"
	guestID = "guest-1"
	otherID = "stranger-1"
)

type harness struct {
	svc      *DefaultBookingService
	store    *memStore
	listings *memListings
	notes    *memNotifications
	emitter  *snapshotEmitter
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := newMemStore()
	listings := &memListings{listings: map[string]models.Listing{}}
	listings.put(models.Listing{ID: "listing-1", OwnerID: hostID, Title: "Lake Cabin", PricePerNight: 100, MaxGuests: 4})
	users := memUsers{
		hostID:  {ID: hostID, Name: "Hana Host", Email: "host@example.com"},
		guestID: {ID: guestID, Name: "Gil Guest", Email: "guest@example.com"},
	}
	notes := &memNotifications{}

	notifier, err := notification.NewDefaultNotificationService(notes, listings, store, nil)
	if err != nil {
		t.Fatalf("notification service: %v", err)
	}
	emitter := &snapshotEmitter{inner: notifier, store: store}

	svc, err := NewDefaultBookingService(store, listings, users, emitter, nil)
	if err != nil {
		t.Fatalf("booking service: %v", err)
	}

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return &harness{svc: svc, store: store, listings: listings, notes: notes, emitter: emitter}
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

// seedBooking creates a pending booking and optionally forces it into status.
func (h *harness) seedBooking(t *testing.T, status models.BookingStatus) *models.Booking {
	t.Helper()
	b, err := h.svc.CreateBooking(context.Background(), CreateInput{
		ListingID: "listing-1",
		GuestID:   guestID,
		CheckIn:   day(1),
		CheckOut:  day(4),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if status != models.StatusPending {
		b, _ = h.store.UpdateStatus(context.Background(), b.ID, status, time.Now())
	}
	return b
}
