package notification

import (
	"context"
	"errors"
	"sort"
	"sync"

	"stayfinder/models"

	"firebase.google.com/go/v4/messaging"
)

type memStore struct {
	mu       sync.Mutex
	items    []models.Notification
	failFor  map[string]bool
	attempts int
}

func newMemStore() *memStore {
	return &memStore{failFor: map[string]bool{}}
}

func (m *memStore) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.failFor[n.Recipient] {
		return errors.New("write failed")
	}
	m.items = append(m.items, *n)
	return nil
}

func (m *memStore) ListByRecipient(_ context.Context, recipient string, limit int64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.items {
		if n.Recipient == recipient {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) MarkRead(_ context.Context, id, recipient string) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].Recipient == recipient {
			m.items[i].Read = true
			n := m.items[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (m *memStore) MarkAllRead(_ context.Context, recipient string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var changed int64
	for i := range m.items {
		if m.items[i].Recipient == recipient && !m.items[i].Read {
			m.items[i].Read = true
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) CountUnread(_ context.Context, recipient string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.items {
		if n.Recipient == recipient && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memStore) DeleteRead(_ context.Context, recipient string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var deleted int64
	for _, n := range m.items {
		if n.Recipient == recipient && n.Read {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.items = kept
	return deleted, nil
}

type memListings map[string]models.Listing

func (m memListings) GetByIDs(_ context.Context, ids []string) ([]models.Listing, error) {
	out := []models.Listing{}
	for _, id := range ids {
		if l, ok := m[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

type memBookings map[string]models.Booking

func (m memBookings) GetByIDs(_ context.Context, ids []string) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, id := range ids {
		if b, ok := m[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type recordingPusher struct {
	mu       sync.Mutex
	payloads []models.PushPayload
}

func (p *recordingPusher) EnqueuePush(_ context.Context, payload models.PushPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type memUsers map[string]*models.User

func (m memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return m[id], nil
}

type recordingSender struct {
	sent []*messaging.Message
}

func (s *recordingSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	s.sent = append(s.sent, msg)
	return "projects/test/messages/1", nil
}

// memCache mirrors the versioned fill protocol of RedisUnreadCache. beforeFill,
// when set, runs once between a count being read and its fill.
type memCache struct {
	mu         sync.Mutex
	counts     map[string]int64
	versions   map[string]int64
	beforeFill func()
}

func newMemCache() *memCache {
	return &memCache{counts: map[string]int64{}, versions: map[string]int64{}}
}

func (c *memCache) Lookup(_ context.Context, userID string) (int64, bool, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.counts[userID]
	return count, ok, c.versions[userID], nil
}

func (c *memCache) Fill(_ context.Context, userID string, count, version int64) error {
	if hook := c.beforeFill; hook != nil {
		c.beforeFill = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] != version {
		return errStaleFill
	}
	c.counts[userID] = count
	return nil
}

func (c *memCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
	delete(c.counts, userID)
	return nil
}

func (c *memCache) Reset(_ context.Context, userID string, count int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[userID]++
	c.counts[userID] = count
	return nil
}

func (c *memCache) cached(userID string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.counts[userID]
	return count, ok
}
