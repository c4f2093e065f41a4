package crm

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/domain/user"
	"github.com/autocrm/autocrm/internal/shared/biztime"
)

// userCache is a best-effort, session-scoped memo of users rows. It is
// bounded and entries expire after ttl; a zero ttl never expires. Staleness
// is acceptable: writes through the façade refresh their entry, other
// writers are not observed.
type userCache struct {
	mu         sync.Mutex
	entries    map[uuid.UUID]cachedUser
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type cachedUser struct {
	user     *user.User
	storedAt time.Time
}

func newUserCache(maxEntries int, ttl time.Duration) *userCache {
	return &userCache{
		entries:    make(map[uuid.UUID]cachedUser),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        biztime.NowUTC,
	}
}

func (c *userCache) get(id uuid.UUID) (*user.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, id)
		return nil, false
	}
	return entry.user, true
}

func (c *userCache) put(u *user.User) {
	if u == nil || c.maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[u.ID()]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[u.ID()] = cachedUser{user: u, storedAt: c.now()}
}

func (c *userCache) invalidate(id uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

func (c *userCache) evictOldestLocked() {
	var (
		oldestID uuid.UUID
		oldestAt time.Time
		found    bool
	)
	for id, entry := range c.entries {
		if !found || entry.storedAt.Before(oldestAt) {
			oldestID, oldestAt, found = id, entry.storedAt, true
		}
	}
	if found {
		delete(c.entries, oldestID)
	}
}
