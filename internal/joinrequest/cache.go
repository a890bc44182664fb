package joinrequest

import "sync"

// Cache holds the last fetched pending list per owner so the UI can update
// optimistically after accept/reject without waiting for a fresh fetch.
// Subscribers get the full list on every change.
type Cache struct {
	mu      sync.RWMutex
	pending map[string][]JoinRequest
	subs    map[string][]chan []JoinRequest
}

func NewCache() *Cache {
	return &Cache{
		pending: map[string][]JoinRequest{},
		subs:    map[string][]chan []JoinRequest{},
	}
}

func (c *Cache) Set(ownerID string, list []JoinRequest) {
	c.mu.Lock()
	c.pending[ownerID] = list
	c.mu.Unlock()
	c.publish(ownerID, list)
}

func (c *Cache) Get(ownerID string) []JoinRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending[ownerID]
}

// Remove drops the (user, event) pair from the owner's cached list. Purely
// local: the backing store is untouched.
func (c *Cache) Remove(ownerID, userID, eventID string) {
	c.mu.Lock()
	list := removeRequest(c.pending[ownerID], userID, eventID)
	c.pending[ownerID] = list
	c.mu.Unlock()
	c.publish(ownerID, list)
}

// Drop removes the (user, event) pair from every cached owner list. Used
// after accept/reject when the caller does not know which owner list holds
// the pair.
func (c *Cache) Drop(userID, eventID string) {
	c.mu.Lock()
	changed := map[string][]JoinRequest{}
	for ownerID, list := range c.pending {
		filtered := removeRequest(list, userID, eventID)
		if len(filtered) != len(list) {
			c.pending[ownerID] = filtered
			changed[ownerID] = filtered
		}
	}
	c.mu.Unlock()
	for ownerID, list := range changed {
		c.publish(ownerID, list)
	}
}

// Subscribe returns a channel receiving every change to the owner's list.
func (c *Cache) Subscribe(ownerID string) <-chan []JoinRequest {
	ch := make(chan []JoinRequest, 8)
	c.mu.Lock()
	c.subs[ownerID] = append(c.subs[ownerID], ch)
	c.mu.Unlock()
	return ch
}

func (c *Cache) publish(ownerID string, list []JoinRequest) {
	c.mu.RLock()
	subs := c.subs[ownerID]
	c.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- list:
		default:
		}
	}
}

// removeRequest filters the (user, event) pair out of list without mutating it.
func removeRequest(list []JoinRequest, userID, eventID string) []JoinRequest {
	out := make([]JoinRequest, 0, len(list))
	for _, r := range list {
		if r.UserID == userID && r.EventID == eventID {
			continue
		}
		out = append(out, r)
	}
	return out
}
