package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-capacity least-recently-used cache.
type LRU struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.RWMutex
}

type entry struct {
	key   string
	value interface{}
}

// NewLRU creates a new LRU cache with the specified capacity
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

// Set adds or updates a key-value pair in the cache
func (c *LRU) Set(key string, value interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Check if key exists
	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	// Add new item to the front
	element := c.queue.PushFront(&entry{
		key:   key,
		value: value,
	})
	c.items[key] = element

	// Evict items if over capacity
	if c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value from the cache by key
func (c *LRU) Get(key string) (interface{}, bool) {
	// Full lock: a hit reorders the recency queue
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[key]
	if !exists {
		return nil, false
	}

	// Move to front (mark as recently used)
	c.queue.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Invalidate removes an item from the cache by key
func (c *LRU) Invalidate(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if element, exists := c.items[key]; exists {
		c.queue.Remove(element)
		delete(c.items, key)
	}
}

// Clear empties the cache
func (c *LRU) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*list.Element)
	c.queue = list.New()
}

// Len reports the number of cached entries
func (c *LRU) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.queue.Len()
}

// evict removes the least recently used item; callers must hold the lock
func (c *LRU) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}
	c.queue.Remove(element)
	delete(c.items, element.Value.(*entry).key)
}
