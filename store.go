package termpix

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultStoreSize is the maximum number of caches kept by a Store
const DefaultStoreSize = 16

// Store keeps recently built caches keyed by source path and scale so that
// repeated renders of the same file skip decoding
type Store struct {
	cache       map[string]*storeEntry
	accessOrder []string // LRU tracking, most recent first
	mutex       sync.RWMutex
	maxSize     int
}

type storeEntry struct {
	pixels  *PixelCache
	modTime time.Time
}

// NewStore creates a store holding at most size caches
func NewStore(size int) *Store {
	if size <= 0 {
		size = DefaultStoreSize
	}
	return &Store{
		cache:       make(map[string]*storeEntry),
		accessOrder: make([]string, 0, size),
		maxSize:     size,
	}
}

func storeKey(path string, s Scale) string {
	return fmt.Sprintf("%s@%gx%g", path, s.X, s.Y)
}

// Load returns the cache for path at scale s, building it on a miss. Entries
// are rebuilt when the file's modification time changes.
func (st *Store) Load(path string, s Scale) (*PixelCache, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}

	key := storeKey(path, s)
	st.mutex.RLock()
	var cached *PixelCache
	if entry, exists := st.cache[key]; exists && entry.modTime.Equal(info.ModTime()) {
		cached = entry.pixels
	}
	st.mutex.RUnlock()
	if cached != nil {
		st.touch(key)
		return cached, nil
	}

	pixels, err := BuildFromPath(path, s)
	if err != nil {
		return nil, err
	}
	st.set(key, pixels, info.ModTime())
	return pixels, nil
}

// Len returns the number of cached entries
func (st *Store) Len() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return len(st.cache)
}

// Clear drops every entry
func (st *Store) Clear() {
	st.mutex.Lock()
	st.cache = make(map[string]*storeEntry)
	st.accessOrder = st.accessOrder[:0]
	st.mutex.Unlock()
}

// touch moves a key to the front of the access order
func (st *Store) touch(key string) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if _, exists := st.cache[key]; exists {
		st.moveToFront(key)
	}
}

// set adds or replaces an entry, evicting the least recently used ones
func (st *Store) set(key string, pixels *PixelCache, modTime time.Time) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if entry, exists := st.cache[key]; exists {
		entry.pixels = pixels
		entry.modTime = modTime
		st.moveToFront(key)
		return
	}

	for len(st.cache) >= st.maxSize {
		st.evictLRU()
	}

	st.cache[key] = &storeEntry{
		pixels:  pixels,
		modTime: modTime,
	}
	st.accessOrder = append([]string{key}, st.accessOrder...)
}

// moveToFront must be called with the write lock held
func (st *Store) moveToFront(key string) {
	for i, k := range st.accessOrder {
		if k == key {
			st.accessOrder = append(st.accessOrder[:i], st.accessOrder[i+1:]...)
			break
		}
	}
	st.accessOrder = append([]string{key}, st.accessOrder...)
}

// evictLRU removes the least recently used entry
func (st *Store) evictLRU() {
	if len(st.accessOrder) == 0 {
		return
	}

	lruKey := st.accessOrder[len(st.accessOrder)-1]
	st.accessOrder = st.accessOrder[:len(st.accessOrder)-1]
	delete(st.cache, lruKey)
}
