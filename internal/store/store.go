package store

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when an id does not name a live record.
var ErrNotFound = errors.New("user not found")

// ID is a handle to a live user record. IDs are unique only among records
// that currently exist: once a record is removed its id may be handed out
// again by a later Insert.
type ID = uint64

// User is the record payload. It carries no fields yet; new fields can be
// added without touching the store's slot bookkeeping.
type User struct{}

type slot struct {
	user     User
	occupied bool
}

// Store is a thread-safe, in-memory user collection with slab-style slot
// reuse: freed slots are recycled for future inserts before the backing
// slice grows. All public methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	slots []slot
	free  []int // indices of free slots, kept sorted ascending
}

// New creates a new empty store.
func New() *Store {
	return &Store{}
}

// Insert stores the user in the lowest free slot, growing the collection
// only when no freed slot is available, and returns the assigned id.
func (s *Store) Insert(u User) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.free) > 0 {
		i := s.free[0]
		s.free = s.free[1:]
		s.slots[i] = slot{user: u, occupied: true}
		return ID(i)
	}
	s.slots = append(s.slots, slot{user: u, occupied: true})
	return ID(len(s.slots) - 1)
}

// Get returns the record at id, or ErrNotFound if the slot is not occupied.
func (s *Store) Get(id ID) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.live(id) {
		return User{}, ErrNotFound
	}
	return s.slots[id].user, nil
}

// Update overwrites the record at id in place. The id and its slot are
// unchanged. Returns ErrNotFound if the slot is not occupied.
func (s *Store) Update(id ID, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.live(id) {
		return ErrNotFound
	}
	s.slots[id].user = u
	return nil
}

// Remove frees the slot at id, making the id eligible for reuse by a later
// Insert. Returns ErrNotFound if the slot is not occupied.
func (s *Store) Remove(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.live(id) {
		return ErrNotFound
	}
	s.slots[id] = slot{}

	i := int(id)
	at := sort.SearchInts(s.free, i)
	s.free = append(s.free, 0)
	copy(s.free[at+1:], s.free[at:])
	s.free[at] = i
	return nil
}

// List returns the ids of all live records in slot order, low to high.
// After slots have been reused this is neither sorted by insertion time nor
// guaranteed to reflect it.
func (s *Store) List() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]ID, 0, len(s.slots)-len(s.free))
	for i, sl := range s.slots {
		if sl.occupied {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots) - len(s.free)
}

func (s *Store) live(id ID) bool {
	return id < ID(len(s.slots)) && s.slots[id].occupied
}
