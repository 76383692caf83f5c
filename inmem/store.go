package inmem

import (
	"sync"
)

// Store is a KeyValueStore kept in memory. It does not survive a restart and
// is meant for tests and throwaway sessions.
type Store struct {
	mu     sync.Locker
	values map[string]string
}

func NewStore() *Store {
	return &Store{
		mu:     &sync.Mutex{},
		values: make(map[string]string),
	}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
