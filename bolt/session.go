package bolt

import (
	"errors"

	"github.com/boltdb/bolt"
)

var sessionBucket = []byte("session")

var errClosed = errors.New("bolt store is not open")

// SessionStore is a durable key-value store backed by a bolt database. It
// holds the persisted session.
type SessionStore struct {
	Driver *Driver
}

func (s *SessionStore) Get(key string) (string, bool, error) {
	if s.Driver.store == nil {
		return "", false, errClosed
	}

	var value []byte
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get([]byte(key))
		if data != nil {
			// data is only valid for the life of the transaction
			value = append([]byte{}, data...)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}

	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

func (s *SessionStore) Set(key, value string) error {
	if s.Driver.store == nil {
		return errClosed
	}

	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(key), []byte(value))
	})
}

// Delete removes all the keys in a single transaction.
func (s *SessionStore) Delete(keys ...string) error {
	if s.Driver.store == nil {
		return errClosed
	}

	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}
