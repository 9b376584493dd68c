// Package localstore provides small named-slot stores. A slot holds one
// opaque byte value under a string key and is rewritten whole on every set,
// which is all the snapshot persistence in this app needs.
package localstore

import "errors"

// ErrNoValue is returned by Get when the slot has never been written.
var ErrNoValue = errors.New("localstore: no value")

// Store is a named-slot byte store.
type Store interface {
	// Get returns the current value of the slot, or ErrNoValue.
	Get(slot string) ([]byte, error)
	// Set replaces the value of the slot.
	Set(slot string, value []byte) error
	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(slot string) error
	// Close releases any underlying resources.
	Close() error
}
