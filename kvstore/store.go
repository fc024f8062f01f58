// Package kvstore is the persistent key-value storage the console keeps its
// session and preferences in. It plays the part browser local storage plays
// for a web client: string values, last write wins, no cross-process locking.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultPrefix namespaces every key the console writes.
const DefaultPrefix = "safisaude_"

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a string key-value store. SetMany and Delete apply all keys or
// none.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON decodes the value stored at key into v. It returns false when the
// key is absent or does not decode.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON stores v encoded as JSON.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
