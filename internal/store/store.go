package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("key not found")

// Store is the flat key-value namespace every entity lives in. Values
// are JSON documents; GetByPrefix returns all values whose key starts
// with the prefix, in insertion order where the driver can provide it.
// The store has no transactions and no multi-key atomicity.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
}

// GetAs loads and decodes one record.
func GetAs[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &v, nil
}

// ListAs decodes every record under a prefix.
func ListAs[T any](ctx context.Context, s Store, prefix string) ([]T, error) {
	raws, err := s.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", prefix, err)
		}
		out = append(out, v)
	}
	return out, nil
}
